package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestBuild_EmptyBuilder verifies that building with no sources yields the
// defaults.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesWin verifies that non-zero fields of later configs
// override earlier ones and zero fields do not.
func TestBuild_LaterSourcesWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{ExporterRpID: "first", LogLevel: "debug"}},
		&StructuredConfig{App: App{ExporterRpID: "second"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "second", cfg.App.ExporterRpID)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "go-cxf", cfg.App.ExporterDisplayName)
}

// ── sources ───────────────────────────────────────────────────────────────────

func TestGetStructuredConfig_Priority(t *testing.T) {
	jsonPath := writeTempConfig(t, `{
		"app": {"exporter_rp_id": "from-json", "exporter_display_name": "JSON"},
		"storage": {"db": {"dsn": "file:json.db"}},
		"workers": {"decode_concurrency": 3}
	}`)
	setEnvVars(t, map[string]string{
		"CXF_CONFIG":             jsonPath,
		"CXF_APP_EXPORTER_RP_ID": "from-env",
		"CXF_STORAGE_DB_DSN":     "file:env.db",
	})
	t.Chdir(t.TempDir())

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--dsn", "file:flag.db"}))

	cfg, err := GetStructuredConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, "file:flag.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "from-env", cfg.App.ExporterRpID)
	assert.Equal(t, "JSON", cfg.App.ExporterDisplayName)
	assert.Equal(t, 3, cfg.Workers.DecodeConcurrency)
	assert.Equal(t, uint8(4), cfg.Crypto.ArgonThreads)
}

func TestGetStructuredConfig_JSONPathFromFlag(t *testing.T) {
	clearEnvVars(t)
	t.Chdir(t.TempDir())
	jsonPath := writeTempConfig(t, `{"app": {"log_level": "error"}}`)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", jsonPath}))

	cfg, err := GetStructuredConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.App.LogLevel)
}

func TestGetStructuredConfig_MissingJSON(t *testing.T) {
	setEnvVars(t, map[string]string{"CXF_CONFIG": "/does/not/exist.jsonc"})
	t.Chdir(t.TempDir())

	_, err := GetStructuredConfig(nil)
	require.Error(t, err)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "empty exporter",
			mutate:  func(c *StructuredConfig) { c.App.ExporterRpID = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "bad log level",
			mutate:  func(c *StructuredConfig) { c.App.LogLevel = "loud" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(c *StructuredConfig) { c.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "weak argon memory",
			mutate:  func(c *StructuredConfig) { c.Crypto.ArgonMemoryKiB = 1024 },
			wantErr: ErrInvalidCryptoConfigs,
		},
		{
			name:    "zero threads",
			mutate:  func(c *StructuredConfig) { c.Crypto.ArgonThreads = 0 },
			wantErr: ErrInvalidCryptoConfigs,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *StructuredConfig) { c.Workers.DecodeConcurrency = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("reports every group", func(t *testing.T) {
		err := (&StructuredConfig{}).validate()
		require.ErrorIs(t, err, ErrInvalidAppConfigs)
		require.ErrorIs(t, err, ErrInvalidStorageConfigs)
		require.ErrorIs(t, err, ErrInvalidCryptoConfigs)
		require.ErrorIs(t, err, ErrInvalidWorkerConfigs)
	})
}
