package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestParseFlags_AllFlags(t *testing.T) {
	fs := newTestFlagSet(t,
		"-c", "/etc/cxf.jsonc",
		"--dsn", "postgres://localhost/cxf",
		"--exporter-rp-id", "vault.example.com",
		"--exporter-name", "Example Vault",
		"--log-level", "error",
		"--decode-concurrency", "16",
	)

	cfg, err := parseFlags(fs)
	require.NoError(t, err)

	assert.Equal(t, "/etc/cxf.jsonc", cfg.JSONFilePath)
	assert.Equal(t, "postgres://localhost/cxf", cfg.Storage.DB.DSN)
	assert.Equal(t, "vault.example.com", cfg.App.ExporterRpID)
	assert.Equal(t, "Example Vault", cfg.App.ExporterDisplayName)
	assert.Equal(t, "error", cfg.App.LogLevel)
	assert.Equal(t, 16, cfg.Workers.DecodeConcurrency)
}

func TestParseFlags_OnlyChanged(t *testing.T) {
	fs := newTestFlagSet(t, "--dsn", "file:x.db")

	cfg, err := parseFlags(fs)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{Storage: Storage{DB: DB{DSN: "file:x.db"}}}, cfg)
}

func TestParseFlags_UnregisteredFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("bare", pflag.ContinueOnError)
	require.NoError(t, fs.Parse(nil))

	cfg, err := parseFlags(fs)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestRegisterFlags_RejectsBadInt(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.Error(t, fs.Parse([]string{"--decode-concurrency", "lots"}))
}
