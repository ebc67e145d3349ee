package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	flagConfig            = "config"
	flagDSN               = "dsn"
	flagExporterRpID      = "exporter-rp-id"
	flagExporterName      = "exporter-name"
	flagLogLevel          = "log-level"
	flagDecodeConcurrency = "decode-concurrency"
)

// RegisterFlags defines the configuration flags on fs. Commands register
// them as persistent flags so that every subcommand accepts them.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "JSONC config file path")
	fs.StringP(flagDSN, "d", "", "database DSN (postgres:// URL or SQLite data source)")
	fs.String(flagExporterRpID, "", "relying party id written into exported documents")
	fs.String(flagExporterName, "", "display name written into exported documents")
	fs.String(flagLogLevel, "", "log level (debug, info, warn, error)")
	fs.Int(flagDecodeConcurrency, 0, "number of documents decoded concurrently")
}

// parseFlags builds a partial config from the flags that were set
// explicitly. Flags that were not defined on fs are ignored.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	stringFlags := map[string]*string{
		flagConfig:       &cfg.JSONFilePath,
		flagDSN:          &cfg.Storage.DB.DSN,
		flagExporterRpID: &cfg.App.ExporterRpID,
		flagExporterName: &cfg.App.ExporterDisplayName,
		flagLogLevel:     &cfg.App.LogLevel,
	}
	for name, dst := range stringFlags {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("error reading flag --%s: %w", name, err)
		}
		*dst = v
	}

	if fs.Changed(flagDecodeConcurrency) {
		v, err := fs.GetInt(flagDecodeConcurrency)
		if err != nil {
			return nil, fmt.Errorf("error reading flag --%s: %w", flagDecodeConcurrency, err)
		}
		cfg.Workers.DecodeConcurrency = v
	}

	return cfg, nil
}
