// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "github.com/spf13/pflag"

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CXF_"

// StructuredConfig is the top-level configuration container for go-cxf. It
// aggregates all sub-configurations and is populated by merging values from
// flags, environment variables, a JSONC file and defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the exporter identity and CLI behaviour.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Crypto holds key derivation parameters for passphrase sealing.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Workers holds settings for concurrent document processing.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSONC configuration file.
	// Populated via the CXF_CONFIG environment variable or the --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// ExporterRpID is written as exporterRpId into produced documents.
	// Env: CXF_APP_EXPORTER_RP_ID
	ExporterRpID string `env:"EXPORTER_RP_ID"`

	// ExporterDisplayName is written as exporterDisplayName.
	// Env: CXF_APP_EXPORTER_DISPLAY_NAME
	ExporterDisplayName string `env:"EXPORTER_DISPLAY_NAME"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: CXF_APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver: "postgres://" and "postgresql://" URLs open
	// PostgreSQL, anything else is treated as a SQLite data source
	// (e.g. "file:cxf.db?_foreign_keys=on").
	// Env: CXF_STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Crypto holds argon2id parameters used by passphrase sealing.
type Crypto struct {
	ArgonTime      uint32 `env:"ARGON_TIME"`
	ArgonMemoryKiB uint32 `env:"ARGON_MEMORY_KIB"`
	ArgonThreads   uint8  `env:"ARGON_THREADS"`
}

// Workers holds configuration for concurrent processing.
type Workers struct {
	// DecodeConcurrency bounds how many documents are decoded at once.
	// Env: CXF_WORKERS_DECODE_CONCURRENCY
	DecodeConcurrency int `env:"DECODE_CONCURRENCY"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources. fs is the flag set of the running command and may
// be nil.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(fs).
		withJSON().
		build()
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			ExporterRpID:        "go-cxf.local",
			ExporterDisplayName: "go-cxf",
			LogLevel:            "info",
		},
		Storage: Storage{
			DB: DB{DSN: "file:cxf.db?_foreign_keys=on"},
		},
		Crypto: Crypto{
			ArgonTime:      1,
			ArgonMemoryKiB: 64 * 1024,
			ArgonThreads:   4,
		},
		Workers: Workers{
			DecodeConcurrency: 4,
		},
	}
}
