package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// StructuredJSONConfig mirrors StructuredConfig in the JSONC file layout.
// Comments and trailing commas are allowed.
type StructuredJSONConfig struct {
	App struct {
		ExporterRpID        string `json:"exporter_rp_id"`
		ExporterDisplayName string `json:"exporter_display_name"`
		LogLevel            string `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Crypto struct {
		ArgonTime      uint32 `json:"argon_time"`
		ArgonMemoryKiB uint32 `json:"argon_memory_kib"`
		ArgonThreads   uint8  `json:"argon_threads"`
	} `json:"crypto,omitempty"`

	Workers struct {
		DecodeConcurrency int `json:"decode_concurrency"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	data, err := os.ReadFile(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}

	var jsonCfg StructuredJSONConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ExporterRpID:        jsonCfg.App.ExporterRpID,
			ExporterDisplayName: jsonCfg.App.ExporterDisplayName,
			LogLevel:            jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Crypto: Crypto{
			ArgonTime:      jsonCfg.Crypto.ArgonTime,
			ArgonMemoryKiB: jsonCfg.Crypto.ArgonMemoryKiB,
			ArgonThreads:   jsonCfg.Crypto.ArgonThreads,
		},
		Workers: Workers{
			DecodeConcurrency: jsonCfg.Workers.DecodeConcurrency,
		},
	}

	return cfg, nil
}
