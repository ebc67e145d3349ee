package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// minArgonMemoryKiB is the lowest memory cost accepted for argon2id.
const minArgonMemoryKiB = 8 * 1024

func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.ExporterRpID == "" || cfg.App.ExporterDisplayName == "" {
		errs = append(errs, fmt.Errorf("%w: exporter identity is empty", ErrInvalidAppConfigs))
	}
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel))
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs))
	}

	if cfg.Crypto.ArgonTime < 1 || cfg.Crypto.ArgonThreads < 1 || cfg.Crypto.ArgonMemoryKiB < minArgonMemoryKiB {
		errs = append(errs, fmt.Errorf("%w: argon2id parameters too weak", ErrInvalidCryptoConfigs))
	}

	if cfg.Workers.DecodeConcurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: decode concurrency must be positive", ErrInvalidWorkerConfigs))
	}

	return errors.Join(errs...)
}
