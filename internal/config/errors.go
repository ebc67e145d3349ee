package config

import "errors"

var (
	// ErrInvalidAppConfigs is returned when the exporter identity or log
	// level is unusable.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")

	// ErrInvalidStorageConfigs is returned when no database DSN is configured.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidCryptoConfigs is returned for argon2id parameters below the
	// accepted minimums.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")

	// ErrInvalidWorkerConfigs is returned for a non-positive concurrency.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
