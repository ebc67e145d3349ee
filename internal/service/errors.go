package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("version is not specified")

	ErrDecodingDocument  = errors.New("error decoding document")
	ErrInvalidDocument   = errors.New("document failed validation")
	ErrNoDocument        = errors.New("no document provided")
	ErrSavingAccount     = errors.New("error saving account")
	ErrLoadingAccount    = errors.New("error loading account")
	ErrNoExporterDefined = errors.New("exporter rp id is not configured")
)
