package app

import (
	"errors"

	"github.com/MKhiriev/go-cxf/internal/config"
	"github.com/MKhiriev/go-cxf/internal/crypto"
	"github.com/MKhiriev/go-cxf/internal/exchange"
	"github.com/MKhiriev/go-cxf/internal/kdbx"
	"github.com/MKhiriev/go-cxf/internal/service"
	"github.com/MKhiriev/go-cxf/internal/store"
	"github.com/MKhiriev/go-cxf/models"
)

// Retryer reports whether a storage error is worth retrying.
type Retryer interface {
	IsRetryable(err error) bool
}

// UserMessage returns the Msg* constant describing err. retry may be nil.
// The order of checks matters: the most specific cause wins.
func UserMessage(err error, retry Retryer) string {
	var protoErr *exchange.ProtocolError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, models.ErrUnsupportedVersion):
		return MsgUnsupportedVersion
	case errors.As(err, &protoErr),
		errors.Is(err, exchange.ErrHpkeMismatch),
		errors.Is(err, exchange.ErrEmptyPayload),
		errors.Is(err, exchange.ErrUnsupportedKey):
		return MsgExchangeRejected
	case errors.Is(err, crypto.ErrDecryptionFailed),
		errors.Is(err, crypto.ErrCiphertextTooShort):
		return MsgDecryptionFailed
	case errors.Is(err, crypto.ErrEmptyPassphrase),
		errors.Is(err, kdbx.ErrEmptyPassword):
		return MsgEmptyPassphrase
	case errors.Is(err, kdbx.ErrNoContent),
		errors.Is(err, kdbx.ErrMissingAttachment):
		return MsgKeePassFailure
	case errors.Is(err, service.ErrInvalidDocument):
		return MsgInvalidDocument
	case errors.Is(err, service.ErrDecodingDocument),
		errors.Is(err, service.ErrNoDocument),
		errors.Is(err, models.ErrMissingField):
		return MsgInvalidDataProvided
	case errors.Is(err, store.ErrAccountNotFound):
		return MsgAccountNotFound
	case retry != nil && retry.IsRetryable(err):
		return MsgStorageBusy
	case errors.Is(err, store.ErrExecutingQuery),
		errors.Is(err, store.ErrExecutingStatement),
		errors.Is(err, store.ErrBeginningTransaction),
		errors.Is(err, store.ErrCommitingTransaction):
		return MsgStorageFailure
	case errors.Is(err, config.ErrInvalidAppConfigs),
		errors.Is(err, config.ErrInvalidStorageConfigs),
		errors.Is(err, config.ErrInvalidCryptoConfigs),
		errors.Is(err, config.ErrInvalidWorkerConfigs),
		errors.Is(err, service.ErrNoExporterDefined):
		return MsgInvalidConfiguration
	default:
		return MsgInternalError
	}
}
