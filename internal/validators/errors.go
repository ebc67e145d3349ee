package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID            = errors.New("identifier is empty")
	ErrIDTooLong          = errors.New("identifier exceeds 64 bytes")
	ErrEmptyExporter      = errors.New("exporter relying party id is empty")
	ErrDuplicateItemID    = errors.New("duplicate item id")
	ErrInvalidTotp        = errors.New("totp period and digits must be positive")
	ErrEmptyTotpSecret    = errors.New("totp secret is empty")
	ErrDanglingLinkedItem = errors.New("linked item does not resolve")
)
