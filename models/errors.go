// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the CXF codec. Callers match them with
// errors.Is; the concrete failure is usually wrapped in a *FieldError
// that names the offending key.
var (
	// ErrNotB64UrlEncoded is returned when a string is not valid unpadded
	// or padded base64url.
	ErrNotB64UrlEncoded = errors.New("Data isn't base64url encoded")

	// ErrNotBase32Encoded is returned when a string does not decode as
	// base32 after normalisation.
	ErrNotBase32Encoded = errors.New("Data isn't base32 encoded")

	// ErrInvalidTimestamp is returned for epoch integers outside the
	// representable range.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidISO8601 is returned for timestamp strings that are not RFC3339.
	ErrInvalidISO8601 = errors.New("invalid ISO8601")

	// ErrTimestampType is returned when a timestamp is neither a number nor a string.
	ErrTimestampType = errors.New("expected number or string")

	// ErrFieldTypeMismatch is returned when the fieldType tag of an editable
	// field disagrees with the type of its value.
	ErrFieldTypeMismatch = errors.New("field_type does not match value type")

	// ErrInvalidBoolean is returned for boolean field values other than true/false.
	ErrInvalidBoolean = errors.New("provided string was not `true` or `false`")

	// ErrMissingYear and ErrInvalidMonth are returned by year-month parsing.
	ErrMissingYear  = errors.New("Missing year")
	ErrInvalidMonth = errors.New("Invalid month")

	// ErrInvalidDate is returned for date values not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidNumber is returned for number values that do not parse as float.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrMissingField is returned when a required key is absent or null.
	ErrMissingField = errors.New("missing field")

	// ErrMissingTag is returned when a tagged union object has no discriminator.
	ErrMissingTag = errors.New("missing tag")

	// ErrUnsupportedVersion is returned when a document's major version is
	// not understood by this library.
	ErrUnsupportedVersion = errors.New("unsupported format version")
)

// FieldError identifies the key whose value failed to decode.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ItemError reports an item skipped by tolerant decoding.
type ItemError struct {
	// AccountID is the id of the account the item belongs to, if it decoded.
	AccountID B64Url

	// Index is the position of the item in the account's items array.
	Index int

	// ItemID is the id of the item, when it could be recovered.
	ItemID string

	Err error
}

func (e *ItemError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("account %s: item %d (%s): %v", e.AccountID, e.Index, e.ItemID, e.Err)
	}
	return fmt.Sprintf("account %s: item %d: %v", e.AccountID, e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

func fieldErr(field string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{Field: field + "." + fe.Field, Err: fe.Err}
	}
	return &FieldError{Field: field, Err: err}
}
