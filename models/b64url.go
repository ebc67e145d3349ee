// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/base32"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
)

// B64Url is an opaque byte sequence carried on the wire as base64url.
//
// Decoding accepts both padded and unpadded input. Encoding always
// produces the unpadded canonical form, so the original text is never
// retained. Two values are equal when their decoded bytes are equal.
type B64Url []byte

// ParseB64Url decodes s into a B64Url.
func ParseB64Url(s string) (B64Url, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotB64UrlEncoded, err)
	}
	return B64Url(raw), nil
}

// String returns the unpadded base64url form.
func (b B64Url) String() string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Equal reports whether b and other hold the same bytes.
func (b B64Url) Equal(other B64Url) bool {
	return bytes.Equal(b, other)
}

func (b B64Url) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *B64Url) UnmarshalText(text []byte) error {
	decoded, err := ParseB64Url(string(text))
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// Base32 is an opaque byte sequence carried on the wire as RFC 4648 base32,
// used for TOTP secrets.
//
// Decoding upper-cases the input and drops padding together with the spaces
// and dashes that authenticator apps insert between groups. Any other
// character fails. Encoding is always unpadded.
type Base32 []byte

var base32NoPadding = base32.StdEncoding.WithPadding(base32.NoPadding)

// ParseBase32 decodes s into a Base32.
func ParseBase32(s string) (Base32, error) {
	upper := strings.ToUpper(s)
	var clean strings.Builder
	clean.Grow(len(upper))
	for _, r := range upper {
		switch {
		case (r >= 'A' && r <= 'Z') || (r >= '2' && r <= '7'):
			clean.WriteRune(r)
		case r == '=' || r == '-' || unicode.IsSpace(r):
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrNotBase32Encoded, r)
		}
	}

	raw, err := base32NoPadding.DecodeString(clean.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotBase32Encoded, err)
	}
	return Base32(raw), nil
}

// String returns the unpadded base32 form.
func (b Base32) String() string {
	return base32NoPadding.EncodeToString(b)
}

// Equal reports whether b and other hold the same bytes.
func (b Base32) Equal(other Base32) bool {
	return bytes.Equal(b, other)
}

func (b Base32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Base32) UnmarshalText(text []byte) error {
	decoded, err := ParseBase32(string(text))
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
