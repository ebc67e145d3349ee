// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// Decoder turns CXF documents into a Header graph.
//
// A Decoder holds no mutable state and may be shared between goroutines.
type Decoder struct {
	extensions ExtensionDecoder
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithExtensionDecoder registers dec to resolve extensions this package
// does not know natively.
func WithExtensionDecoder(dec ExtensionDecoder) DecoderOption {
	return func(d *Decoder) {
		d.extensions = dec
	}
}

// NewDecoder returns a Decoder configured with opts.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode decodes a complete document. Any malformed known member fails the
// whole document; unknown credentials and extensions are preserved.
func (d *Decoder) Decode(data []byte) (*Header, error) {
	header, _, err := d.decode(data, false)
	return header, err
}

// DecodeTolerant decodes a document and skips items that fail to decode.
// Skipped items are returned as ItemErrors; err is only set when the
// document structure outside the items is invalid.
func (d *Decoder) DecodeTolerant(data []byte) (*Header, []*ItemError, error) {
	return d.decode(data, true)
}

func (d *Decoder) decode(data []byte, tolerant bool) (*Header, []*ItemError, error) {
	if err := checkVersion(data); err != nil {
		return nil, nil, err
	}

	header, itemErrs, err := decodeHeader(data, tolerant)
	if err != nil {
		return nil, nil, fmt.Errorf("decode document: %w", err)
	}

	if d.extensions != nil {
		header.visitExtensions(func(exts *Extensions) {
			exts.resolve(d.extensions)
		})
	}
	return header, itemErrs, nil
}

// checkVersion rejects documents of an unknown major version before the
// rest of the document is interpreted.
func checkVersion(data []byte) error {
	var probe struct {
		Version *Version `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if probe.Version == nil {
		return fmt.Errorf("decode document: %w", &FieldError{Field: "version", Err: ErrMissingField})
	}
	if !probe.Version.IsSupported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, probe.Version)
	}
	return nil
}

// Decode decodes data with a default Decoder.
func Decode(data []byte) (*Header, error) {
	return NewDecoder().Decode(data)
}

// Encode serialises h as compact JSON.
func Encode(h *Header) ([]byte, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// EncodeIndent serialises h as indented JSON.
func EncodeIndent(h *Header) ([]byte, error) {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}
