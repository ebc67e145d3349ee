// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// ExtensionName is the "name" discriminator of an extension object.
type ExtensionName string

const (
	// ExtensionNameShared identifies the sharing extension.
	ExtensionNameShared ExtensionName = "shared"
)

// IsKnown reports whether n is an extension this package decodes natively.
func (n ExtensionName) IsKnown() bool {
	return n == ExtensionNameShared
}

// Extension annotates an account, collection, item or editable field with
// side information. Known extensions decode to their own types; anything
// else becomes an *UnknownExtension unless an ExtensionDecoder supplied to
// the Decoder claims it.
//
// Implementations must encode to a JSON object that carries their name.
type Extension interface {
	ExtensionName() ExtensionName
}

// ExtensionDecoder turns extensions this package does not know into
// caller-defined types. It returns (nil, nil) for names it does not handle.
// A returned error leaves the value as an *UnknownExtension.
type ExtensionDecoder interface {
	DecodeExtension(name ExtensionName, raw json.RawMessage) (Extension, error)
}

// ExtensionDecoderFunc adapts a function to the ExtensionDecoder interface.
type ExtensionDecoderFunc func(name ExtensionName, raw json.RawMessage) (Extension, error)

func (f ExtensionDecoderFunc) DecodeExtension(name ExtensionName, raw json.RawMessage) (Extension, error) {
	return f(name, raw)
}

// UnknownExtension keeps an unrecognised extension object verbatim.
type UnknownExtension struct {
	Name ExtensionName
	Raw  json.RawMessage
}

func (u *UnknownExtension) ExtensionName() ExtensionName { return u.Name }

func (u *UnknownExtension) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return marshalTagged("name", string(u.Name), struct{}{})
	}
	return u.Raw, nil
}

// Extensions is a list of extensions decoded by their "name" tag.
type Extensions []Extension

func (e *Extensions) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(Extensions, 0, len(raws))
	for i, raw := range raws {
		ext, err := decodeExtension(raw)
		if err != nil {
			return fieldErr(fmt.Sprintf("extensions[%d]", i), err)
		}
		out = append(out, ext)
	}
	*e = out
	return nil
}

func decodeExtension(raw json.RawMessage) (Extension, error) {
	name, _, err := peekTag(raw, "name")
	if err != nil {
		return nil, err
	}

	switch ExtensionName(name) {
	case ExtensionNameShared:
		shared := new(SharedExtension)
		if err = json.Unmarshal(raw, shared); err != nil {
			return nil, err
		}
		return shared, nil
	default:
		return &UnknownExtension{Name: ExtensionName(name), Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

// resolve replaces unknown extensions that dec recognises.
func (e Extensions) resolve(dec ExtensionDecoder) {
	for i, ext := range e {
		unknown, ok := ext.(*UnknownExtension)
		if !ok {
			continue
		}
		resolved, err := dec.DecodeExtension(unknown.Name, unknown.Raw)
		if err != nil || resolved == nil {
			continue
		}
		e[i] = resolved
	}
}
