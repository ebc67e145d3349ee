// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EditableField is a labelled, optionally identified, typed value.
//
// On the wire it carries the value together with a fieldType tag. The tag
// is derived from T when encoding, so a producer cannot emit an
// inconsistent pair, and it must match T when decoding.
type EditableField[T FieldValue] struct {
	// ID is an optional machine-generated identifier of at most 64 bytes.
	ID B64Url

	// Value is the typed field value.
	Value T

	// Label is an optional human-facing label.
	Label string

	// Extensions carries side information attached to this field.
	Extensions Extensions
}

// NewField returns an EditableField holding v with no id or label.
func NewField[T FieldValue](v T) *EditableField[T] {
	return &EditableField[T]{Value: v}
}

// FieldType returns the tag intrinsic to the value type.
func (f EditableField[T]) FieldType() FieldType {
	return f.Value.FieldType()
}

func (f EditableField[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if len(f.ID) > 0 {
		if err := writeMember(&buf, "id", f.ID); err != nil {
			return nil, err
		}
	}
	if err := writeMember(&buf, "fieldType", f.Value.FieldType()); err != nil {
		return nil, err
	}
	if err := writeMember(&buf, "value", f.Value); err != nil {
		return nil, err
	}
	if f.Label != "" {
		if err := writeMember(&buf, "label", f.Label); err != nil {
			return nil, err
		}
	}
	if len(f.Extensions) > 0 {
		if err := writeMember(&buf, "extensions", f.Extensions); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// editableFieldWire is the shape of an editable field before the tag check.
type editableFieldWire struct {
	ID         B64Url          `json:"id,omitempty"`
	FieldType  FieldType       `json:"fieldType"`
	Value      json.RawMessage `json:"value"`
	Label      string          `json:"label,omitempty"`
	Extensions Extensions      `json:"extensions,omitempty"`
}

func decodeEditableFieldWire(data []byte) (editableFieldWire, error) {
	var wire editableFieldWire
	if err := requireFields(data, "fieldType", "value"); err != nil {
		return wire, err
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return wire, err
	}
	return wire, nil
}

func (f *EditableField[T]) UnmarshalJSON(data []byte) error {
	wire, err := decodeEditableFieldWire(data)
	if err != nil {
		return err
	}

	var value T
	if err = json.Unmarshal(wire.Value, &value); err != nil {
		return fieldErr("value", err)
	}
	if wire.FieldType != value.FieldType() {
		return ErrFieldTypeMismatch
	}

	*f = EditableField[T]{
		ID:         wire.ID,
		Value:      value,
		Label:      wire.Label,
		Extensions: wire.Extensions,
	}
	return nil
}

func (f *EditableField[T]) extensionsRef() *Extensions {
	if f == nil {
		return nil
	}
	return &f.Extensions
}

func writeMember(buf *bytes.Buffer, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if buf.Len() > 1 {
		buf.WriteByte(',')
	}
	buf.WriteString(`"` + key + `":`)
	buf.Write(raw)
	return nil
}

// CustomField is an editable field whose value type is only known at run
// time, as found in the fields of a custom-fields credential. It is
// implemented by *EditableField[T] for every value kind and by
// *UnknownEditableField.
type CustomField interface {
	FieldType() FieldType
	extensionsRef() *Extensions
}

// UnknownEditableField preserves an editable field whose fieldType is not
// recognised. Raw holds the complete original object.
type UnknownEditableField struct {
	Type FieldType
	Raw  json.RawMessage
}

func (u *UnknownEditableField) FieldType() FieldType { return u.Type }

func (u *UnknownEditableField) extensionsRef() *Extensions { return nil }

func (u *UnknownEditableField) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return marshalTagged("fieldType", string(u.Type), struct{}{})
	}
	return u.Raw, nil
}

// CustomFieldList is a heterogeneous list of editable fields.
type CustomFieldList []CustomField

func (l *CustomFieldList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(CustomFieldList, 0, len(raws))
	for i, raw := range raws {
		field, err := decodeCustomField(raw)
		if err != nil {
			return fieldErr(fmt.Sprintf("fields[%d]", i), err)
		}
		out = append(out, field)
	}
	*l = out
	return nil
}

func decodeCustomField(raw json.RawMessage) (CustomField, error) {
	tag, ok, err := peekTag(raw, "fieldType")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &FieldError{Field: "fieldType", Err: ErrMissingField}
	}

	var field CustomField
	switch FieldType(tag) {
	case FieldTypeString:
		field = new(EditableField[EditableFieldString])
	case FieldTypeConcealedString:
		field = new(EditableField[EditableFieldConcealedString])
	case FieldTypeEmail:
		field = new(EditableField[EditableFieldEmail])
	case FieldTypeNumber:
		field = new(EditableField[EditableFieldNumber])
	case FieldTypeBoolean:
		field = new(EditableField[EditableFieldBoolean])
	case FieldTypeDate:
		field = new(EditableField[EditableFieldDate])
	case FieldTypeYearMonth:
		field = new(EditableField[EditableFieldYearMonth])
	case FieldTypeWifiNetworkSecurityType:
		field = new(EditableField[EditableFieldWifiNetworkSecurityType])
	case FieldTypeSubdivisionCode:
		field = new(EditableField[EditableFieldSubdivisionCode])
	case FieldTypeCountryCode:
		field = new(EditableField[EditableFieldCountryCode])
	default:
		return &UnknownEditableField{Type: FieldType(tag), Raw: append(json.RawMessage(nil), raw...)}, nil
	}

	if err = json.Unmarshal(raw, field); err != nil {
		return nil, err
	}
	return field, nil
}
