package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// requireFields reports the first key of keys that is absent from the JSON
// object in data or explicitly null.
func requireFields(data []byte, keys ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
			return &FieldError{Field: key, Err: ErrMissingField}
		}
	}
	return nil
}

// marshalTagged marshals v as a JSON object and places tagKey first.
func marshalTagged(tagKey, tagValue string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	tag, err := json.Marshal(tagValue)
	if err != nil {
		return nil, err
	}

	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("tagged value %q must encode as an object", tagValue)
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + len(tagKey) + len(tag) + 4)
	buf.WriteByte('{')
	buf.WriteString(`"` + tagKey + `":`)
	buf.Write(tag)
	if rest := bytes.TrimSpace(body[1:]); len(rest) > 0 && rest[0] != '}' {
		buf.WriteByte(',')
	}
	buf.Write(body[1:])
	return buf.Bytes(), nil
}

// peekTag reads the string discriminator stored under key. ok is false when
// the key is absent or null.
func peekTag(data []byte, key string) (tag string, ok bool, err error) {
	var obj map[string]json.RawMessage
	if err = json.Unmarshal(data, &obj); err != nil {
		return "", false, err
	}
	raw, found := obj[key]
	if !found || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return "", false, nil
	}
	if err = json.Unmarshal(raw, &tag); err != nil {
		return "", false, fieldErr(key, err)
	}
	return tag, true, nil
}
