// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package exchange

import (
	"encoding/json"
	"errors"
	"fmt"

	"filippo.io/age"

	"github.com/MKhiriev/go-cxf/models"
)

// ErrUnsupportedKey is returned for an importer key that does not carry an
// age recipient.
var ErrUnsupportedKey = errors.New("importer key is not an age recipient")

const ageKeyType = "age"

// AgeSuite is the parameter set matching age's X25519 recipients:
// X25519 key agreement, HKDF-SHA256 and ChaCha20-Poly1305. It carries no
// key and is what an exporter lists as supported.
var AgeSuite = models.HpkeParameters{
	Mode: models.HpkeModeBase,
	Kem:  models.HpkeKemDhX25519,
	Kdf:  models.HpkeKdfHkdfSha256,
	Aead: models.HpkeAeadChaCha20Poly1305,
}

type ageKey struct {
	Kty       string `json:"kty"`
	Recipient string `json:"recipient"`
}

// AgeParameters returns AgeSuite keyed with recipient, ready to be offered
// in an export request.
func AgeParameters(recipient string) (models.HpkeParameters, error) {
	if _, err := age.ParseX25519Recipient(recipient); err != nil {
		return models.HpkeParameters{}, fmt.Errorf("%w: %w", ErrUnsupportedKey, err)
	}

	key, err := json.Marshal(ageKey{Kty: ageKeyType, Recipient: recipient})
	if err != nil {
		return models.HpkeParameters{}, err
	}

	params := AgeSuite
	params.Key = key
	return params, nil
}

// AgeRecipient extracts the age recipient from negotiated parameters.
func AgeRecipient(params models.HpkeParameters) (string, error) {
	if len(params.Key) == 0 {
		return "", ErrUnsupportedKey
	}

	var key ageKey
	if err := json.Unmarshal(params.Key, &key); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedKey, err)
	}
	if key.Kty != ageKeyType {
		return "", fmt.Errorf("%w: kty %q", ErrUnsupportedKey, key.Kty)
	}
	if _, err := age.ParseX25519Recipient(key.Recipient); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedKey, err)
	}
	return key.Recipient, nil
}
