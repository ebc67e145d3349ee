// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the version of the export/import protocol messages.
type ProtocolVersion uint8

const ProtocolVersionV0 ProtocolVersion = 0

// IsKnown reports whether v is a protocol version this package speaks.
func (v ProtocolVersion) IsKnown() bool {
	return v == ProtocolVersionV0
}

// ExportRequest is sent by an importing provider to ask for an export.
type ExportRequest struct {
	Version         ProtocolVersion  `json:"version"`
	Hpke            []HpkeParameters `json:"hpke"`
	Importer        string           `json:"importer"`
	CredentialTypes []CredentialType `json:"credentialTypes,omitempty"`
	KnownExtensions []ExtensionName  `json:"knownExtensions,omitempty"`
}

type exportRequestAlias ExportRequest

func (r *ExportRequest) UnmarshalJSON(data []byte) error {
	var alias exportRequestAlias
	if err := decodeStrict(data, &alias, "version", "hpke", "importer"); err != nil {
		return err
	}
	*r = ExportRequest(alias)
	return nil
}

// ExportResponse carries the sealed document back to the importer.
type ExportResponse struct {
	Version  ProtocolVersion `json:"version"`
	Hpke     HpkeParameters  `json:"hpke"`
	Exporter string          `json:"exporter"`
	Payload  B64Url          `json:"payload"`
}

type exportResponseAlias ExportResponse

func (r *ExportResponse) UnmarshalJSON(data []byte) error {
	var alias exportResponseAlias
	if err := decodeStrict(data, &alias, "version", "hpke", "exporter", "payload"); err != nil {
		return err
	}
	*r = ExportResponse(alias)
	return nil
}

// ErrorCode is the reason an export could not be served.
type ErrorCode string

const (
	ErrorCodeUserCanceled                 ErrorCode = "user-canceled"
	ErrorCodeIncompatibleHpkeParameters   ErrorCode = "incompatible-hpke-parameters"
	ErrorCodeMissingImporterKey           ErrorCode = "missing-importer-key"
	ErrorCodeIncorrectImporterKeyEncoding ErrorCode = "incorrect-importer-key-encoding"
	ErrorCodeUnsupportedVersion           ErrorCode = "unsupported-version"
	ErrorCodeInvalidJSON                  ErrorCode = "invalid-json"
	ErrorCodeForbiddenAction              ErrorCode = "forbidden-action"
)

// ErrorResponse is returned instead of an ExportResponse on failure.
type ErrorResponse struct {
	Version ProtocolVersion `json:"version"`
	Error   ErrorCode       `json:"error"`
}

// NewErrorResponse returns an ErrorResponse for the current protocol version.
func NewErrorResponse(code ErrorCode) *ErrorResponse {
	return &ErrorResponse{Version: ProtocolVersionV0, Error: code}
}

// HpkeMode is the HPKE operating mode.
type HpkeMode string

const (
	HpkeModeBase    HpkeMode = "base"
	HpkeModePsk     HpkeMode = "psk"
	HpkeModeAuth    HpkeMode = "auth"
	HpkeModeAuthPsk HpkeMode = "auth-psk"
)

func (m HpkeMode) IsKnown() bool {
	switch m {
	case HpkeModeBase, HpkeModePsk, HpkeModeAuth, HpkeModeAuthPsk:
		return true
	}
	return false
}

// HpkeKem is an entry of the IANA HPKE KEM identifier registry.
type HpkeKem uint16

const (
	HpkeKemReserved              HpkeKem = 0x0000
	HpkeKemDhP256                HpkeKem = 0x0010
	HpkeKemDhP384                HpkeKem = 0x0011
	HpkeKemDhP521                HpkeKem = 0x0012
	HpkeKemDhCP256               HpkeKem = 0x0013
	HpkeKemDhCP384               HpkeKem = 0x0014
	HpkeKemDhCP521               HpkeKem = 0x0015
	HpkeKemDhSecP256K1           HpkeKem = 0x0016
	HpkeKemDhX25519              HpkeKem = 0x0020
	HpkeKemDhX448                HpkeKem = 0x0021
	HpkeKemX25519Kyber768Draft00 HpkeKem = 0x0030
)

// IsAssigned reports whether k has a registry entry.
func (k HpkeKem) IsAssigned() bool {
	switch {
	case k == HpkeKemReserved:
		return true
	case k >= HpkeKemDhP256 && k <= HpkeKemDhSecP256K1:
		return true
	case k == HpkeKemDhX25519, k == HpkeKemDhX448, k == HpkeKemX25519Kyber768Draft00:
		return true
	}
	return false
}

// HpkeKdf is an entry of the IANA HPKE KDF identifier registry.
type HpkeKdf uint16

const (
	HpkeKdfReserved   HpkeKdf = 0x0000
	HpkeKdfHkdfSha256 HpkeKdf = 0x0001
	HpkeKdfHkdfSha384 HpkeKdf = 0x0002
	HpkeKdfHkdfSha512 HpkeKdf = 0x0003
)

func (k HpkeKdf) IsAssigned() bool {
	return k <= HpkeKdfHkdfSha512
}

// HpkeAead is an entry of the IANA HPKE AEAD identifier registry.
type HpkeAead uint16

const (
	HpkeAeadReserved         HpkeAead = 0x0000
	HpkeAeadAes128Gcm        HpkeAead = 0x0001
	HpkeAeadAes256Gcm        HpkeAead = 0x0002
	HpkeAeadChaCha20Poly1305 HpkeAead = 0x0003
	HpkeAeadExportOnly       HpkeAead = 0xFFFF
)

func (a HpkeAead) IsAssigned() bool {
	return a <= HpkeAeadChaCha20Poly1305 || a == HpkeAeadExportOnly
}

// HpkeParameters describes one HPKE configuration. Key is the public key
// of the sender as an opaque JWK object.
type HpkeParameters struct {
	Mode HpkeMode        `json:"mode"`
	Kem  HpkeKem         `json:"kem"`
	Kdf  HpkeKdf         `json:"kdf"`
	Aead HpkeAead        `json:"aead"`
	Key  json.RawMessage `json:"key,omitempty"`
}

type hpkeParametersAlias HpkeParameters

func (p *HpkeParameters) UnmarshalJSON(data []byte) error {
	var alias hpkeParametersAlias
	if err := decodeStrict(data, &alias, "mode", "kem", "kdf", "aead"); err != nil {
		return err
	}
	if len(alias.Key) > 0 && string(alias.Key) == "null" {
		alias.Key = nil
	}
	*p = HpkeParameters(alias)
	return nil
}

// Equal compares the algorithm choices of p and other. Keys are ephemeral
// and are not compared.
func (p HpkeParameters) Equal(other HpkeParameters) bool {
	return p.Mode == other.Mode && p.Kem == other.Kem && p.Kdf == other.Kdf && p.Aead == other.Aead
}

func (p HpkeParameters) String() string {
	return fmt.Sprintf("%s/kem=0x%04x/kdf=0x%04x/aead=0x%04x", p.Mode, uint16(p.Kem), uint16(p.Kdf), uint16(p.Aead))
}
