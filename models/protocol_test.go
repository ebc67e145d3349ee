package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRequest_Decode(t *testing.T) {
	input := `{
		"version": 0,
		"hpke": [
			{"mode": "base", "kem": 32, "kdf": 1, "aead": 3, "key": {"kty": "OKP", "crv": "X25519", "x": "abc"}},
			{"mode": "base", "kem": 16, "kdf": 1, "aead": 1, "key": null}
		],
		"importer": "importer.example.com",
		"credentialTypes": ["basic-auth", "passkey"],
		"knownExtensions": ["shared"]
	}`

	var req ExportRequest
	require.NoError(t, json.Unmarshal([]byte(input), &req))

	assert.True(t, req.Version.IsKnown())
	assert.Equal(t, "importer.example.com", req.Importer)
	require.Len(t, req.Hpke, 2)
	assert.Equal(t, HpkeKemDhX25519, req.Hpke[0].Kem)
	assert.Equal(t, HpkeAeadChaCha20Poly1305, req.Hpke[0].Aead)
	assert.NotEmpty(t, req.Hpke[0].Key)
	assert.Nil(t, req.Hpke[1].Key)
	assert.Equal(t, []CredentialType{CredentialTypeBasicAuth, CredentialTypePasskey}, req.CredentialTypes)
	assert.Equal(t, []ExtensionName{ExtensionNameShared}, req.KnownExtensions)
}

func TestExportRequest_DecodeErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantField string
	}{
		{
			name:      "missing importer",
			input:     `{"version": 0, "hpke": []}`,
			wantField: "importer",
		},
		{
			name:      "missing hpke",
			input:     `{"version": 0, "importer": "x"}`,
			wantField: "hpke",
		},
		{
			name:      "hpke without aead",
			input:     `{"version": 0, "importer": "x", "hpke": [{"mode": "base", "kem": 32, "kdf": 1}]}`,
			wantField: "aead",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ExportRequest
			err := json.Unmarshal([]byte(tt.input), &req)
			require.ErrorIs(t, err, ErrMissingField)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantField, fe.Field)
		})
	}
}

func TestExportResponse_Encode(t *testing.T) {
	resp := ExportResponse{
		Version:  ProtocolVersionV0,
		Hpke:     HpkeParameters{Mode: HpkeModeBase, Kem: HpkeKemDhX25519, Kdf: HpkeKdfHkdfSha256, Aead: HpkeAeadAes256Gcm},
		Exporter: "exporter.example.com",
		Payload:  B64Url("sealed"),
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version": 0,
		"hpke": {"mode": "base", "kem": 32, "kdf": 1, "aead": 2},
		"exporter": "exporter.example.com",
		"payload": "c2VhbGVk"
	}`, string(data))

	var decoded ExportResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, resp, decoded)
}

func TestErrorResponse(t *testing.T) {
	data, err := json.Marshal(NewErrorResponse(ErrorCodeIncompatibleHpkeParameters))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version": 0, "error": "incompatible-hpke-parameters"}`, string(data))
}

func TestHpkeParameters_Equal(t *testing.T) {
	a := HpkeParameters{Mode: HpkeModeBase, Kem: HpkeKemDhX25519, Kdf: HpkeKdfHkdfSha256, Aead: HpkeAeadAes128Gcm, Key: json.RawMessage(`{"x":"1"}`)}
	b := a
	b.Key = json.RawMessage(`{"x":"2"}`)

	assert.True(t, a.Equal(b))

	b.Aead = HpkeAeadAes256Gcm
	assert.False(t, a.Equal(b))

	assert.Equal(t, "base/kem=0x0020/kdf=0x0001/aead=0x0001", a.String())
}

func TestHpkeRegistries(t *testing.T) {
	t.Run("kem", func(t *testing.T) {
		for _, kem := range []HpkeKem{HpkeKemReserved, HpkeKemDhP256, HpkeKemDhSecP256K1, HpkeKemDhX25519, HpkeKemDhX448, HpkeKemX25519Kyber768Draft00} {
			assert.True(t, kem.IsAssigned(), "0x%04x", uint16(kem))
		}
		for _, kem := range []HpkeKem{0x0001, 0x0017, 0x0022, 0x0031} {
			assert.False(t, kem.IsAssigned(), "0x%04x", uint16(kem))
		}
	})

	t.Run("kdf", func(t *testing.T) {
		assert.True(t, HpkeKdfHkdfSha512.IsAssigned())
		assert.False(t, HpkeKdf(0x0004).IsAssigned())
	})

	t.Run("aead", func(t *testing.T) {
		assert.True(t, HpkeAeadExportOnly.IsAssigned())
		assert.True(t, HpkeAeadChaCha20Poly1305.IsAssigned())
		assert.False(t, HpkeAead(0x0004).IsAssigned())
	})

	t.Run("mode", func(t *testing.T) {
		assert.True(t, HpkeModeAuthPsk.IsKnown())
		assert.False(t, HpkeMode("bogus").IsKnown())
	})
}
