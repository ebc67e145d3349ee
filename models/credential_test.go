package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCredential_Unknown(t *testing.T) {
	input := `{"type": "future-kind", "alpha": 1, "beta": {"x": ["y", "z"]}, "gamma": null}`

	cred, err := DecodeCredential([]byte(input))
	require.NoError(t, err)

	unknown, ok := cred.(*UnknownCredential)
	require.True(t, ok)
	assert.Equal(t, CredentialType("future-kind"), unknown.CredentialType())
	assert.False(t, unknown.CredentialType().IsKnown())
	assert.Len(t, unknown.Content, 3)
	assert.NotContains(t, unknown.Content, "type")

	data, err := json.Marshal(unknown)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(data))
}

func TestDecodeCredential_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   error
		wantField string
	}{
		{
			name:      "missing type",
			input:     `{"content": {"fieldType": "string", "value": "x"}}`,
			wantErr:   ErrMissingTag,
			wantField: "type",
		},
		{
			name:      "passkey missing members",
			input:     `{"type": "passkey", "rpId": "example.com"}`,
			wantErr:   ErrMissingField,
			wantField: "credentialId",
		},
		{
			name:      "note missing content",
			input:     `{"type": "note"}`,
			wantErr:   ErrMissingField,
			wantField: "content",
		},
		{
			name:    "basic auth with mismatched field",
			input:   `{"type": "basic-auth", "password": {"fieldType": "string", "value": "pw"}}`,
			wantErr: ErrFieldTypeMismatch,
		},
		{
			name:    "totp with invalid secret",
			input:   `{"type": "totp", "secret": 12, "period": 30, "digits": 6, "algorithm": "sha1"}`,
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCredential([]byte(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantField != "" {
				var fe *FieldError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.wantField, fe.Field)
			}
		})
	}
}

func TestBasicAuthCredential_Encode(t *testing.T) {
	cred := &BasicAuthCredential{
		Username: NewField(EditableFieldString("alice")),
		Password: NewField(EditableFieldConcealedString("s3cret")),
	}

	data, err := json.Marshal(cred)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "basic-auth",
		"username": {"fieldType": "string", "value": "alice"},
		"password": {"fieldType": "concealed-string", "value": "s3cret"}
	}`, string(data))

	decoded, err := DecodeCredential(data)
	require.NoError(t, err)
	assert.Equal(t, cred, decoded)
}

func TestTotpCredential(t *testing.T) {
	input := `{"type": "totp", "secret": "jbsw y3dp ehpk 3pxp", "period": 30, "digits": 6, "algorithm": "sha3-256", "issuer": "Example"}`

	cred, err := DecodeCredential([]byte(input))
	require.NoError(t, err)

	totp, ok := cred.(*TotpCredential)
	require.True(t, ok)
	assert.Equal(t, uint8(30), totp.Period)
	assert.Equal(t, uint8(6), totp.Digits)
	assert.Equal(t, OTPHashAlgorithm("sha3-256"), totp.Algorithm)
	assert.False(t, totp.Algorithm.IsKnown())

	data, err := json.Marshal(totp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "totp", "secret": "JBSWY3DPEHPK3PXP", "period": 30, "digits": 6, "algorithm": "sha3-256", "issuer": "Example"}`, string(data))
}

func TestKnownCredentials_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  CredentialType
	}{
		{
			name:  "passkey",
			input: `{"type":"passkey","credentialId":"Y3JlZA","rpId":"example.com","username":"alice","userDisplayName":"Alice","userHandle":"dXNlcg","key":"a2V5","fido2Extensions":{"hmacSecret":{"alias":"a","hmacSecret":"c2VjcmV0"},"payments":true,"supplementalKeys":{"device":true}}}`,
			want:  CredentialTypePasskey,
		},
		{
			name:  "file",
			input: `{"type":"file","id":"ZmlsZQ","name":"doc.pdf","decryptedSize":1024,"integrityHash":"aGFzaA"}`,
			want:  CredentialTypeFile,
		},
		{
			name:  "credit card",
			input: `{"type":"credit-card","number":{"fieldType":"concealed-string","value":"4111111111111111"},"expiryDate":{"fieldType":"year-month","value":"2030-07"}}`,
			want:  CredentialTypeCreditCard,
		},
		{
			name:  "address",
			input: `{"type":"address","city":{"fieldType":"string","value":"Montreal"},"territory":{"fieldType":"subdivision-code","value":"CA-QC"},"country":{"fieldType":"country-code","value":"CA"}}`,
			want:  CredentialTypeAddress,
		},
		{
			name:  "drivers license",
			input: `{"type":"drivers-license","birthDate":{"fieldType":"date","value":"1990-05-01"},"licenseNumber":{"fieldType":"string","value":"D123"}}`,
			want:  CredentialTypeDriversLicense,
		},
		{
			name:  "identity document",
			input: `{"type":"identity-document","identificationNumber":{"fieldType":"string","value":"123-45-6789"}}`,
			want:  CredentialTypeIdentityDocument,
		},
		{
			name:  "passport",
			input: `{"type":"passport","passportNumber":{"fieldType":"string","value":"P1"},"issuingCountry":{"fieldType":"country-code","value":"FR"}}`,
			want:  CredentialTypePassport,
		},
		{
			name:  "person name",
			input: `{"type":"person-name","given":{"fieldType":"string","value":"Ada"},"surname":{"fieldType":"string","value":"Lovelace"}}`,
			want:  CredentialTypePersonName,
		},
		{
			name:  "ssh key",
			input: `{"type":"ssh-key","keyType":"ssh-ed25519","privateKey":"a2V5","keyComment":"laptop","creationDate":{"fieldType":"date","value":"2024-01-02"}}`,
			want:  CredentialTypeSSHKey,
		},
		{
			name:  "api key",
			input: `{"type":"api-key","key":{"fieldType":"concealed-string","value":"sk-1"},"url":{"fieldType":"string","value":"https://api.example.com"}}`,
			want:  CredentialTypeAPIKey,
		},
		{
			name:  "generated password",
			input: `{"type":"generated-password","password":"correct horse"}`,
			want:  CredentialTypeGeneratedPassword,
		},
		{
			name:  "item reference",
			input: `{"type":"item-reference","reference":{"item":"aXRlbQ","account":"YWNj"}}`,
			want:  CredentialTypeItemReference,
		},
		{
			name:  "custom fields",
			input: `{"type":"custom-fields","label":"Extra","fields":[{"fieldType":"number","value":"7"}]}`,
			want:  CredentialTypeCustomFields,
		},
		{
			name:  "wifi",
			input: `{"type":"wifi","ssid":{"fieldType":"string","value":"home"},"networkSecurityType":{"fieldType":"wifi-network-security-type","value":"wpa2-personal"},"hidden":{"fieldType":"boolean","value":"false"}}`,
			want:  CredentialTypeWifi,
		},
		{
			name:  "note",
			input: `{"type":"note","content":{"fieldType":"string","value":"remember"}}`,
			want:  CredentialTypeNote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := DecodeCredential([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cred.CredentialType())
			assert.True(t, cred.CredentialType().IsKnown())

			data, err := json.Marshal(cred)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(data))
		})
	}
}

func TestCredentials_Mixed(t *testing.T) {
	input := `[
		{"type": "note", "content": {"fieldType": "string", "value": "hi"}},
		{"type": "brand-new", "payload": 1}
	]`

	var creds Credentials
	require.NoError(t, json.Unmarshal([]byte(input), &creds))
	require.Len(t, creds, 2)
	assert.IsType(t, &NoteCredential{}, creds[0])
	assert.IsType(t, &UnknownCredential{}, creds[1])

	t.Run("error names the index", func(t *testing.T) {
		var bad Credentials
		err := json.Unmarshal([]byte(`[{"type": "note"}, {"type": "note"}]`), &bad)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "credentials[0].content", fe.Field)
	})
}

func TestFilterCredentials(t *testing.T) {
	creds := Credentials{
		&BasicAuthCredential{},
		&TotpCredential{},
		&UnknownCredential{Type: "future"},
	}

	assert.Len(t, FilterCredentials(creds, nil), 3)

	filtered := FilterCredentials(creds, []CredentialType{CredentialTypeTotp, "future"})
	require.Len(t, filtered, 2)
	assert.Equal(t, CredentialTypeTotp, filtered[0].CredentialType())
	assert.Equal(t, CredentialType("future"), filtered[1].CredentialType())
}

func TestSSHKeyCredential_Dates(t *testing.T) {
	cred, err := DecodeCredential([]byte(`{"type":"ssh-key","keyType":"ssh-rsa","privateKey":"a2V5","expirationDate":{"fieldType":"date","value":"2030-12-31"}}`))
	require.NoError(t, err)

	key := cred.(*SSHKeyCredential)
	require.NotNil(t, key.ExpirationDate)
	assert.True(t, key.ExpirationDate.Value.Equal(time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
