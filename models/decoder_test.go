// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const documentFixture = `{
	"version": {"major": 1, "minor": 0},
	"exporterRpId": "exporter.example.com",
	"exporterDisplayName": "Exporter",
	"timestamp": 1700000000,
	"accounts": [{
		"id": "YWNjb3VudDE",
		"username": "alice",
		"email": "alice@example.com",
		"fullName": "Alice Example",
		"collections": [{
			"id": "Y29sbDE",
			"title": "Work",
			"items": [{"item": "aXRlbTE"}],
			"subCollections": [{"id": "Y29sbDI", "title": "Nested", "items": []}]
		}],
		"items": [{
			"id": "aXRlbTE",
			"creationAt": 1700000000,
			"modifiedAt": 1700000100,
			"type": "login",
			"title": "Example",
			"favorite": true,
			"scope": {"urls": ["https://example.com"], "androidApps": [{"bundleId": "com.example.app"}]},
			"credentials": [
				{"type": "basic-auth", "username": {"fieldType": "string", "value": "alice"}, "password": {"fieldType": "concealed-string", "value": "s3cret"}},
				{"type": "totp", "secret": "JBSWY3DPEHPK3PXP", "period": 30, "digits": 6, "algorithm": "sha1"},
				{"type": "future-kind", "payload": {"a": 1}}
			],
			"tags": ["work"],
			"extensions": [
				{"name": "shared", "accessors": [{"type": "user", "accountId": "dXNlcjE", "name": "Bob", "permissions": ["read"]}]},
				{"name": "acme-labels", "labels": ["pinned"]}
			]
		}]
	}]
}`

func fixtureWithVersion(major int) string {
	return strings.Replace(documentFixture, `"major": 1`, fmt.Sprintf(`"major": %d`, major), 1)
}

// ---------------------------------------------------------------------------
// Decode
// ---------------------------------------------------------------------------

func TestDecoder_Decode(t *testing.T) {
	header, err := NewDecoder().Decode([]byte(documentFixture))
	require.NoError(t, err)

	assert.Equal(t, Version{Major: 1, Minor: 0}, header.Version)
	assert.Equal(t, "exporter.example.com", header.ExporterRpID)
	assert.Equal(t, int64(1700000000), header.Timestamp.Unix())
	require.Len(t, header.Accounts, 1)

	acc := header.Accounts[0]
	assert.Equal(t, "account1", string(acc.ID))
	require.Len(t, acc.Collections, 1)
	require.Len(t, acc.Collections[0].SubCollections, 1)
	assert.Equal(t, "item1", string(acc.Collections[0].Items[0].Item))

	item, ok := acc.FindItem(B64Url("item1"))
	require.True(t, ok)
	assert.Equal(t, ItemTypeLogin, item.Type)
	require.NotNil(t, item.CreationAt)
	assert.Equal(t, int64(1700000100), item.ModifiedAt.Unix())
	require.NotNil(t, item.Favorite)
	assert.True(t, *item.Favorite)
	require.NotNil(t, item.Scope)
	assert.Equal(t, []string{"https://example.com"}, item.Scope.URLs)

	require.Len(t, item.Credentials, 3)
	assert.IsType(t, &BasicAuthCredential{}, item.Credentials[0])
	assert.IsType(t, &TotpCredential{}, item.Credentials[1])
	assert.IsType(t, &UnknownCredential{}, item.Credentials[2])

	require.Len(t, item.Extensions, 2)
	assert.IsType(t, &SharedExtension{}, item.Extensions[0])
	assert.IsType(t, &UnknownExtension{}, item.Extensions[1])
}

func TestDecoder_RoundTrip(t *testing.T) {
	header, err := Decode([]byte(documentFixture))
	require.NoError(t, err)

	encoded, err := Encode(header)
	require.NoError(t, err)
	assert.JSONEq(t, documentFixture, string(encoded))

	again, err := Decode(encoded)
	require.NoError(t, err)
	reencoded, err := EncodeIndent(again)
	require.NoError(t, err)
	assert.JSONEq(t, string(encoded), string(reencoded))
}

func TestDecoder_ExternalExtensions(t *testing.T) {
	header, err := NewDecoder(WithExtensionDecoder(labelsDecoder())).Decode([]byte(documentFixture))
	require.NoError(t, err)

	exts := header.Accounts[0].Items[0].Extensions
	labels, ok := exts[1].(*labelsExtension)
	require.True(t, ok)
	assert.Equal(t, []string{"pinned"}, labels.Labels)

	encoded, err := Encode(header)
	require.NoError(t, err)
	assert.JSONEq(t, documentFixture, string(encoded))
}

func TestDecoder_ExternalExtensionsInFields(t *testing.T) {
	doc := strings.Replace(documentFixture,
		`"username": {"fieldType": "string", "value": "alice"}`,
		`"username": {"fieldType": "string", "value": "alice", "extensions": [{"name": "acme-labels", "labels": ["login"]}]}`, 1)

	header, err := NewDecoder(WithExtensionDecoder(labelsDecoder())).Decode([]byte(doc))
	require.NoError(t, err)

	basic := header.Accounts[0].Items[0].Credentials[0].(*BasicAuthCredential)
	require.Len(t, basic.Username.Extensions, 1)
	assert.IsType(t, &labelsExtension{}, basic.Username.Extensions[0])
}

func TestDecoder_Version(t *testing.T) {
	t.Run("newer major is rejected", func(t *testing.T) {
		_, err := Decode([]byte(fixtureWithVersion(2)))
		require.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("older major is rejected", func(t *testing.T) {
		_, err := Decode([]byte(fixtureWithVersion(0)))
		require.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("newer minor is accepted", func(t *testing.T) {
		doc := strings.Replace(documentFixture, `"minor": 0`, `"minor": 3`, 1)
		header, err := Decode([]byte(doc))
		require.NoError(t, err)
		require.Error(t, header.CanModify())
	})

	t.Run("missing version", func(t *testing.T) {
		_, err := Decode([]byte(`{"exporterRpId": "x"}`))
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("current version can be modified", func(t *testing.T) {
		header, err := Decode([]byte(documentFixture))
		require.NoError(t, err)
		require.NoError(t, header.CanModify())
	})
}

func TestDecoder_StructuralErrors(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantErr   error
		wantField string
	}{
		{
			name:      "missing exporter",
			doc:       strings.Replace(documentFixture, `"exporterRpId": "exporter.example.com",`, ``, 1),
			wantErr:   ErrMissingField,
			wantField: "exporterRpId",
		},
		{
			name:      "missing account email",
			doc:       strings.Replace(documentFixture, `"email": "alice@example.com",`, ``, 1),
			wantErr:   ErrMissingField,
			wantField: "accounts[0].email",
		},
		{
			name:      "missing item title",
			doc:       strings.Replace(documentFixture, `"title": "Example",`, ``, 1),
			wantErr:   ErrMissingField,
			wantField: "accounts[0].items[0].title",
		},
		{
			name:    "bad timestamp",
			doc:     strings.Replace(documentFixture, `"timestamp": 1700000000`, `"timestamp": true`, 1),
			wantErr: ErrTimestampType,
		},
		{
			name:    "field type mismatch",
			doc:     strings.Replace(documentFixture, `"fieldType": "concealed-string"`, `"fieldType": "string"`, 1),
			wantErr: ErrFieldTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantField != "" {
				var fe *FieldError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.wantField, fe.Field)
			}
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		_, err := Decode([]byte(`{"version": `))
		require.Error(t, err)
	})
}

// ---------------------------------------------------------------------------
// DecodeTolerant
// ---------------------------------------------------------------------------

const tolerantFixture = `{
	"version": {"major": 1, "minor": 0},
	"exporterRpId": "exporter.example.com",
	"exporterDisplayName": "Exporter",
	"timestamp": "2023-11-14T22:13:20Z",
	"accounts": [
		{
			"id": "YWNjMQ", "username": "a", "email": "a@example.com", "collections": [],
			"items": [
				{"id": "aTE", "title": "good", "credentials": []},
				{"id": "aTI", "title": "bad", "credentials": [{"type": "basic-auth", "password": {"fieldType": "string", "value": "x"}}]},
				{"id": "aTM", "title": "good too", "credentials": [{"type": "note", "content": {"fieldType": "string", "value": "n"}}]}
			]
		},
		{
			"id": "YWNjMg", "username": "b", "email": "b@example.com", "collections": [],
			"items": [
				{"title": "no id", "credentials": []},
				{"id": "aTQ", "title": "fine", "credentials": []}
			]
		}
	]
}`

func TestDecoder_DecodeTolerant(t *testing.T) {
	header, itemErrs, err := NewDecoder().DecodeTolerant([]byte(tolerantFixture))
	require.NoError(t, err)

	require.Len(t, header.Accounts, 2)
	assert.Len(t, header.Accounts[0].Items, 2)
	assert.Len(t, header.Accounts[1].Items, 1)

	require.Len(t, itemErrs, 2)

	assert.Equal(t, "acc1", string(itemErrs[0].AccountID))
	assert.Equal(t, 1, itemErrs[0].Index)
	assert.Equal(t, "aTI", itemErrs[0].ItemID)
	require.ErrorIs(t, itemErrs[0], ErrFieldTypeMismatch)

	assert.Equal(t, "acc2", string(itemErrs[1].AccountID))
	assert.Equal(t, 0, itemErrs[1].Index)
	assert.Empty(t, itemErrs[1].ItemID)
	require.ErrorIs(t, itemErrs[1], ErrMissingField)
	assert.Contains(t, itemErrs[1].Error(), "account YWNjMg: item 0")
}

func TestDecoder_StrictFailsOnSingleBadItem(t *testing.T) {
	_, err := Decode([]byte(tolerantFixture))
	require.ErrorIs(t, err, ErrFieldTypeMismatch)
}

func TestDecoder_Concurrent(t *testing.T) {
	dec := NewDecoder(WithExtensionDecoder(labelsDecoder()))
	done := make(chan error, 8)

	for i := 0; i < cap(done); i++ {
		go func() {
			_, err := dec.Decode([]byte(documentFixture))
			done <- err
		}()
	}
	for i := 0; i < cap(done); i++ {
		require.NoError(t, <-done)
	}
}

func TestHeader_EncodeEmpty(t *testing.T) {
	ts, err := TimestampFromUnix(0)
	require.NoError(t, err)

	header := &Header{
		Version:             CurrentVersion,
		ExporterRpID:        "rp",
		ExporterDisplayName: "RP",
		Timestamp:           ts,
	}

	data, err := Encode(header)
	require.NoError(t, err)

	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.JSONEq(t, `[]`, string(generic["accounts"]))
	assert.JSONEq(t, `0`, string(generic["timestamp"]))
}
