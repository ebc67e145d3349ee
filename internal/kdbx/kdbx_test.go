package kdbx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobischo/gokeepasslib/v3"
	w "github.com/tobischo/gokeepasslib/v3/wrappers"

	"github.com/MKhiriev/go-cxf/internal/utils"
	"github.com/MKhiriev/go-cxf/internal/validators"
	"github.com/MKhiriev/go-cxf/models"
)

const testPassword = "kdbx-password"

func value(key, content string) gokeepasslib.ValueData {
	return gokeepasslib.ValueData{Key: key, Value: gokeepasslib.V{Content: content}}
}

func protectedValue(key, content string) gokeepasslib.ValueData {
	return gokeepasslib.ValueData{Key: key, Value: gokeepasslib.V{Content: content, Protected: w.NewBoolWrapper(true)}}
}

// newTestDatabase builds Root{mail entry, Work{vpn entry, Servers{ssh note}}}.
func newTestDatabase() *gokeepasslib.Database {
	db := gokeepasslib.NewDatabase()
	db.Content.Meta.DatabaseName = "Personal"

	mail := gokeepasslib.NewEntry()
	mail.Values = []gokeepasslib.ValueData{
		value(keyTitle, "Mail"),
		value(keyUserName, "alice"),
		protectedValue(keyPassword, "s3cret"),
		value(keyURL, "https://mail.example.com"),
		value(keyOTP, "otpauth://totp/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example&digits=8"),
		protectedValue("Recovery code", "1234-5678"),
		value("Plan", "premium"),
	}
	mail.Tags = "mail; personal"

	vpn := gokeepasslib.NewEntry()
	vpn.Values = []gokeepasslib.ValueData{
		value(keyTitle, "VPN"),
		protectedValue(keyPassword, "vpn-pass"),
	}

	ssh := gokeepasslib.NewEntry()
	ssh.Values = []gokeepasslib.ValueData{
		value(keyTitle, "Server notes"),
		value(keyNotes, "ssh root@10.0.0.1"),
	}

	servers := gokeepasslib.NewGroup()
	servers.Name = "Servers"
	servers.Entries = []gokeepasslib.Entry{ssh}

	work := gokeepasslib.NewGroup()
	work.Name = "Work"
	work.Entries = []gokeepasslib.Entry{vpn}
	work.Groups = []gokeepasslib.Group{servers}

	root := gokeepasslib.NewGroup()
	root.Name = "Root"
	root.Entries = []gokeepasslib.Entry{mail}
	root.Groups = []gokeepasslib.Group{work}

	db.Content.Root = &gokeepasslib.RootData{Groups: []gokeepasslib.Group{root}}
	return db
}

// ---------------------------------------------------------------------------
// Open
// ---------------------------------------------------------------------------

func TestOpenFile_RoundTrip(t *testing.T) {
	db := newTestDatabase()
	db.Credentials = gokeepasslib.NewPasswordCredentials(testPassword)
	require.NoError(t, db.LockProtectedEntries())

	var buf bytes.Buffer
	require.NoError(t, gokeepasslib.NewEncoder(&buf).Encode(db))

	path := filepath.Join(t.TempDir(), "test.kdbx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	t.Run("correct password", func(t *testing.T) {
		opened, err := OpenFile(path, testPassword)
		require.NoError(t, err)

		entries := allEntries(opened.Content.Root.Groups)
		require.Len(t, entries, 3)
		assert.Equal(t, "s3cret", entries[0].GetPassword())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := OpenFile(path, "nope")
		require.Error(t, err)
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := OpenFile(path, "")
		require.ErrorIs(t, err, ErrEmptyPassword)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenFile(filepath.Join(t.TempDir(), "absent.kdbx"), testPassword)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

// ---------------------------------------------------------------------------
// Converter
// ---------------------------------------------------------------------------

func TestConverter_ToHeader(t *testing.T) {
	db := newTestDatabase()
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	c := &Converter{ids: utils.NewIDGenerator(), now: func() time.Time { return now }}

	header, err := c.ToHeader(db, Options{
		ExporterRpID:        "keepass.local",
		ExporterDisplayName: "KeePass",
		Username:            "alice",
		Email:               "alice@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, models.CurrentVersion, header.Version)
	assert.Equal(t, "keepass.local", header.ExporterRpID)
	assert.Equal(t, now, header.Timestamp.Time)
	require.Len(t, header.Accounts, 1)

	acc := header.Accounts[0]
	root := db.Content.Root.Groups[0]
	assert.Equal(t, utils.FromUUID(root.UUID), acc.ID)
	assert.Equal(t, "Personal", acc.FullName)
	require.Len(t, acc.Items, 3)

	t.Run("login entry", func(t *testing.T) {
		mail := acc.Items[0]
		assert.Equal(t, "Mail", mail.Title)
		assert.Equal(t, models.ItemTypeLogin, mail.Type)
		assert.Equal(t, []string{"mail", "personal"}, mail.Tags)
		require.NotNil(t, mail.Scope)
		assert.Equal(t, []string{"https://mail.example.com"}, mail.Scope.URLs)
		assert.NotNil(t, mail.CreationAt)
		require.Len(t, mail.Credentials, 3)

		basic := mail.Credentials[0].(*models.BasicAuthCredential)
		assert.Equal(t, models.EditableFieldString("alice"), basic.Username.Value)
		assert.Equal(t, models.EditableFieldConcealedString("s3cret"), basic.Password.Value)

		totp := mail.Credentials[1].(*models.TotpCredential)
		assert.Equal(t, "Example", totp.Issuer)
		assert.Equal(t, "alice@example.com", totp.Username)
		assert.Equal(t, uint8(8), totp.Digits)
		assert.Equal(t, uint8(30), totp.Period)
		assert.Equal(t, "JBSWY3DPEHPK3PXP", totp.Secret.String())

		custom := mail.Credentials[2].(*models.CustomFieldsCredential)
		require.Len(t, custom.Fields, 2)
		assert.Equal(t, models.FieldTypeConcealedString, custom.Fields[0].FieldType())
		assert.Equal(t, models.FieldTypeString, custom.Fields[1].FieldType())
		assert.Equal(t, "Plan", custom.Fields[1].(*models.EditableField[models.EditableFieldString]).Label)
	})

	t.Run("note entry", func(t *testing.T) {
		note := acc.Items[2]
		assert.Equal(t, models.ItemTypeDocument, note.Type)
		require.Len(t, note.Credentials, 1)
		assert.Equal(t, models.CredentialTypeNote, note.Credentials[0].CredentialType())
	})

	t.Run("groups become nested collections", func(t *testing.T) {
		require.Len(t, acc.Collections, 1)
		work := acc.Collections[0]
		assert.Equal(t, "Work", work.Title)
		require.Len(t, work.Items, 1)
		assert.Equal(t, acc.Items[1].ID, work.Items[0].Item)
		require.Len(t, work.SubCollections, 1)
		assert.Equal(t, "Servers", work.SubCollections[0].Title)
		assert.Equal(t, acc.Items[2].ID, work.SubCollections[0].Items[0].Item)
	})

	t.Run("result is a valid document", func(t *testing.T) {
		require.NoError(t, validators.NewDocumentValidator().Validate(t.Context(), header))
		assert.Empty(t, validators.FindDanglingLinks(header))

		data, err := models.Encode(header)
		require.NoError(t, err)
		decoded, err := models.Decode(data)
		require.NoError(t, err)
		assert.Len(t, decoded.Accounts[0].Items, 3)
	})
}

func TestConverter_ToHeader_NoContent(t *testing.T) {
	_, err := NewConverter().ToHeader(&gokeepasslib.Database{}, Options{})
	require.ErrorIs(t, err, ErrNoContent)
}

func TestConverter_ToHeader_Attachments(t *testing.T) {
	db := newTestDatabase()
	content := []byte("ssh-ed25519 AAAA... alice@laptop")

	bin := db.AddBinary(content)
	require.NotNil(t, bin)
	vpn := &db.Content.Root.Groups[0].Groups[0].Entries[0]
	vpn.Binaries = append(vpn.Binaries, bin.CreateReference("id_ed25519.pub"))

	var received []Attachment
	header, err := NewConverter().ToHeader(db, Options{
		ExporterRpID: "keepass.local",
		Attachments: func(a Attachment) error {
			received = append(received, a)
			return nil
		},
	})
	require.NoError(t, err)

	item := header.Accounts[0].Items[1]
	require.Len(t, item.Credentials, 2)
	file, ok := item.Credentials[1].(*models.FileCredential)
	require.True(t, ok)
	assert.Equal(t, "id_ed25519.pub", file.Name)
	assert.Equal(t, uint64(len(content)), file.DecryptedSize)
	assert.Equal(t, utils.IntegrityHash(content), file.IntegrityHash)

	require.Len(t, received, 1)
	assert.Equal(t, file.ID, received[0].ID)
	assert.Equal(t, content, received[0].Content)

	t.Run("ids are stable", func(t *testing.T) {
		again, err := NewConverter().ToHeader(db, Options{ExporterRpID: "keepass.local"})
		require.NoError(t, err)
		assert.Equal(t, file.ID, again.Accounts[0].Items[1].Credentials[1].(*models.FileCredential).ID)
	})

	t.Run("missing pool entry", func(t *testing.T) {
		vpn.Binaries = append(vpn.Binaries, gokeepasslib.BinaryReference{Name: "ghost.txt"})
		vpn.Binaries[len(vpn.Binaries)-1].Value.ID = 999

		_, err := NewConverter().ToHeader(db, Options{})
		require.ErrorIs(t, err, ErrMissingAttachment)
	})
}

func TestParseOTPAuth(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    *models.TotpCredential
		wantErr bool
	}{
		{
			name: "defaults",
			uri:  "otpauth://totp/alice?secret=JBSWY3DPEHPK3PXP",
			want: &models.TotpCredential{
				Secret:    mustBase32(t, "JBSWY3DPEHPK3PXP"),
				Period:    30,
				Digits:    6,
				Username:  "alice",
				Algorithm: models.OTPHashAlgorithmSha1,
			},
		},
		{
			name: "explicit parameters",
			uri:  "otpauth://totp/ACME:bob?secret=JBSWY3DPEHPK3PXP&period=60&digits=8&algorithm=SHA256",
			want: &models.TotpCredential{
				Secret:    mustBase32(t, "JBSWY3DPEHPK3PXP"),
				Period:    60,
				Digits:    8,
				Username:  "bob",
				Issuer:    "ACME",
				Algorithm: models.OTPHashAlgorithmSha256,
			},
		},
		{name: "hotp", uri: "otpauth://hotp/alice?secret=JBSWY3DPEHPK3PXP&counter=1", wantErr: true},
		{name: "bad period", uri: "otpauth://totp/alice?secret=JBSWY3DPEHPK3PXP&period=0", wantErr: true},
		{name: "bad secret", uri: "otpauth://totp/alice?secret=!!!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOTPAuth(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func mustBase32(t *testing.T, s string) models.Base32 {
	t.Helper()
	b, err := models.ParseBase32(s)
	require.NoError(t, err)
	return b
}
