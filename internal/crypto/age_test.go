package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeSealer_RoundTrip(t *testing.T) {
	recipient, identity, err := GenerateAgeKeyPair()
	require.NoError(t, err)
	assert.Contains(t, recipient, "age1")
	assert.Contains(t, identity, "AGE-SECRET-KEY-1")

	sealer, err := NewAgeSealer([]string{"# importer key", recipient}, []string{identity})
	require.NoError(t, err)
	assert.Equal(t, "age", sealer.Name())

	blob, err := sealer.Seal([]byte("payload"))
	require.NoError(t, err)

	opened, err := sealer.Open(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), opened)
}

func TestAgeSealer_OneDirectional(t *testing.T) {
	recipient, identity, err := GenerateAgeKeyPair()
	require.NoError(t, err)

	exporter, err := NewAgeSealer([]string{recipient}, nil)
	require.NoError(t, err)
	importer, err := NewAgeSealer(nil, []string{identity})
	require.NoError(t, err)

	blob, err := exporter.Seal([]byte("one way"))
	require.NoError(t, err)

	_, err = exporter.Open(blob)
	require.ErrorIs(t, err, ErrNoIdentities)
	_, err = importer.Seal([]byte("x"))
	require.ErrorIs(t, err, ErrNoRecipients)

	opened, err := importer.Open(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("one way"), opened)
}

func TestAgeSealer_WrongIdentity(t *testing.T) {
	recipient, _, err := GenerateAgeKeyPair()
	require.NoError(t, err)
	_, otherIdentity, err := GenerateAgeKeyPair()
	require.NoError(t, err)

	exporter, err := NewAgeSealer([]string{recipient}, nil)
	require.NoError(t, err)
	intruder, err := NewAgeSealer(nil, []string{otherIdentity})
	require.NoError(t, err)

	blob, err := exporter.Seal([]byte("private"))
	require.NoError(t, err)

	_, err = intruder.Open(blob)
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestNewAgeSealer_InvalidKeys(t *testing.T) {
	_, err := NewAgeSealer([]string{"not-a-recipient"}, nil)
	require.Error(t, err)

	_, err = NewAgeSealer(nil, []string{"not-an-identity"})
	require.Error(t, err)
}

func TestAgePassphraseSealer(t *testing.T) {
	sealer, err := NewAgePassphraseSealer("hunter2", 10)
	require.NoError(t, err)
	assert.Equal(t, "age-scrypt", sealer.Name())

	blob, err := sealer.Seal([]byte("scrypt"))
	require.NoError(t, err)

	opened, err := sealer.Open(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("scrypt"), opened)

	other, err := NewAgePassphraseSealer("hunter3", 10)
	require.NoError(t, err)
	_, err = other.Open(blob)
	require.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = NewAgePassphraseSealer("", 0)
	require.ErrorIs(t, err, ErrEmptyPassphrase)
}
