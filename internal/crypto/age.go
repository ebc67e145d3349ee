package crypto

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
)

// ageSealer seals for a set of age recipients and opens with a set of age
// identities. Either side may be empty for one-directional use.
type ageSealer struct {
	name       string
	recipients []age.Recipient
	identities []age.Identity
}

// NewAgeSealer constructs a [Sealer] from age X25519 recipients
// ("age1...") and identities ("AGE-SECRET-KEY-1..."). Blank lines and
// "#" comments are accepted in both lists, as in age key files.
func NewAgeSealer(recipients, identities []string) (Sealer, error) {
	s := &ageSealer{name: "age"}

	if text := strings.Join(recipients, "\n"); strings.TrimSpace(text) != "" {
		parsed, err := age.ParseRecipients(strings.NewReader(text))
		if err != nil {
			return nil, fmt.Errorf("parse recipients: %w", err)
		}
		s.recipients = parsed
	}

	if text := strings.Join(identities, "\n"); strings.TrimSpace(text) != "" {
		parsed, err := age.ParseIdentities(strings.NewReader(text))
		if err != nil {
			return nil, fmt.Errorf("parse identities: %w", err)
		}
		s.identities = parsed
	}

	return s, nil
}

// NewAgePassphraseSealer constructs a [Sealer] using age's scrypt
// recipient. workFactor is the scrypt log2(N); zero keeps age's default.
func NewAgePassphraseSealer(passphrase string, workFactor int) (Sealer, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("scrypt recipient: %w", err)
	}
	if workFactor > 0 {
		recipient.SetWorkFactor(workFactor)
	}

	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("scrypt identity: %w", err)
	}

	return &ageSealer{
		name:       "age-scrypt",
		recipients: []age.Recipient{recipient},
		identities: []age.Identity{identity},
	}, nil
}

func (s *ageSealer) Name() string { return s.name }

func (s *ageSealer) Seal(plaintext []byte) ([]byte, error) {
	if len(s.recipients) == 0 {
		return nil, ErrNoRecipients
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, s.recipients...)
	if err != nil {
		return nil, fmt.Errorf("age encrypt: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("age write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("age close: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ageSealer) Open(blob []byte) ([]byte, error) {
	if len(s.identities) == 0 {
		return nil, ErrNoIdentities
	}

	r, err := age.Decrypt(bytes.NewReader(blob), s.identities...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// GenerateAgeKeyPair returns a new X25519 recipient and its identity in
// their age string encodings.
func GenerateAgeKeyPair() (recipient, identity string, err error) {
	id, err := age.GenerateX25519Identity()
	if err != nil {
		return "", "", fmt.Errorf("generate identity: %w", err)
	}
	return id.Recipient().String(), id.String(), nil
}
