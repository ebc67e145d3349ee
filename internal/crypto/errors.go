package crypto

import "errors"

var (
	ErrCiphertextTooShort = errors.New("ciphertext too short")
	ErrDecryptionFailed   = errors.New("decryption failed")
	ErrNoRecipients       = errors.New("no recipients to seal for")
	ErrNoIdentities       = errors.New("no identities to open with")
	ErrEmptyPassphrase    = errors.New("empty passphrase")
)
