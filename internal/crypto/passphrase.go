// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	saltSize    = 16
	argonKeyLen = 32 // AES-256
)

// ArgonParams are the Argon2id cost parameters used to derive the sealing
// key from a passphrase.
type ArgonParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultArgonParams returns the parameters recommended by OWASP (2024):
// 1 iteration, 64 MiB, 4 threads.
func DefaultArgonParams() ArgonParams {
	return ArgonParams{
		Time:      1,
		MemoryKiB: 64 * 1024,
		Threads:   4,
	}
}

// passphraseSealer is the private implementation of a passphrase based
// [Sealer]. Blobs have the layout salt (16 bytes) ‖ nonce (12 bytes) ‖
// ciphertext, so the same passphrase opens them without any side channel.
type passphraseSealer struct {
	passphrase []byte
	params     ArgonParams
}

// NewPassphraseSealer constructs a [Sealer] that derives a fresh AES-256-GCM
// key for every blob with Argon2id over passphrase and a random salt.
func NewPassphraseSealer(passphrase string, params ArgonParams) (Sealer, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return &passphraseSealer{
		passphrase: []byte(passphrase),
		params:     params,
	}, nil
}

func (s *passphraseSealer) Name() string { return "passphrase" }

func (s *passphraseSealer) deriveKey(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, s.params.Time, s.params.MemoryKiB, s.params.Threads, argonKeyLen)
}

func (s *passphraseSealer) Seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := newGCM(s.deriveKey(salt))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	blob := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	return gcm.Seal(blob, nonce, plaintext, nil), nil
}

func (s *passphraseSealer) Open(blob []byte) ([]byte, error) {
	if len(blob) < saltSize {
		return nil, ErrCiphertextTooShort
	}
	salt, rest := blob[:saltSize], blob[saltSize:]

	gcm, err := newGCM(s.deriveKey(salt))
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize+gcm.Overhead() {
		return nil, ErrCiphertextTooShort
	}
	nonce, ciphertext := rest[:nonceSize], rest[nonceSize:]

	// A wrong passphrase surfaces here as an authentication tag mismatch.
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
