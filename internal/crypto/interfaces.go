package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer is the encrypt/decrypt boundary around exported documents. The
// payload of an export response is whatever Seal returns; the importer
// hands it back to Open on a Sealer holding the matching secret.
//
// Implementations must be safe for concurrent use.
type Sealer interface {
	// Seal encrypts plaintext. Every call uses fresh randomness, so sealing
	// the same input twice yields different blobs.
	Seal(plaintext []byte) ([]byte, error)

	// Open authenticates and decrypts a blob produced by Seal. It returns
	// ErrDecryptionFailed when the blob was tampered with or the secret is
	// wrong.
	Open(blob []byte) ([]byte, error)

	// Name identifies the scheme in logs and CLI output.
	Name() string
}
