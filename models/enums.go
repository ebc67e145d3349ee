package models

// The enumerations below are open: any string received on the wire is kept
// verbatim, and IsKnown reports whether it is one of the predefined values.

// OTPHashAlgorithm is the HMAC algorithm used by a TOTP generator.
type OTPHashAlgorithm string

const (
	OTPHashAlgorithmSha1   OTPHashAlgorithm = "sha1"
	OTPHashAlgorithmSha256 OTPHashAlgorithm = "sha256"
	OTPHashAlgorithmSha512 OTPHashAlgorithm = "sha512"
)

func (a OTPHashAlgorithm) IsKnown() bool {
	switch a {
	case OTPHashAlgorithmSha1, OTPHashAlgorithmSha256, OTPHashAlgorithmSha512:
		return true
	}
	return false
}

// AndroidAppHashAlgorithm is the digest used for an Android signing
// certificate fingerprint.
type AndroidAppHashAlgorithm string

const (
	AndroidAppHashAlgorithmSha256 AndroidAppHashAlgorithm = "sha256"
	AndroidAppHashAlgorithmSha1   AndroidAppHashAlgorithm = "sha1"
)

func (a AndroidAppHashAlgorithm) IsKnown() bool {
	return a == AndroidAppHashAlgorithmSha256 || a == AndroidAppHashAlgorithmSha1
}

// ItemType is an optional hint describing what an item mostly holds.
type ItemType string

const (
	ItemTypeLogin    ItemType = "login"
	ItemTypeDocument ItemType = "document"
	ItemTypeIdentity ItemType = "identity"
)

func (t ItemType) IsKnown() bool {
	switch t {
	case ItemTypeLogin, ItemTypeDocument, ItemTypeIdentity:
		return true
	}
	return false
}
