package models

import "encoding/json"

// CredentialScope restricts the credentials of an item to the listed
// websites and Android applications.
type CredentialScope struct {
	URLs        []string                 `json:"urls"`
	AndroidApps []AndroidAppIDCredential `json:"androidApps"`
}

type credentialScopeAlias CredentialScope

func (s CredentialScope) MarshalJSON() ([]byte, error) {
	if s.URLs == nil {
		s.URLs = []string{}
	}
	if s.AndroidApps == nil {
		s.AndroidApps = []AndroidAppIDCredential{}
	}
	return json.Marshal(credentialScopeAlias(s))
}

func (s *CredentialScope) UnmarshalJSON(data []byte) error {
	var alias credentialScopeAlias
	if err := decodeStrict(data, &alias, "urls", "androidApps"); err != nil {
		return err
	}
	*s = CredentialScope(alias)
	return nil
}

// AndroidAppIDCredential identifies an Android application.
type AndroidAppIDCredential struct {
	BundleID    string                            `json:"bundleId"`
	Certificate *AndroidAppCertificateFingerprint `json:"certificate,omitempty"`
	Name        string                            `json:"name,omitempty"`
}

// AndroidAppCertificateFingerprint is the digest of an app signing certificate.
type AndroidAppCertificateFingerprint struct {
	Fingerprint   B64Url                  `json:"fingerprint"`
	HashAlgorithm AndroidAppHashAlgorithm `json:"hashAlgorithm"`
}
