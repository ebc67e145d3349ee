package models

// BasicAuthCredential is a username and password pair. The URLs it applies
// to live in the owning item's scope.
type BasicAuthCredential struct {
	Username *EditableField[EditableFieldString]          `json:"username,omitempty"`
	Password *EditableField[EditableFieldConcealedString] `json:"password,omitempty"`
}

func (*BasicAuthCredential) CredentialType() CredentialType { return CredentialTypeBasicAuth }

type basicAuthAlias BasicAuthCredential

func (c BasicAuthCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeBasicAuth), basicAuthAlias(c))
}

func (c *BasicAuthCredential) UnmarshalJSON(data []byte) error {
	var alias basicAuthAlias
	if err := decodeStrict(data, &alias); err != nil {
		return err
	}
	*c = BasicAuthCredential(alias)
	return nil
}

func (c *BasicAuthCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, c.Username, c.Password)
}

// PasskeyCredential is a WebAuthn discoverable credential.
type PasskeyCredential struct {
	CredentialID    B64Url           `json:"credentialId"`
	RpID            string           `json:"rpId"`
	Username        string           `json:"username"`
	UserDisplayName string           `json:"userDisplayName"`
	UserHandle      B64Url           `json:"userHandle"`
	Key             B64Url           `json:"key"`
	Fido2Extensions *Fido2Extensions `json:"fido2Extensions,omitempty"`
}

func (*PasskeyCredential) CredentialType() CredentialType { return CredentialTypePasskey }

type passkeyAlias PasskeyCredential

func (c PasskeyCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypePasskey), passkeyAlias(c))
}

func (c *PasskeyCredential) UnmarshalJSON(data []byte) error {
	var alias passkeyAlias
	if err := decodeStrict(data, &alias,
		"credentialId", "rpId", "username", "userDisplayName", "userHandle", "key"); err != nil {
		return err
	}
	*c = PasskeyCredential(alias)
	return nil
}

// Fido2Extensions holds the state of CTAP2 extensions bound to a passkey.
type Fido2Extensions struct {
	HmacSecret       *Fido2HmacSecret       `json:"hmacSecret,omitempty"`
	CredBlob         B64Url                 `json:"credBlob,omitempty"`
	LargeBlob        *Fido2LargeBlob        `json:"largeBlob,omitempty"`
	Payments         *bool                  `json:"payments,omitempty"`
	SupplementalKeys *Fido2SupplementalKeys `json:"supplementalKeys,omitempty"`
}

type Fido2HmacSecret struct {
	Alias      string `json:"alias"`
	HmacSecret B64Url `json:"hmacSecret"`
}

type Fido2LargeBlob struct {
	Size uint64 `json:"size"`
	Alg  string `json:"alg"`
	Data B64Url `json:"data"`
}

type Fido2SupplementalKeys struct {
	Device   *bool `json:"device,omitempty"`
	Provider *bool `json:"provider,omitempty"`
}

// TotpCredential is the seed of a time-based one-time password generator.
type TotpCredential struct {
	Secret    Base32           `json:"secret"`
	Period    uint8            `json:"period"`
	Digits    uint8            `json:"digits"`
	Username  string           `json:"username,omitempty"`
	Algorithm OTPHashAlgorithm `json:"algorithm"`
	Issuer    string           `json:"issuer,omitempty"`
}

func (*TotpCredential) CredentialType() CredentialType { return CredentialTypeTotp }

type totpAlias TotpCredential

func (c TotpCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeTotp), totpAlias(c))
}

func (c *TotpCredential) UnmarshalJSON(data []byte) error {
	var alias totpAlias
	if err := decodeStrict(data, &alias, "secret", "period", "digits", "algorithm"); err != nil {
		return err
	}
	*c = TotpCredential(alias)
	return nil
}

// APIKeyCredential is a key for a programmatic interface.
type APIKeyCredential struct {
	Key        *EditableField[EditableFieldConcealedString] `json:"key,omitempty"`
	Username   *EditableField[EditableFieldString]          `json:"username,omitempty"`
	KeyType    *EditableField[EditableFieldString]          `json:"keyType,omitempty"`
	URL        *EditableField[EditableFieldString]          `json:"url,omitempty"`
	ValidFrom  *EditableField[EditableFieldDate]            `json:"validFrom,omitempty"`
	ExpiryDate *EditableField[EditableFieldDate]            `json:"expiryDate,omitempty"`
}

func (*APIKeyCredential) CredentialType() CredentialType { return CredentialTypeAPIKey }

type apiKeyAlias APIKeyCredential

func (c APIKeyCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeAPIKey), apiKeyAlias(c))
}

func (c *APIKeyCredential) UnmarshalJSON(data []byte) error {
	var alias apiKeyAlias
	if err := decodeStrict(data, &alias); err != nil {
		return err
	}
	*c = APIKeyCredential(alias)
	return nil
}

func (c *APIKeyCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, c.Key, c.Username, c.KeyType, c.URL, c.ValidFrom, c.ExpiryDate)
}

// SSHKeyCredential is an SSH private key in PKCS#8 form.
type SSHKeyCredential struct {
	KeyType             string                              `json:"keyType"`
	PrivateKey          B64Url                              `json:"privateKey"`
	KeyComment          string                              `json:"keyComment,omitempty"`
	CreationDate        *EditableField[EditableFieldDate]   `json:"creationDate,omitempty"`
	ExpirationDate      *EditableField[EditableFieldDate]   `json:"expirationDate,omitempty"`
	KeyGenerationSource *EditableField[EditableFieldString] `json:"keyGenerationSource,omitempty"`
}

func (*SSHKeyCredential) CredentialType() CredentialType { return CredentialTypeSSHKey }

type sshKeyAlias SSHKeyCredential

func (c SSHKeyCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeSSHKey), sshKeyAlias(c))
}

func (c *SSHKeyCredential) UnmarshalJSON(data []byte) error {
	var alias sshKeyAlias
	if err := decodeStrict(data, &alias, "keyType", "privateKey"); err != nil {
		return err
	}
	*c = SSHKeyCredential(alias)
	return nil
}

func (c *SSHKeyCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, c.CreationDate, c.ExpirationDate, c.KeyGenerationSource)
}

// GeneratedPasswordCredential is a password produced by a generator that
// has not yet been attached to a login.
type GeneratedPasswordCredential struct {
	Password string `json:"password"`
}

func (*GeneratedPasswordCredential) CredentialType() CredentialType {
	return CredentialTypeGeneratedPassword
}

type generatedPasswordAlias GeneratedPasswordCredential

func (c GeneratedPasswordCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeGeneratedPassword), generatedPasswordAlias(c))
}

func (c *GeneratedPasswordCredential) UnmarshalJSON(data []byte) error {
	var alias generatedPasswordAlias
	if err := decodeStrict(data, &alias, "password"); err != nil {
		return err
	}
	*c = GeneratedPasswordCredential(alias)
	return nil
}

// WifiCredential holds the settings needed to join a wireless network.
type WifiCredential struct {
	SSID                *EditableField[EditableFieldString]                  `json:"ssid,omitempty"`
	NetworkSecurityType *EditableField[EditableFieldWifiNetworkSecurityType] `json:"networkSecurityType,omitempty"`
	Passphrase          *EditableField[EditableFieldConcealedString]         `json:"passphrase,omitempty"`
	Hidden              *EditableField[EditableFieldBoolean]                 `json:"hidden,omitempty"`
}

func (*WifiCredential) CredentialType() CredentialType { return CredentialTypeWifi }

type wifiAlias WifiCredential

func (c WifiCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeWifi), wifiAlias(c))
}

func (c *WifiCredential) UnmarshalJSON(data []byte) error {
	var alias wifiAlias
	if err := decodeStrict(data, &alias); err != nil {
		return err
	}
	*c = WifiCredential(alias)
	return nil
}

func (c *WifiCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, c.SSID, c.NetworkSecurityType, c.Passphrase, c.Hidden)
}
