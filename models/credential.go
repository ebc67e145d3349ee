// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// CredentialType is the "type" discriminator of a credential.
type CredentialType string

const (
	CredentialTypeBasicAuth         CredentialType = "basic-auth"
	CredentialTypePasskey           CredentialType = "passkey"
	CredentialTypeTotp              CredentialType = "totp"
	CredentialTypeNote              CredentialType = "note"
	CredentialTypeFile              CredentialType = "file"
	CredentialTypeAddress           CredentialType = "address"
	CredentialTypeCreditCard        CredentialType = "credit-card"
	CredentialTypeDriversLicense    CredentialType = "drivers-license"
	CredentialTypeIdentityDocument  CredentialType = "identity-document"
	CredentialTypePassport          CredentialType = "passport"
	CredentialTypePersonName        CredentialType = "person-name"
	CredentialTypeSSHKey            CredentialType = "ssh-key"
	CredentialTypeAPIKey            CredentialType = "api-key"
	CredentialTypeGeneratedPassword CredentialType = "generated-password"
	CredentialTypeItemReference     CredentialType = "item-reference"
	CredentialTypeCustomFields      CredentialType = "custom-fields"
	CredentialTypeWifi              CredentialType = "wifi"
)

// KnownCredentialTypes lists every credential type this package decodes natively.
var KnownCredentialTypes = []CredentialType{
	CredentialTypeBasicAuth, CredentialTypePasskey, CredentialTypeTotp, CredentialTypeNote,
	CredentialTypeFile, CredentialTypeAddress, CredentialTypeCreditCard,
	CredentialTypeDriversLicense, CredentialTypeIdentityDocument, CredentialTypePassport,
	CredentialTypePersonName, CredentialTypeSSHKey, CredentialTypeAPIKey,
	CredentialTypeGeneratedPassword, CredentialTypeItemReference, CredentialTypeCustomFields,
	CredentialTypeWifi,
}

// IsKnown reports whether t is decoded natively.
func (t CredentialType) IsKnown() bool {
	_, ok := credentialFactories[t]
	return ok
}

// Credential is one piece of secret or descriptive data attached to an Item.
// Every known kind is a pointer to its own struct; kinds this package does
// not recognise are preserved as *UnknownCredential.
type Credential interface {
	CredentialType() CredentialType
}

var credentialFactories = map[CredentialType]func() Credential{
	CredentialTypeBasicAuth:         func() Credential { return new(BasicAuthCredential) },
	CredentialTypePasskey:           func() Credential { return new(PasskeyCredential) },
	CredentialTypeTotp:              func() Credential { return new(TotpCredential) },
	CredentialTypeNote:              func() Credential { return new(NoteCredential) },
	CredentialTypeFile:              func() Credential { return new(FileCredential) },
	CredentialTypeAddress:           func() Credential { return new(AddressCredential) },
	CredentialTypeCreditCard:        func() Credential { return new(CreditCardCredential) },
	CredentialTypeDriversLicense:    func() Credential { return new(DriversLicenseCredential) },
	CredentialTypeIdentityDocument:  func() Credential { return new(IdentityDocumentCredential) },
	CredentialTypePassport:          func() Credential { return new(PassportCredential) },
	CredentialTypePersonName:        func() Credential { return new(PersonNameCredential) },
	CredentialTypeSSHKey:            func() Credential { return new(SSHKeyCredential) },
	CredentialTypeAPIKey:            func() Credential { return new(APIKeyCredential) },
	CredentialTypeGeneratedPassword: func() Credential { return new(GeneratedPasswordCredential) },
	CredentialTypeItemReference:     func() Credential { return new(ItemReferenceCredential) },
	CredentialTypeCustomFields:      func() Credential { return new(CustomFieldsCredential) },
	CredentialTypeWifi:              func() Credential { return new(WifiCredential) },
}

// UnknownCredential preserves a credential whose type is not recognised.
// Content holds every member of the original object except "type".
type UnknownCredential struct {
	Type    CredentialType
	Content map[string]json.RawMessage
}

func (u *UnknownCredential) CredentialType() CredentialType { return u.Type }

func (u *UnknownCredential) MarshalJSON() ([]byte, error) {
	content := u.Content
	if content == nil {
		content = map[string]json.RawMessage{}
	}
	return marshalTagged("type", string(u.Type), content)
}

// Credentials is a list of credentials decoded by their "type" tag.
type Credentials []Credential

func (c *Credentials) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(Credentials, 0, len(raws))
	for i, raw := range raws {
		cred, err := DecodeCredential(raw)
		if err != nil {
			return fieldErr(fmt.Sprintf("credentials[%d]", i), err)
		}
		out = append(out, cred)
	}
	*c = out
	return nil
}

// DecodeCredential decodes a single credential object. An unrecognised
// type never fails; a recognised type with an invalid payload does.
func DecodeCredential(raw []byte) (Credential, error) {
	tag, ok, err := peekTag(raw, "type")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &FieldError{Field: "type", Err: ErrMissingTag}
	}

	factory, known := credentialFactories[CredentialType(tag)]
	if !known {
		var content map[string]json.RawMessage
		if err = json.Unmarshal(raw, &content); err != nil {
			return nil, err
		}
		delete(content, "type")
		return &UnknownCredential{Type: CredentialType(tag), Content: content}, nil
	}

	cred := factory()
	if err = json.Unmarshal(raw, cred); err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	return cred, nil
}

// FilterCredentials returns the credentials whose type is in types.
// An empty types list keeps everything.
func FilterCredentials(creds Credentials, types []CredentialType) Credentials {
	if len(types) == 0 {
		return creds
	}
	allowed := make(map[CredentialType]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	out := make(Credentials, 0, len(creds))
	for _, cred := range creds {
		if _, ok := allowed[cred.CredentialType()]; ok {
			out = append(out, cred)
		}
	}
	return out
}

// decodeStrict checks required keys and decodes data into dst.
func decodeStrict(data []byte, dst any, required ...string) error {
	if err := requireFields(data, required...); err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// extensionVisitor is implemented by credentials that hold extensions,
// directly or inside their editable fields.
type extensionVisitor interface {
	visitExtensions(fn func(*Extensions))
}

type extensionCarrier interface {
	extensionsRef() *Extensions
}

func visitFields(fn func(*Extensions), fields ...extensionCarrier) {
	for _, f := range fields {
		if ref := f.extensionsRef(); ref != nil {
			fn(ref)
		}
	}
}
