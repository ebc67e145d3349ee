package models

// NoteCredential is free-form text attached to an item.
type NoteCredential struct {
	Content EditableField[EditableFieldString] `json:"content"`
}

func (*NoteCredential) CredentialType() CredentialType { return CredentialTypeNote }

type noteAlias NoteCredential

func (c NoteCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeNote), noteAlias(c))
}

func (c *NoteCredential) UnmarshalJSON(data []byte) error {
	var alias noteAlias
	if err := decodeStrict(data, &alias, "content"); err != nil {
		return err
	}
	*c = NoteCredential(alias)
	return nil
}

func (c *NoteCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, &c.Content)
}

// FileCredential describes an encrypted file that travels next to the
// document. Only the metadata is part of the document itself.
type FileCredential struct {
	// ID is the file identifier, used as its name in an export archive.
	ID B64Url `json:"id"`

	// Name is the file name including its extension.
	Name string `json:"name"`

	// DecryptedSize is the size of the plaintext file in bytes.
	DecryptedSize uint64 `json:"decryptedSize"`

	// IntegrityHash is the SHA-256 digest of the plaintext file.
	IntegrityHash B64Url `json:"integrityHash"`
}

func (*FileCredential) CredentialType() CredentialType { return CredentialTypeFile }

type fileAlias FileCredential

func (c FileCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeFile), fileAlias(c))
}

func (c *FileCredential) UnmarshalJSON(data []byte) error {
	var alias fileAlias
	if err := decodeStrict(data, &alias, "id", "name", "decryptedSize", "integrityHash"); err != nil {
		return err
	}
	*c = FileCredential(alias)
	return nil
}

// CustomFieldsCredential groups arbitrary editable fields under an optional label.
type CustomFieldsCredential struct {
	ID         B64Url          `json:"id,omitempty"`
	Label      string          `json:"label,omitempty"`
	Fields     CustomFieldList `json:"fields"`
	Extensions Extensions      `json:"extensions,omitempty"`
}

func (*CustomFieldsCredential) CredentialType() CredentialType { return CredentialTypeCustomFields }

type customFieldsAlias CustomFieldsCredential

func (c CustomFieldsCredential) MarshalJSON() ([]byte, error) {
	if c.Fields == nil {
		c.Fields = CustomFieldList{}
	}
	return marshalTagged("type", string(CredentialTypeCustomFields), customFieldsAlias(c))
}

func (c *CustomFieldsCredential) UnmarshalJSON(data []byte) error {
	var alias customFieldsAlias
	if err := decodeStrict(data, &alias, "fields"); err != nil {
		return err
	}
	*c = CustomFieldsCredential(alias)
	return nil
}

func (c *CustomFieldsCredential) visitExtensions(fn func(*Extensions)) {
	fn(&c.Extensions)
	for _, f := range c.Fields {
		if ref := f.extensionsRef(); ref != nil {
			fn(ref)
		}
	}
}

// ItemReferenceCredential points at another item, possibly in another account.
type ItemReferenceCredential struct {
	Reference LinkedItem `json:"reference"`
}

func (*ItemReferenceCredential) CredentialType() CredentialType {
	return CredentialTypeItemReference
}

type itemReferenceAlias ItemReferenceCredential

func (c ItemReferenceCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeItemReference), itemReferenceAlias(c))
}

func (c *ItemReferenceCredential) UnmarshalJSON(data []byte) error {
	var alias itemReferenceAlias
	if err := decodeStrict(data, &alias, "reference"); err != nil {
		return err
	}
	*c = ItemReferenceCredential(alias)
	return nil
}
