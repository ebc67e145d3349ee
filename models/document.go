// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// Version is the format version of a CXF document.
type Version struct {
	Major uint8 `json:"major"`
	Minor uint8 `json:"minor"`
}

// CurrentVersion is the newest format version this package produces.
var CurrentVersion = Version{Major: 1, Minor: 0}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// IsSupported reports whether documents of version v can be decoded.
// Minor versions only add optional members, so any minor of a known major
// is accepted.
func (v Version) IsSupported() bool {
	return v.Major == CurrentVersion.Major
}

type versionAlias Version

func (v *Version) UnmarshalJSON(data []byte) error {
	var alias versionAlias
	if err := decodeStrict(data, &alias, "major", "minor"); err != nil {
		return err
	}
	*v = Version(alias)
	return nil
}

// Header is the root of a CXF document.
type Header struct {
	// Version of the format the document was produced with.
	Version Version `json:"version"`

	// ExporterRpID is the relying party identifier of the exporting provider.
	ExporterRpID string `json:"exporterRpId"`

	// ExporterDisplayName is the human-facing name of the exporting provider.
	ExporterDisplayName string `json:"exporterDisplayName"`

	// Timestamp is when the export was produced.
	Timestamp Timestamp `json:"timestamp"`

	// Accounts exported in this document.
	Accounts []Account `json:"accounts"`
}

type headerAlias Header

func (h Header) MarshalJSON() ([]byte, error) {
	if h.Accounts == nil {
		h.Accounts = []Account{}
	}
	return json.Marshal(headerAlias(h))
}

func (h *Header) UnmarshalJSON(data []byte) error {
	decoded, _, err := decodeHeader(data, false)
	if err != nil {
		return err
	}
	*h = *decoded
	return nil
}

// CanModify reports whether h can be rewritten by this package without
// dropping members introduced by a newer minor version.
func (h *Header) CanModify() error {
	if !h.Version.IsSupported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, h.Version)
	}
	if h.Version.Minor > CurrentVersion.Minor {
		return fmt.Errorf(
			"document version %s exceeds supported version %s: "+
				"modification would lose fields added in newer versions",
			h.Version, CurrentVersion,
		)
	}
	return nil
}

type headerWire struct {
	*headerAlias
	Accounts []json.RawMessage `json:"accounts"`
}

func decodeHeader(data []byte, tolerant bool) (*Header, []*ItemError, error) {
	if err := requireFields(data,
		"version", "exporterRpId", "exporterDisplayName", "timestamp", "accounts"); err != nil {
		return nil, nil, err
	}

	header := new(Header)
	wire := headerWire{headerAlias: (*headerAlias)(header)}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, nil, err
	}

	header.Accounts = make([]Account, 0, len(wire.Accounts))
	var itemErrs []*ItemError
	for i, raw := range wire.Accounts {
		acc, errs, err := decodeAccount(raw, tolerant)
		if err != nil {
			return nil, nil, fieldErr(fmt.Sprintf("accounts[%d]", i), err)
		}
		header.Accounts = append(header.Accounts, acc)
		itemErrs = append(itemErrs, errs...)
	}
	return header, itemErrs, nil
}

// Account is a user account of the exporting provider with everything it owns.
type Account struct {
	ID          B64Url       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FullName    string       `json:"fullName,omitempty"`
	Collections []Collection `json:"collections"`
	Items       []Item       `json:"items"`
	Extensions  Extensions   `json:"extensions,omitempty"`
}

type accountAlias Account

func (a Account) MarshalJSON() ([]byte, error) {
	if a.Collections == nil {
		a.Collections = []Collection{}
	}
	if a.Items == nil {
		a.Items = []Item{}
	}
	return json.Marshal(accountAlias(a))
}

func (a *Account) UnmarshalJSON(data []byte) error {
	acc, _, err := decodeAccount(data, false)
	if err != nil {
		return err
	}
	*a = acc
	return nil
}

// FindItem returns the item of a with the given id.
func (a *Account) FindItem(id B64Url) (*Item, bool) {
	for i := range a.Items {
		if a.Items[i].ID.Equal(id) {
			return &a.Items[i], true
		}
	}
	return nil, false
}

type accountWire struct {
	*accountAlias
	Items []json.RawMessage `json:"items"`
}

// decodeAccount decodes an account. In tolerant mode an item that fails to
// decode is skipped and reported instead of failing the whole account.
func decodeAccount(data []byte, tolerant bool) (Account, []*ItemError, error) {
	if err := requireFields(data, "id", "username", "email", "collections", "items"); err != nil {
		return Account{}, nil, err
	}

	var acc Account
	wire := accountWire{accountAlias: (*accountAlias)(&acc)}
	if err := json.Unmarshal(data, &wire); err != nil {
		return Account{}, nil, err
	}

	acc.Items = make([]Item, 0, len(wire.Items))
	var itemErrs []*ItemError
	for i, raw := range wire.Items {
		var item Item
		if err := json.Unmarshal(raw, &item); err != nil {
			if !tolerant {
				return Account{}, nil, fieldErr(fmt.Sprintf("items[%d]", i), err)
			}
			itemID, _, _ := peekTag(raw, "id")
			itemErrs = append(itemErrs, &ItemError{AccountID: acc.ID, Index: i, ItemID: itemID, Err: err})
			continue
		}
		acc.Items = append(acc.Items, item)
	}
	return acc, itemErrs, nil
}

// Collection groups items of one or more accounts. Items are referenced,
// not owned.
type Collection struct {
	ID             B64Url       `json:"id"`
	Title          string       `json:"title"`
	Subtitle       string       `json:"subtitle,omitempty"`
	Items          []LinkedItem `json:"items"`
	SubCollections []Collection `json:"subCollections,omitempty"`
	Extensions     Extensions   `json:"extensions,omitempty"`
}

type collectionAlias Collection

func (c Collection) MarshalJSON() ([]byte, error) {
	if c.Items == nil {
		c.Items = []LinkedItem{}
	}
	return json.Marshal(collectionAlias(c))
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	var alias collectionAlias
	if err := decodeStrict(data, &alias, "id", "title", "items"); err != nil {
		return err
	}
	*c = Collection(alias)
	return nil
}

// LinkedItem references an item by id. Account is set when the item is
// owned by a different account of the same document.
type LinkedItem struct {
	Item    B64Url `json:"item"`
	Account B64Url `json:"account,omitempty"`
}

type linkedItemAlias LinkedItem

func (l *LinkedItem) UnmarshalJSON(data []byte) error {
	var alias linkedItemAlias
	if err := decodeStrict(data, &alias, "item"); err != nil {
		return err
	}
	*l = LinkedItem(alias)
	return nil
}

// Item is a single vault entry holding any mix of credentials.
type Item struct {
	ID          B64Url           `json:"id"`
	CreationAt  *Timestamp       `json:"creationAt,omitempty"`
	ModifiedAt  *Timestamp       `json:"modifiedAt,omitempty"`
	Type        ItemType         `json:"type,omitempty"`
	Title       string           `json:"title"`
	Subtitle    string           `json:"subtitle,omitempty"`
	Favorite    *bool            `json:"favorite,omitempty"`
	Scope       *CredentialScope `json:"scope,omitempty"`
	Credentials Credentials      `json:"credentials"`
	Tags        []string         `json:"tags,omitempty"`
	Extensions  Extensions       `json:"extensions,omitempty"`
}

type itemAlias Item

func (i Item) MarshalJSON() ([]byte, error) {
	if i.Credentials == nil {
		i.Credentials = Credentials{}
	}
	return json.Marshal(itemAlias(i))
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var alias itemAlias
	if err := decodeStrict(data, &alias, "id", "title", "credentials"); err != nil {
		return err
	}
	*i = Item(alias)
	return nil
}

// visitExtensions calls fn for every extension list in the document,
// including those nested in credentials and editable fields.
func (h *Header) visitExtensions(fn func(*Extensions)) {
	for a := range h.Accounts {
		acc := &h.Accounts[a]
		fn(&acc.Extensions)
		for c := range acc.Collections {
			acc.Collections[c].visitExtensions(fn)
		}
		for i := range acc.Items {
			item := &acc.Items[i]
			fn(&item.Extensions)
			for _, cred := range item.Credentials {
				if v, ok := cred.(extensionVisitor); ok {
					v.visitExtensions(fn)
				}
			}
		}
	}
}

func (c *Collection) visitExtensions(fn func(*Extensions)) {
	fn(&c.Extensions)
	for i := range c.SubCollections {
		c.SubCollections[i].visitExtensions(fn)
	}
}
