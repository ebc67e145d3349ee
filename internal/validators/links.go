// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"

	"github.com/MKhiriev/go-cxf/models"
)

// DanglingLinkError describes a LinkedItem whose target item is not part of
// the document. It unwraps to ErrDanglingLinkedItem.
type DanglingLinkError struct {
	// Path locates the link, e.g. "accounts[0].collections[1].items[2]".
	Path string
	Link models.LinkedItem
}

func (e *DanglingLinkError) Error() string {
	if len(e.Link.Account) > 0 {
		return fmt.Sprintf("%s: item %s of account %s: %v", e.Path, e.Link.Item, e.Link.Account, ErrDanglingLinkedItem)
	}
	return fmt.Sprintf("%s: item %s: %v", e.Path, e.Link.Item, ErrDanglingLinkedItem)
}

func (e *DanglingLinkError) Unwrap() error {
	return ErrDanglingLinkedItem
}

// FindDanglingLinks returns every collection entry and item-reference
// credential of header whose target does not resolve. A link without an
// account resolves against the account that holds it.
//
// Dangling links are legal in a document; callers decide whether to warn,
// count or drop them.
func FindDanglingLinks(header *models.Header) []*DanglingLinkError {
	index := make(map[string]map[string]struct{}, len(header.Accounts))
	for _, acc := range header.Accounts {
		items := make(map[string]struct{}, len(acc.Items))
		for _, item := range acc.Items {
			items[string(item.ID)] = struct{}{}
		}
		index[string(acc.ID)] = items
	}

	resolves := func(owner models.B64Url, link models.LinkedItem) bool {
		account := owner
		if len(link.Account) > 0 {
			account = link.Account
		}
		items, ok := index[string(account)]
		if !ok {
			return false
		}
		_, ok = items[string(link.Item)]
		return ok
	}

	var dangling []*DanglingLinkError
	var walk func(owner models.B64Url, path string, colls []models.Collection)
	walk = func(owner models.B64Url, path string, colls []models.Collection) {
		for c, coll := range colls {
			collPath := fmt.Sprintf("%s[%d]", path, c)
			for i, link := range coll.Items {
				if !resolves(owner, link) {
					dangling = append(dangling, &DanglingLinkError{
						Path: fmt.Sprintf("%s.items[%d]", collPath, i),
						Link: link,
					})
				}
			}
			walk(owner, collPath+".subCollections", coll.SubCollections)
		}
	}

	for a, acc := range header.Accounts {
		accPath := fmt.Sprintf("accounts[%d]", a)
		walk(acc.ID, accPath+".collections", acc.Collections)

		for i, item := range acc.Items {
			for c, cred := range item.Credentials {
				ref, ok := cred.(*models.ItemReferenceCredential)
				if !ok || resolves(acc.ID, ref.Reference) {
					continue
				}
				dangling = append(dangling, &DanglingLinkError{
					Path: fmt.Sprintf("%s.items[%d].credentials[%d]", accPath, i, c),
					Link: ref.Reference,
				})
			}
		}
	}

	return dangling
}
