package validators

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cxf/models"
)

// Field name constants restrict validation to a subset of checks.
const (
	// FieldExporter targets the exporterRpId of a header.
	FieldExporter = "exporter"

	// FieldAccounts validates every account of a header.
	FieldAccounts = "accounts"

	// FieldID targets the identifier of an account, item or collection.
	FieldID = "id"

	// FieldItems validates every item of an account and the uniqueness of
	// their identifiers.
	FieldItems = "items"

	// FieldCollections validates every collection of an account, recursively.
	FieldCollections = "collections"

	// FieldCredentials targets credential-specific rules of an item.
	FieldCredentials = "credentials"

	// FieldLinkedItems targets the item references held by a collection.
	FieldLinkedItems = "linked_items"
)

// maxIDLength is the upper bound for identifiers in bytes.
const maxIDLength = 64

type DocumentValidator struct {
}

func NewDocumentValidator() Validator {
	return &DocumentValidator{}
}

func (v *DocumentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Header:
		return v.validateHeader(ctx, value, fields...)
	case *models.Header:
		return v.validateHeader(ctx, *value, fields...)

	case models.Account:
		return v.validateAccount(ctx, value, fields...)
	case *models.Account:
		return v.validateAccount(ctx, *value, fields...)

	case models.Item:
		return v.validateItem(ctx, value, fields...)
	case *models.Item:
		return v.validateItem(ctx, *value, fields...)

	case models.Collection:
		return v.validateCollection(ctx, value, fields...)
	case *models.Collection:
		return v.validateCollection(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *DocumentValidator) validateHeader(ctx context.Context, header models.Header, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldExporter, FieldAccounts}
	}

	for _, f := range fields {
		switch f {
		case FieldExporter:
			if header.ExporterRpID == "" {
				return ErrEmptyExporter
			}
		case FieldAccounts:
			for i, acc := range header.Accounts {
				if err := v.validateAccount(ctx, acc); err != nil {
					return fmt.Errorf("accounts[%d]: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *DocumentValidator) validateAccount(ctx context.Context, acc models.Account, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldItems, FieldCollections}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if err := validateID(acc.ID); err != nil {
				return err
			}
		case FieldItems:
			seen := make(map[string]int, len(acc.Items))
			for i, item := range acc.Items {
				if err := v.validateItem(ctx, item); err != nil {
					return fmt.Errorf("items[%d]: %w", i, err)
				}
				if first, ok := seen[string(item.ID)]; ok {
					return fmt.Errorf("items[%d]: %w %s (first at items[%d])", i, ErrDuplicateItemID, item.ID, first)
				}
				seen[string(item.ID)] = i
			}
		case FieldCollections:
			for i, coll := range acc.Collections {
				if err := v.validateCollection(ctx, coll); err != nil {
					return fmt.Errorf("collections[%d]: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *DocumentValidator) validateItem(_ context.Context, item models.Item, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldCredentials}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if err := validateID(item.ID); err != nil {
				return err
			}
		case FieldCredentials:
			for i, cred := range item.Credentials {
				if err := validateCredential(cred); err != nil {
					return fmt.Errorf("credentials[%d]: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *DocumentValidator) validateCollection(ctx context.Context, coll models.Collection, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldLinkedItems, FieldCollections}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if err := validateID(coll.ID); err != nil {
				return err
			}
		case FieldLinkedItems:
			for i, link := range coll.Items {
				if err := validateLink(link); err != nil {
					return fmt.Errorf("items[%d]: %w", i, err)
				}
			}
		case FieldCollections:
			for i, sub := range coll.SubCollections {
				if err := v.validateCollection(ctx, sub); err != nil {
					return fmt.Errorf("subCollections[%d]: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateCredential(cred models.Credential) error {
	switch c := cred.(type) {
	case *models.TotpCredential:
		if c.Period == 0 || c.Digits == 0 {
			return ErrInvalidTotp
		}
		if len(c.Secret) == 0 {
			return ErrEmptyTotpSecret
		}
	case *models.ItemReferenceCredential:
		return validateLink(c.Reference)
	}
	return nil
}

func validateLink(link models.LinkedItem) error {
	if err := validateID(link.Item); err != nil {
		return fmt.Errorf("item: %w", err)
	}
	if len(link.Account) > 0 {
		if err := validateID(link.Account); err != nil {
			return fmt.Errorf("account: %w", err)
		}
	}
	return nil
}

func validateID(id models.B64Url) error {
	switch {
	case len(id) == 0:
		return ErrEmptyID
	case len(id) > maxIDLength:
		return ErrIDTooLong
	}
	return nil
}

// IsDanglingLink reports whether err was produced for an unresolved link.
func IsDanglingLink(err error) bool {
	return errors.Is(err, ErrDanglingLinkedItem)
}
