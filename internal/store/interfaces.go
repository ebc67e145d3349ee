// Package store persists CXF accounts in a relational database.
//
// SQLite and PostgreSQL are supported through database/sql; the dialect is
// picked from the DSN and queries are built with squirrel so that the same
// repository code serves both.
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-cxf/models"
)

// DocumentRepository stores accounts together with their items,
// credentials and collections.
type DocumentRepository interface {
	// SaveAccount replaces any stored account with the same id by account.
	// exporter records the relying party the account was imported from.
	SaveAccount(ctx context.Context, exporter string, account models.Account) error

	// GetAccount loads a complete account. It returns ErrAccountNotFound
	// when id is unknown.
	GetAccount(ctx context.Context, id models.B64Url) (models.Account, error)

	// ListAccounts returns every stored account without items or
	// collections, ordered by id.
	ListAccounts(ctx context.Context) ([]models.Account, error)

	DeleteAccount(ctx context.Context, id models.B64Url) error

	// CountCredentials returns the number of stored credentials per type.
	CountCredentials(ctx context.Context) (map[models.CredentialType]int, error)
}

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
