// Package service holds the business operations behind the cxf commands:
// importing CXF documents into the local store and exporting stored
// accounts back into a document.
package service

import (
	"context"

	"github.com/MKhiriev/go-cxf/models"
)

// ImportService persists decoded documents.
type ImportService interface {
	// Import decodes data tolerantly and stores every account it holds.
	// Items that fail to decode are reported in ImportReport.Skipped.
	Import(ctx context.Context, data []byte) (models.ImportReport, error)

	// ImportDocument stores an already decoded header. skipped carries the
	// item errors produced while decoding it.
	ImportDocument(ctx context.Context, header *models.Header, skipped []*models.ItemError) (models.ImportReport, error)
}

// ExportService assembles stored accounts into documents.
type ExportService interface {
	// Export builds a header holding the accounts with the given ids, or
	// every stored account when no id is given.
	Export(ctx context.Context, accountIDs ...models.B64Url) (*models.Header, error)

	ListAccounts(ctx context.Context) ([]models.Account, error)
	DeleteAccount(ctx context.Context, id models.B64Url) error
	CredentialStats(ctx context.Context) (map[models.CredentialType]int, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// ImportServiceWrapper defines middleware composition for ImportService.
// Implementations wrap an existing ImportService to add behavior such as
// validation.
type ImportServiceWrapper interface {
	Wrap(ImportService) ImportService
}
