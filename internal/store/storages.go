package store

import "github.com/MKhiriev/go-cxf/internal/logger"

type Storages struct {
	DocumentRepository DocumentRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		DocumentRepository: NewDocumentRepository(db, log),
	}
}
