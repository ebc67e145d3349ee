package service

import (
	"github.com/MKhiriev/go-cxf/internal/config"
	"github.com/MKhiriev/go-cxf/internal/logger"
	"github.com/MKhiriev/go-cxf/internal/store"
	"github.com/MKhiriev/go-cxf/internal/validators"
	"github.com/MKhiriev/go-cxf/models"
)

type Services struct {
	ImportService  ImportService
	ExportService  ExportService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	decoder := models.NewDecoder()
	importService := NewImportValidationService(validators.NewDocumentValidator(), decoder).
		Wrap(NewImportService(storages.DocumentRepository, decoder, logger))

	return &Services{
		ImportService:  importService,
		ExportService:  NewExportService(storages.DocumentRepository, cfg.App, logger),
		AppInfoService: appInfo,
	}, nil
}
