package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cxf/internal/config"
	"github.com/MKhiriev/go-cxf/internal/logger"
	"github.com/MKhiriev/go-cxf/internal/store"
	"github.com/MKhiriev/go-cxf/models"
)

type exportService struct {
	repo store.DocumentRepository

	exporterRpID        string
	exporterDisplayName string
	now                 func() time.Time

	logger *logger.Logger
}

func NewExportService(repo store.DocumentRepository, cfg config.App, logger *logger.Logger) ExportService {
	return &exportService{
		repo:                repo,
		exporterRpID:        cfg.ExporterRpID,
		exporterDisplayName: cfg.ExporterDisplayName,
		now:                 time.Now,
		logger:              logger,
	}
}

func (s *exportService) Export(ctx context.Context, accountIDs ...models.B64Url) (*models.Header, error) {
	log := logger.FromContext(ctx)

	if s.exporterRpID == "" {
		return nil, ErrNoExporterDefined
	}

	if len(accountIDs) == 0 {
		stored, err := s.repo.ListAccounts(ctx)
		if err != nil {
			log.Err(err).Str("func", "exportService.Export").Msg("failed to list accounts")
			return nil, fmt.Errorf("%w: %w", ErrLoadingAccount, err)
		}
		for _, acc := range stored {
			accountIDs = append(accountIDs, acc.ID)
		}
	}

	accounts := make([]models.Account, 0, len(accountIDs))
	for _, id := range accountIDs {
		acc, err := s.repo.GetAccount(ctx, id)
		if err != nil {
			log.Err(err).Str("func", "exportService.Export").
				Str("account", id.String()).
				Msg("failed to load account")
			return nil, fmt.Errorf("%w %s: %w", ErrLoadingAccount, id, err)
		}
		accounts = append(accounts, acc)
	}

	header := &models.Header{
		Version:             models.CurrentVersion,
		ExporterRpID:        s.exporterRpID,
		ExporterDisplayName: s.exporterDisplayName,
		Timestamp:           models.NewTimestamp(s.now()),
		Accounts:            accounts,
	}

	log.Info().Int("accounts", len(accounts)).Msg("document assembled")
	return header, nil
}

func (s *exportService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *exportService) DeleteAccount(ctx context.Context, id models.B64Url) error {
	return s.repo.DeleteAccount(ctx, id)
}

func (s *exportService) CredentialStats(ctx context.Context) (map[models.CredentialType]int, error) {
	return s.repo.CountCredentials(ctx)
}
