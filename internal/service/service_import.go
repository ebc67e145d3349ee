// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cxf/internal/logger"
	"github.com/MKhiriev/go-cxf/internal/store"
	"github.com/MKhiriev/go-cxf/internal/utils"
	"github.com/MKhiriev/go-cxf/models"
)

type importService struct {
	repo    store.DocumentRepository
	decoder *models.Decoder

	logger *logger.Logger
}

// NewImportService returns an ImportService writing into repo. A nil decoder
// selects the default models.Decoder.
func NewImportService(repo store.DocumentRepository, decoder *models.Decoder, logger *logger.Logger) ImportService {
	if decoder == nil {
		decoder = models.NewDecoder()
	}
	return &importService{
		repo:    repo,
		decoder: decoder,
		logger:  logger,
	}
}

func (s *importService) Import(ctx context.Context, data []byte) (models.ImportReport, error) {
	header, skipped, err := decodeDocument(s.decoder, data)
	if err != nil {
		return models.ImportReport{}, err
	}
	return s.ImportDocument(ctx, header, skipped)
}

func (s *importService) ImportDocument(ctx context.Context, header *models.Header, skipped []*models.ItemError) (models.ImportReport, error) {
	log := logger.FromContext(ctx)
	if id, ok := utils.GetImportIDFromContext(ctx); ok {
		log = &logger.Logger{Logger: log.With().Str("import_id", id.String()).Logger()}
	}

	if header == nil {
		return models.ImportReport{}, ErrNoDocument
	}
	if err := header.CanModify(); err != nil {
		log.Warn().Err(err).Str("func", "importService.ImportDocument").
			Msg("document is newer than this build, fields it introduces are not stored")
	}

	report := models.ImportReport{
		Exporter: header.ExporterRpID,
		Version:  header.Version,
		Skipped:  skipped,
	}

	for _, acc := range header.Accounts {
		normalizeAccount(&acc)

		if err := s.repo.SaveAccount(ctx, header.ExporterRpID, acc); err != nil {
			log.Err(err).Str("func", "importService.ImportDocument").
				Str("account", acc.ID.String()).
				Msg("failed to save account")
			return report, fmt.Errorf("%w %s: %w", ErrSavingAccount, acc.ID, err)
		}

		report.Accounts++
		report.Items += len(acc.Items)
		for _, item := range acc.Items {
			report.Credentials += len(item.Credentials)
			for _, cred := range item.Credentials {
				if _, ok := cred.(*models.UnknownCredential); ok {
					report.UnknownCredentials++
				}
			}
		}
	}

	for _, itemErr := range skipped {
		log.Warn().Err(itemErr).Str("func", "importService.ImportDocument").Msg("item skipped")
	}
	log.Info().
		Str("exporter", report.Exporter).
		Int("accounts", report.Accounts).
		Int("items", report.Items).
		Int("credentials", report.Credentials).
		Int("skipped", len(report.Skipped)).
		Msg("document imported")

	return report, nil
}

func decodeDocument(decoder *models.Decoder, data []byte) (*models.Header, []*models.ItemError, error) {
	if len(data) == 0 {
		return nil, nil, ErrNoDocument
	}
	header, skipped, err := decoder.DecodeTolerant(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}
	return header, skipped, nil
}

// normalizeAccount replaces every shared extension with the accessors an
// importer honours, so that unknown accessor types and permissions are not
// persisted.
func normalizeAccount(acc *models.Account) {
	acc.Extensions = normalizeExtensions(acc.Extensions)
	if acc.Items != nil {
		items := make([]models.Item, len(acc.Items))
		for i, item := range acc.Items {
			item.Extensions = normalizeExtensions(item.Extensions)
			items[i] = item
		}
		acc.Items = items
	}
	acc.Collections = normalizeCollections(acc.Collections)
}

func normalizeCollections(colls []models.Collection) []models.Collection {
	if colls == nil {
		return nil
	}
	out := make([]models.Collection, len(colls))
	for i, coll := range colls {
		coll.Extensions = normalizeExtensions(coll.Extensions)
		coll.SubCollections = normalizeCollections(coll.SubCollections)
		out[i] = coll
	}
	return out
}

func normalizeExtensions(exts models.Extensions) models.Extensions {
	if exts == nil {
		return nil
	}
	out := make(models.Extensions, 0, len(exts))
	for _, ext := range exts {
		if shared, ok := ext.(*models.SharedExtension); ok {
			ext = &models.SharedExtension{Accessors: shared.EffectiveAccessors()}
		}
		out = append(out, ext)
	}
	return out
}
