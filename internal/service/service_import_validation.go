package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-cxf/internal/logger"
	"github.com/MKhiriev/go-cxf/internal/validators"
	"github.com/MKhiriev/go-cxf/models"
)

// ImportValidationService checks decoded documents against the semantic rules
// of the format before they reach the wrapped service.
type ImportValidationService struct {
	inner     ImportService
	validator validators.Validator
	decoder   *models.Decoder
}

func NewImportValidationService(validator validators.Validator, decoder *models.Decoder) ImportServiceWrapper {
	if validator == nil {
		validator = validators.NewDocumentValidator()
	}
	if decoder == nil {
		decoder = models.NewDecoder()
	}
	return &ImportValidationService{
		validator: validator,
		decoder:   decoder,
	}
}

func (v *ImportValidationService) Import(ctx context.Context, data []byte) (models.ImportReport, error) {
	header, skipped, err := decodeDocument(v.decoder, data)
	if err != nil {
		return models.ImportReport{}, err
	}
	return v.ImportDocument(ctx, header, skipped)
}

// ImportDocument rejects the document when its header or one of its accounts
// is invalid. Invalid items are dropped from their account and reported as
// skipped, so the rest of the document is still imported.
func (v *ImportValidationService) ImportDocument(ctx context.Context, header *models.Header, skipped []*models.ItemError) (models.ImportReport, error) {
	if header == nil {
		return models.ImportReport{}, ErrNoDocument
	}
	if err := v.validator.Validate(ctx, header, validators.FieldExporter); err != nil {
		return models.ImportReport{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	log := logger.FromContext(ctx)

	valid := *header
	valid.Accounts = make([]models.Account, 0, len(header.Accounts))
	skipped = slices.Clip(skipped)
	for i, acc := range header.Accounts {
		if err := v.validator.Validate(ctx, acc, validators.FieldID, validators.FieldCollections); err != nil {
			return models.ImportReport{}, fmt.Errorf("%w: accounts[%d]: %w", ErrInvalidDocument, i, err)
		}

		items, rejected := validators.PartitionItems(ctx, v.validator, acc)
		for _, itemErr := range rejected {
			log.Warn().Err(itemErr.Err).Str("func", "ImportValidationService.ImportDocument").
				Str("account", acc.ID.String()).
				Int("index", itemErr.Index).
				Msg("item failed validation and is skipped")
		}
		acc.Items = items
		valid.Accounts = append(valid.Accounts, acc)
		skipped = append(skipped, rejected...)
	}

	dangling := validators.FindDanglingLinks(&valid)
	for _, link := range dangling {
		log.Warn().Str("func", "ImportValidationService.ImportDocument").
			Str("path", link.Path).
			Msg("link target is not part of the document")
	}

	report, err := v.inner.ImportDocument(ctx, &valid, skipped)
	report.DanglingLinks += len(dangling)
	return report, err
}

func (v *ImportValidationService) Wrap(inner ImportService) ImportService {
	v.inner = inner
	return v
}
