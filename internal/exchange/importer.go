package exchange

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cxf/internal/crypto"
	"github.com/MKhiriev/go-cxf/internal/logger"
	"github.com/MKhiriev/go-cxf/models"
)

// Importer builds export requests and opens the responses to them.
type Importer struct {
	rpID    string
	sealer  crypto.Sealer
	decoder *models.Decoder
}

func NewImporter(rpID string, sealer crypto.Sealer, decoder *models.Decoder) *Importer {
	if decoder == nil {
		decoder = models.NewDecoder()
	}
	return &Importer{rpID: rpID, sealer: sealer, decoder: decoder}
}

// Request returns an export request offering params in preference order.
func (i *Importer) Request(credentialTypes []models.CredentialType, params ...models.HpkeParameters) models.ExportRequest {
	return models.ExportRequest{
		Version:         models.ProtocolVersionV0,
		Hpke:            params,
		Importer:        i.rpID,
		CredentialTypes: credentialTypes,
		KnownExtensions: []models.ExtensionName{models.ExtensionNameShared},
	}
}

// Open checks resp against req, unseals the payload and decodes the
// document it carries.
func (i *Importer) Open(ctx context.Context, req models.ExportRequest, resp *models.ExportResponse) (*models.Header, error) {
	log := logger.FromContext(ctx)

	if !resp.Version.IsKnown() {
		return nil, &ProtocolError{Code: models.ErrorCodeUnsupportedVersion}
	}
	if !offered(req, resp.Hpke) {
		return nil, fmt.Errorf("%w: %s", ErrHpkeMismatch, resp.Hpke)
	}
	if len(resp.Payload) == 0 {
		return nil, ErrEmptyPayload
	}

	plaintext, err := i.sealer.Open(resp.Payload)
	if err != nil {
		log.Err(err).
			Str("func", "Importer.Open").
			Str("exporter", resp.Exporter).
			Str("sealer", i.sealer.Name()).
			Msg("failed to open payload")
		return nil, fmt.Errorf("error opening payload: %w", err)
	}

	header, err := i.decoder.Decode(plaintext)
	if err != nil {
		log.Err(err).Str("func", "Importer.Open").Str("exporter", resp.Exporter).Msg("failed to decode payload")
		return nil, fmt.Errorf("error decoding payload: %w", err)
	}
	return header, nil
}

func offered(req models.ExportRequest, params models.HpkeParameters) bool {
	for _, p := range req.Hpke {
		if p.Equal(params) {
			return true
		}
	}
	return false
}
