package exchange

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-cxf/internal/crypto"
	"github.com/MKhiriev/go-cxf/internal/logger"
	"github.com/MKhiriev/go-cxf/models"
)

// Exporter answers export requests with a sealed document.
type Exporter struct {
	rpID      string
	sealer    crypto.Sealer
	supported []models.HpkeParameters
}

// NewExporter returns an Exporter identifying itself as rpID. supported
// lists the HPKE parameter sets it can seal with, in no particular order.
func NewExporter(rpID string, sealer crypto.Sealer, supported ...models.HpkeParameters) *Exporter {
	return &Exporter{rpID: rpID, sealer: sealer, supported: supported}
}

// Respond seals header for the importer that sent req. Credentials of types
// the importer did not ask for and extensions it does not know are left
// out; header itself is not modified.
//
// Failures the importer should hear about are returned as *ProtocolError.
func (e *Exporter) Respond(ctx context.Context, req models.ExportRequest, header *models.Header) (*models.ExportResponse, error) {
	log := logger.FromContext(ctx)

	if !req.Version.IsKnown() {
		return nil, &ProtocolError{Code: models.ErrorCodeUnsupportedVersion}
	}

	params, errResp := Negotiate(req, e.supported)
	if errResp != nil {
		log.Warn().
			Str("func", "Exporter.Respond").
			Str("importer", req.Importer).
			Str("error_code", string(errResp.Error)).
			Msg("export request rejected")
		return nil, protocolError(errResp, errors.New("hpke negotiation failed"))
	}

	doc := filterHeader(header, req.CredentialTypes, req.KnownExtensions)
	doc.ExporterRpID = e.rpID

	plaintext, err := models.Encode(doc)
	if err != nil {
		log.Err(err).Str("func", "Exporter.Respond").Msg("failed to encode document")
		return nil, fmt.Errorf("error encoding document: %w", err)
	}

	payload, err := e.sealer.Seal(plaintext)
	if err != nil {
		log.Err(err).
			Str("func", "Exporter.Respond").
			Str("sealer", e.sealer.Name()).
			Msg("failed to seal document")
		return nil, fmt.Errorf("error sealing document: %w", err)
	}

	log.Info().
		Str("func", "Exporter.Respond").
		Str("importer", req.Importer).
		Str("hpke", params.String()).
		Int("accounts", len(doc.Accounts)).
		Msg("export sealed")

	return &models.ExportResponse{
		Version:  models.ProtocolVersionV0,
		Hpke:     params,
		Exporter: e.rpID,
		Payload:  payload,
	}, nil
}

// filterHeader returns a copy of h without credentials outside types and
// without extensions outside known. Empty lists keep everything.
func filterHeader(h *models.Header, types []models.CredentialType, known []models.ExtensionName) *models.Header {
	out := *h
	out.Accounts = make([]models.Account, len(h.Accounts))
	for a, acc := range h.Accounts {
		acc.Extensions = filterExtensions(acc.Extensions, known)
		acc.Collections = filterCollections(acc.Collections, known)

		items := make([]models.Item, len(acc.Items))
		for i, item := range acc.Items {
			item.Credentials = models.FilterCredentials(item.Credentials, types)
			item.Extensions = filterExtensions(item.Extensions, known)
			items[i] = item
		}
		acc.Items = items
		out.Accounts[a] = acc
	}
	return &out
}

func filterCollections(collections []models.Collection, known []models.ExtensionName) []models.Collection {
	if len(known) == 0 || collections == nil {
		return collections
	}
	out := make([]models.Collection, len(collections))
	for i, c := range collections {
		c.Extensions = filterExtensions(c.Extensions, known)
		c.SubCollections = filterCollections(c.SubCollections, known)
		out[i] = c
	}
	return out
}

func filterExtensions(exts models.Extensions, known []models.ExtensionName) models.Extensions {
	if len(known) == 0 || len(exts) == 0 {
		return exts
	}
	out := make(models.Extensions, 0, len(exts))
	for _, ext := range exts {
		if slices.Contains(known, ext.ExtensionName()) {
			out = append(out, ext)
		}
	}
	return out
}
