// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package exchange implements the provider side of the credential exchange
// protocol: reading export requests, agreeing on HPKE parameters, and
// sealing or opening the document carried in an export response.
//
// The actual encryption is delegated to a crypto.Sealer.
package exchange

import (
	"bytes"
	"encoding/json"

	"github.com/MKhiriev/go-cxf/models"
)

// ParseExportRequest decodes an export request. Malformed JSON yields an
// invalid-json error response; a request of an unknown protocol version
// yields unsupported-version even when the rest of it does not decode.
func ParseExportRequest(data []byte) (models.ExportRequest, *models.ErrorResponse) {
	var peek struct {
		Version *models.ProtocolVersion `json:"version"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return models.ExportRequest{}, models.NewErrorResponse(models.ErrorCodeInvalidJSON)
	}
	if peek.Version != nil && !peek.Version.IsKnown() {
		return models.ExportRequest{}, models.NewErrorResponse(models.ErrorCodeUnsupportedVersion)
	}

	var req models.ExportRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return models.ExportRequest{}, models.NewErrorResponse(models.ErrorCodeInvalidJSON)
	}
	return req, nil
}

// Negotiate picks the first parameter set of req the exporter supports.
// The importer's preference order wins. The chosen set must carry the
// importer's public key as a JWK object.
func Negotiate(req models.ExportRequest, supported []models.HpkeParameters) (models.HpkeParameters, *models.ErrorResponse) {
	for _, requested := range req.Hpke {
		if !requested.Mode.IsKnown() {
			continue
		}
		for _, own := range supported {
			if !requested.Equal(own) {
				continue
			}

			key := bytes.TrimSpace(requested.Key)
			if len(key) == 0 {
				return models.HpkeParameters{}, models.NewErrorResponse(models.ErrorCodeMissingImporterKey)
			}
			var jwk map[string]json.RawMessage
			if key[0] != '{' || json.Unmarshal(key, &jwk) != nil {
				return models.HpkeParameters{}, models.NewErrorResponse(models.ErrorCodeIncorrectImporterKeyEncoding)
			}
			return requested, nil
		}
	}
	return models.HpkeParameters{}, models.NewErrorResponse(models.ErrorCodeIncompatibleHpkeParameters)
}
