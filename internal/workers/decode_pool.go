// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-cxf/internal/logger"
	"github.com/MKhiriev/go-cxf/models"
)

// DocumentDecoder is satisfied by *models.Decoder.
type DocumentDecoder interface {
	DecodeTolerant(data []byte) (*models.Header, []*models.ItemError, error)
}

// Document is one encoded CXF document waiting to be decoded.
type Document struct {
	// Name identifies the document in results and logs, usually a file path.
	Name string
	Data []byte
}

// DecodeResult is the outcome of decoding one Document.
type DecodeResult struct {
	Name       string
	Header     *models.Header
	ItemErrors []*models.ItemError
	Err        error
}

// DecodePool decodes documents concurrently.
type DecodePool struct {
	decoder     DocumentDecoder
	concurrency int
}

func NewDecodePool(decoder DocumentDecoder, concurrency int) *DecodePool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &DecodePool{decoder: decoder, concurrency: concurrency}
}

// Decode decodes every document and returns the results in input order.
// A document that fails to decode only sets Err on its own result. The
// returned error is non-nil only when ctx ends before all documents were
// decoded; results of documents never started carry ctx's error.
func (p *DecodePool) Decode(ctx context.Context, docs []Document) ([]DecodeResult, error) {
	log := logger.FromContext(ctx)

	results := make([]DecodeResult, len(docs))
	pool := NewWorkers(p.concurrency)
	for i, doc := range docs {
		results[i] = DecodeResult{Name: doc.Name, Err: context.Canceled}
		pool.Add(WorkerFunc(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return err
			}

			header, itemErrs, err := p.decoder.DecodeTolerant(doc.Data)
			results[i] = DecodeResult{Name: doc.Name, Header: header, ItemErrors: itemErrs, Err: err}
			if err != nil {
				log.Debug().Err(err).
					Str("func", "DecodePool.Decode").
					Str("document", doc.Name).
					Msg("document failed to decode")
			}
			return nil
		}))
	}

	if err := pool.Run(ctx); err != nil {
		for i := range results {
			if results[i].Header == nil && results[i].Err == context.Canceled {
				results[i].Err = err
			}
		}
		return results, err
	}
	return results, nil
}
