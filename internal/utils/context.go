// Package utils provides general-purpose helper utilities used across
// go-cxf: identifier generation, hashing and context keys.
package utils

import (
	"context"

	"github.com/MKhiriev/go-cxf/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// ImportIDCtxKey is the key under which the identifier of the running
// import is stored.
var ImportIDCtxKey = contextKey("importID")

// WithImportID returns a copy of ctx carrying id.
func WithImportID(ctx context.Context, id models.B64Url) context.Context {
	return context.WithValue(ctx, ImportIDCtxKey, id)
}

// GetImportIDFromContext retrieves the import identifier from ctx.
//
// ok is false when the value is missing or has an unexpected type.
func GetImportIDFromContext(ctx context.Context) (models.B64Url, bool) {
	id, ok := ctx.Value(ImportIDCtxKey).(models.B64Url)
	return id, ok
}
