package utils

import (
	"github.com/MKhiriev/go-cxf/models"
	"github.com/google/uuid"
)

// IDGenerator produces identifiers for accounts, items and collections
// created by go-cxf (for example when converting foreign formats).
type IDGenerator struct {
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Generate returns the 16 raw bytes of a UUIDv7, which sort by creation
// time and encode to 22 base64url characters.
func (g *IDGenerator) Generate() models.B64Url {
	v7, err := uuid.NewV7()
	if err != nil {
		v7 = uuid.New()
	}

	return models.B64Url(v7[:])
}

// FromUUID converts a foreign UUID (such as a KeePass entry UUID) into an
// identifier so that repeated conversions keep stable ids.
func FromUUID(u [16]byte) models.B64Url {
	id := make(models.B64Url, len(u))
	copy(id, u[:])
	return id
}
