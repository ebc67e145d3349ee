package utils

import (
	"crypto/sha256"
	"hash"
	"sync"

	"github.com/MKhiriev/go-cxf/models"
)

// hasherPool is a package-level pool of reusable SHA-256 hash instances.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// Hash computes a SHA-256 digest over data using a hasher pulled from the
// pool.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// IntegrityHash returns the SHA-256 digest of data in the form stored in a
// file credential's integrityHash member.
func IntegrityHash(data []byte) models.B64Url {
	return models.B64Url(Hash(data))
}
