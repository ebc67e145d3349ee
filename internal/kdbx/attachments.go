package kdbx

import (
	"fmt"

	"github.com/tobischo/gokeepasslib/v3"

	"github.com/MKhiriev/go-cxf/internal/utils"
	"github.com/MKhiriev/go-cxf/models"
)

// Attachment is the content behind a file credential produced by ToHeader.
type Attachment struct {
	ID      models.B64Url
	Name    string
	Content []byte
}

// AttachmentSink receives the content of every entry attachment. Returning
// an error aborts the conversion.
type AttachmentSink func(Attachment) error

// binaryContents indexes the attachment pool of db by binary id. KDBX 4
// keeps the pool in the inner header, KDBX 3 in the metadata.
func binaryContents(db *gokeepasslib.Database) (map[int][]byte, error) {
	var pool []gokeepasslib.Binary
	switch {
	case db.Header != nil && db.Header.IsKdbx4():
		if db.Content.InnerHeader != nil {
			pool = db.Content.InnerHeader.Binaries
		}
	case db.Content.Meta != nil:
		pool = db.Content.Meta.Binaries
	}

	contents := make(map[int][]byte, len(pool))
	for _, bin := range pool {
		content, err := bin.GetContentBytes()
		if err != nil {
			return nil, fmt.Errorf("binary %d: %w", bin.ID, err)
		}
		contents[bin.ID] = content
	}
	return contents, nil
}

// attachmentID derives a stable id from the owning entry and the file name.
func attachmentID(entry gokeepasslib.Entry, name string) models.B64Url {
	seed := append(entry.UUID[:], name...)
	return models.B64Url(utils.Hash(seed)[:16])
}

func fileCredentials(entry gokeepasslib.Entry, contents map[int][]byte, sink AttachmentSink) ([]models.Credential, error) {
	creds := make([]models.Credential, 0, len(entry.Binaries))
	for _, ref := range entry.Binaries {
		content, ok := contents[ref.Value.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingAttachment, ref.Name)
		}

		file := &models.FileCredential{
			ID:            attachmentID(entry, ref.Name),
			Name:          ref.Name,
			DecryptedSize: uint64(len(content)),
			IntegrityHash: utils.IntegrityHash(content),
		}
		if sink != nil {
			if err := sink(Attachment{ID: file.ID, Name: file.Name, Content: content}); err != nil {
				return nil, err
			}
		}
		creds = append(creds, file)
	}
	return creds, nil
}
