package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// MaxVerificationDocs is the number of documents accepted per application.
	MaxVerificationDocs = 5

	// MaxDocumentSize is the per-document size limit (10 MiB).
	MaxDocumentSize = 10 << 20

	// DefaultDocumentContentType is used when neither the uploader nor
	// sniffing supplies a type.
	DefaultDocumentContentType = "application/octet-stream"
)

// Document is an uploaded verification file before encoding.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the document length in bytes.
func (d Document) Size() int {
	return len(d.Data)
}

// DataURI encodes the document as "data:<mime>;base64,<payload>".
//
// Documents are stored inline in the application row. This keeps the system
// free of a blob store but inflates each row by roughly 4/3 of the raw size,
// so it only suits small volumes.
func (d Document) DataURI() string {
	contentType := strings.TrimSpace(d.ContentType)
	if contentType == "" {
		contentType = DefaultDocumentContentType
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(d.Data))
}

// EncodeDocuments validates count and sizes, then returns the data URIs in
// upload order.
func EncodeDocuments(docs []Document) ([]string, error) {
	if len(docs) > MaxVerificationDocs {
		return nil, NewValidationError("verificationDocs", "accepts at most 5 files", ErrTooManyDocuments)
	}

	encoded := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Size() > MaxDocumentSize {
			return nil, NewValidationError(
				"verificationDocs",
				fmt.Sprintf("file %q exceeds the 10MB limit", doc.Filename),
				ErrDocumentTooLarge,
			)
		}
		encoded = append(encoded, doc.DataURI())
	}

	return encoded, nil
}
