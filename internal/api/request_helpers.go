package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/crowdchain/crowdchain-api/internal/api/shared"
	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
)

const (
	// documentsField is the multipart field carrying verification documents.
	documentsField = "verificationDocs"

	// multipartMemory is how much of a multipart body is kept in memory
	// before spilling files to disk.
	multipartMemory = 32 << 20
)

// errBodyTooLarge is returned when a request body exceeds its limit.
var errBodyTooLarge = errors.New("request body too large")

// walletParam extracts the {wallet} path parameter.
func walletParam(r *http.Request) (string, error) {
	wallet := strings.TrimSpace(chi.URLParam(r, "wallet"))
	if wallet == "" {
		return "", domain.NewValidationError("walletAddress", "is required", nil)
	}
	return wallet, nil
}

// statusQuery parses the optional ?status= filter.
func statusQuery(r *http.Request) *domain.ApplicationStatus {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil
	}
	status := domain.ApplicationStatus(raw)
	return &status
}

// parseApplicationRequest reads a creator application from either a
// multipart form with up to five verificationDocs files or a JSON body.
func parseApplicationRequest(
	w http.ResponseWriter,
	r *http.Request,
	maxBodyBytes int64,
) (ApplicationRequest, []domain.Document, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req ApplicationRequest
		if err := shared.DecodeJSON(w, r, &req); err != nil {
			if isBodyTooLarge(err) {
				return req, nil, errBodyTooLarge
			}
			return req, nil, domain.NewValidationError("", msgInvalidRequest, nil)
		}
		return req, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isBodyTooLarge(err) {
			return ApplicationRequest{}, nil, errBodyTooLarge
		}
		return ApplicationRequest{}, nil, domain.NewValidationError("", msgInvalidRequest, nil)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	form := r.MultipartForm
	req := ApplicationRequest{
		WalletAddress:     formValue(form, "walletAddress"),
		FullName:          formValue(form, "fullName"),
		Email:             formValue(form, "email"),
		ProfessionalTitle: formValue(form, "professionalTitle"),
		LinkedIn:          formValue(form, "linkedIn"),
		Website:           formValue(form, "website"),
		Bio:               formValue(form, "bio"),
		Experience:        formValue(form, "experience"),
		Portfolio:         formValue(form, "portfolio"),
	}

	for field := range form.File {
		if field != documentsField {
			return req, nil, domain.NewValidationError(field, "is not an accepted file field", nil)
		}
	}

	docs, err := readDocuments(form.File[documentsField])
	return req, docs, err
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// readDocuments loads uploaded files in order. The declared content type is
// used unless it is missing or generic, in which case the bytes are sniffed.
func readDocuments(headers []*multipart.FileHeader) ([]domain.Document, error) {
	if len(headers) > domain.MaxVerificationDocs {
		return nil, domain.NewValidationError(documentsField, "accepts at most 5 files", domain.ErrTooManyDocuments)
	}

	docs := make([]domain.Document, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > domain.MaxDocumentSize {
			return nil, domain.NewValidationError(
				documentsField,
				fmt.Sprintf("file %q exceeds the 10MB limit", fh.Filename),
				domain.ErrDocumentTooLarge,
			)
		}

		data, err := readFile(fh)
		if err != nil {
			return nil, err
		}

		contentType := strings.TrimSpace(fh.Header.Get("Content-Type"))
		if contentType == "" || contentType == domain.DefaultDocumentContentType {
			contentType = mimetype.Detect(data).String()
		}
		// Parameters such as "; charset=utf-8" would break the data URI.
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			contentType = mediaType
		}

		docs = append(docs, domain.Document{
			Filename:    fh.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}
	return docs, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}
	return data, nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || errors.Is(err, multipart.ErrMessageTooLarge)
}
