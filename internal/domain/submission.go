package domain

import (
	"net/url"
	"strings"
)

// SubmissionPayload is the tagged union of accepted application request
// shapes. Only CurrentPayload and LegacyPayload implement it.
type SubmissionPayload interface {
	isSubmissionPayload()
}

// CurrentPayload is the request shape sent by up-to-date clients.
type CurrentPayload struct {
	WalletAddress     string
	FullName          string
	Email             string
	ProfessionalTitle string
	LinkedInURL       string
	WebsiteURL        string
	Bio               string
}

// LegacyPayload is a request that still carries the experience or
// portfolio fields. Experience stands in for ProfessionalTitle and
// Portfolio for WebsiteURL, each only when the newer field is empty.
//
// TODO: remove LegacyPayload once the web client stops sending
// experience/portfolio fields.
type LegacyPayload struct {
	WalletAddress     string
	FullName          string
	Email             string
	ProfessionalTitle string
	Experience        string
	WebsiteURL        string
	Portfolio         string
	LinkedInURL       string
	Bio               string
}

func (CurrentPayload) isSubmissionPayload() {}
func (LegacyPayload) isSubmissionPayload()  {}

// Submission is a normalized application request, independent of the
// payload shape it arrived in.
type Submission struct {
	WalletAddress     string
	FullName          string
	Email             string
	ProfessionalTitle string
	LinkedInURL       string
	WebsiteURL        string
	Bio               string
}

// ReconcileSubmission converts either payload variant into a Submission.
// Each legacy field only fills the newer field it replaced when that one is
// empty, and a missing bio is synthesized from the professional title.
func ReconcileSubmission(payload SubmissionPayload) Submission {
	var sub Submission

	switch p := payload.(type) {
	case CurrentPayload:
		sub = Submission{
			WalletAddress:     p.WalletAddress,
			FullName:          p.FullName,
			Email:             p.Email,
			ProfessionalTitle: p.ProfessionalTitle,
			LinkedInURL:       p.LinkedInURL,
			WebsiteURL:        p.WebsiteURL,
			Bio:               p.Bio,
		}
	case LegacyPayload:
		sub = Submission{
			WalletAddress:     p.WalletAddress,
			FullName:          p.FullName,
			Email:             p.Email,
			ProfessionalTitle: firstNonBlank(p.ProfessionalTitle, p.Experience),
			LinkedInURL:       p.LinkedInURL,
			WebsiteURL:        firstNonBlank(p.WebsiteURL, p.Portfolio),
			Bio:               p.Bio,
		}
	}

	sub.WalletAddress = NormalizeWalletAddress(sub.WalletAddress)
	sub.FullName = strings.TrimSpace(sub.FullName)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.ProfessionalTitle = strings.TrimSpace(sub.ProfessionalTitle)
	sub.LinkedInURL = strings.TrimSpace(sub.LinkedInURL)
	sub.WebsiteURL = strings.TrimSpace(sub.WebsiteURL)
	sub.Bio = strings.TrimSpace(sub.Bio)

	if sub.Bio == "" && sub.ProfessionalTitle != "" {
		sub.Bio = "Professional with expertise in " + sub.ProfessionalTitle
	}

	return sub
}

// Validate checks required fields and the format of optional URLs.
func (s Submission) Validate() error {
	switch {
	case s.WalletAddress == "":
		return NewValidationError("walletAddress", "is required", nil)
	case s.FullName == "":
		return NewValidationError("fullName", "is required", nil)
	case s.Email == "":
		return NewValidationError("email", "is required", nil)
	case s.ProfessionalTitle == "":
		return NewValidationError("professionalTitle", "is required", nil)
	}

	if err := ValidateEmail(s.Email); err != nil {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	if s.LinkedInURL != "" && !isHTTPURL(s.LinkedInURL) {
		return NewValidationError("linkedIn", "must be an http(s) URL", nil)
	}
	if s.WebsiteURL != "" && !isHTTPURL(s.WebsiteURL) {
		return NewValidationError("website", "must be an http(s) URL", nil)
	}

	return nil
}

func firstNonBlank(preferred, fallback string) string {
	if strings.TrimSpace(preferred) != "" {
		return preferred
	}
	return fallback
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
