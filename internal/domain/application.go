package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus represents the review state of a creator application.
// Any status may move to any other; there is no terminal state.
type ApplicationStatus string

// Possible application status values
const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// ApplicationStatuses lists every valid status in display order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusApproved,
	ApplicationStatusRejected,
}

// ParseApplicationStatus converts s into an ApplicationStatus.
// Matching is exact; "approved" is rejected.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(s)
	if !status.IsValid() {
		return "", NewValidationError("status", "must be PENDING, APPROVED, or REJECTED", ErrInvalidApplicationStatus)
	}
	return status, nil
}

// IsValid reports whether s is one of the enumerated statuses.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// CreatorApplication is a request by a wallet owner to become a creator.
type CreatorApplication struct {
	ID                uuid.UUID         `json:"id"`
	WalletAddress     string            `json:"walletAddress"`
	FullName          string            `json:"fullName"`
	Email             string            `json:"email"`
	ProfessionalTitle string            `json:"professionalTitle"`
	LinkedInURL       string            `json:"linkedinUrl,omitempty"`
	WebsiteURL        string            `json:"websiteUrl,omitempty"`
	Bio               string            `json:"bio,omitempty"`
	VerificationDocs  []string          `json:"verificationDocs"`
	Status            ApplicationStatus `json:"status"`
	SubmittedAt       time.Time         `json:"submittedAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// NewCreatorApplication builds a PENDING application from a reconciled
// submission and its encoded verification documents.
func NewCreatorApplication(sub Submission, docs []string, now time.Time) (*CreatorApplication, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if len(docs) > MaxVerificationDocs {
		return nil, NewValidationError("verificationDocs", "accepts at most 5 files", ErrTooManyDocuments)
	}
	if docs == nil {
		docs = []string{}
	}

	return &CreatorApplication{
		ID:                uuid.New(),
		WalletAddress:     NormalizeWalletAddress(sub.WalletAddress),
		FullName:          sub.FullName,
		Email:             sub.Email,
		ProfessionalTitle: sub.ProfessionalTitle,
		LinkedInURL:       sub.LinkedInURL,
		WebsiteURL:        sub.WebsiteURL,
		Bio:               sub.Bio,
		VerificationDocs:  docs,
		Status:            ApplicationStatusPending,
		SubmittedAt:       now,
		UpdatedAt:         now,
	}, nil
}

// UpdateStatus sets the status and bumps UpdatedAt.
func (a *CreatorApplication) UpdateStatus(status ApplicationStatus, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidApplicationStatus
	}

	a.Status = status
	a.UpdatedAt = now
	return nil
}

// NormalizeWalletAddress trims and lower-cases a wallet address so lookups
// are case-insensitive.
func NormalizeWalletAddress(wallet string) string {
	return strings.ToLower(strings.TrimSpace(wallet))
}

// ApplicationStats holds per-status counts.
// Pending+Approved+Rejected always equals Total.
type ApplicationStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
