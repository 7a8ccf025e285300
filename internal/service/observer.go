package service

import "github.com/crowdchain/crowdchain-api/internal/domain"

// Auth attempt outcomes reported to an Observer.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeDenied   = "denied"
	OutcomeError    = "error"
)

// Observer receives business events, typically to update metrics.
type Observer interface {
	AuthAttempt(operation, outcome string)
	ApplicationSubmitted()
	ApplicationStatusChanged(status domain.ApplicationStatus)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) AuthAttempt(string, string)                        {}
func (NopObserver) ApplicationSubmitted()                             {}
func (NopObserver) ApplicationStatusChanged(domain.ApplicationStatus) {}
