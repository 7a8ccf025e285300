package mocks

import (
	"sync"

	"github.com/crowdchain/crowdchain-api/internal/domain"
)

// RecordingObserver implements service.Observer and remembers every event.
type RecordingObserver struct {
	mu            sync.Mutex
	AuthAttempts  []string
	Submissions   int
	StatusChanges []domain.ApplicationStatus
}

// AuthAttempt records "operation:outcome".
func (o *RecordingObserver) AuthAttempt(operation, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.AuthAttempts = append(o.AuthAttempts, operation+":"+outcome)
}

// ApplicationSubmitted counts a submission.
func (o *RecordingObserver) ApplicationSubmitted() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Submissions++
}

// ApplicationStatusChanged records the new status.
func (o *RecordingObserver) ApplicationStatusChanged(status domain.ApplicationStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.StatusChanges = append(o.StatusChanges, status)
}
