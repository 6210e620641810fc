package history

import (
	"context"
	"errors"
	"log"

	"github.com/healix-app/healix-be/internal/circuitbreaker"
	"github.com/healix-app/healix-be/internal/privacy"
)

// Recorder saves issues through a circuit breaker. A failing store never
// fails the chat: the reply is still delivered, only unsaved.
type Recorder struct {
	store   Store
	breaker *circuitbreaker.Breaker
}

// NewRecorder wraps store with breaker
func NewRecorder(store Store, breaker *circuitbreaker.Breaker) *Recorder {
	return &Recorder{store: store, breaker: breaker}
}

// Record stores the issue and reports whether it was saved
func (r *Recorder) Record(ctx context.Context, issue HealthIssue) bool {
	err := r.breaker.Do(func() error {
		return r.store.AddIssue(ctx, issue)
	})
	if err == nil {
		return true
	}

	if errors.Is(err, circuitbreaker.ErrOpen) || errors.Is(err, circuitbreaker.ErrProbe) {
		log.Printf("History store unavailable, issue %s for %s not saved", issue.ID, privacy.UserTag(issue.UserID))
	} else {
		log.Printf("Failed to save issue %s for %s: %v", issue.ID, privacy.UserTag(issue.UserID), err)
	}
	return false
}

// Store returns the underlying store for reads
func (r *Recorder) Store() Store {
	return r.store
}
