// Package history keeps the health issues a user reported together with the
// assistant's reply and insight.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/healix-app/healix-be/internal/diagnosis"
	"github.com/healix-app/healix-be/internal/symptoms"
)

// ErrNotFound is returned when an issue does not exist for the user
var ErrNotFound = errors.New("health issue not found")

// HealthIssue is one message exchange. Insight is nil when the assistant
// could not suggest a condition.
type HealthIssue struct {
	ID               uuid.UUID          `json:"id"`
	UserID           string             `json:"user_id"`
	UserMessage      string             `json:"user_message"`
	AIResponse       string             `json:"ai_response"`
	Insight          *diagnosis.Insight `json:"insight,omitempty"`
	ReportedSeverity string             `json:"reported_severity,omitempty"`
	Frequency        string             `json:"frequency,omitempty"`
	Onset            string             `json:"onset,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

// NewIssue builds an issue for a reply, annotated with the severity,
// frequency and onset the user mentioned.
func NewIssue(userID, message, reply string, insight *diagnosis.Insight) HealthIssue {
	cues := symptoms.Describe(message)
	return HealthIssue{
		ID:               uuid.New(),
		UserID:           userID,
		UserMessage:      message,
		AIResponse:       reply,
		Insight:          insight,
		ReportedSeverity: cues.Severity,
		Frequency:        cues.Frequency,
		Onset:            cues.Onset,
		CreatedAt:        time.Now().UTC(),
	}
}

// Store persists health issues. Lists are newest first.
type Store interface {
	AddIssue(ctx context.Context, issue HealthIssue) error
	ListIssues(ctx context.Context, userID string, limit int) ([]HealthIssue, error)
	GetIssue(ctx context.Context, userID string, id uuid.UUID) (HealthIssue, error)
}
