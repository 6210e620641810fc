// Package chat runs one user message through the assistant and history,
// independent of the transport that delivered it.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/healix-app/healix-be/internal/assistant"
	"github.com/healix-app/healix-be/internal/diagnosis"
	"github.com/healix-app/healix-be/internal/fallback"
	"github.com/healix-app/healix-be/internal/history"
	"github.com/healix-app/healix-be/internal/privacy"
)

// MaxMessageLength is counted in characters, not bytes
const MaxMessageLength = 4000

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = fmt.Errorf("message exceeds %d characters", MaxMessageLength)
)

// Responder delivers the reply on a transport. A nil Responder is allowed;
// the caller then reads the Result.
type Responder interface {
	SendMessage(content string) error
	SendInsight(insight diagnosis.Insight) error
	SendError(message string) error
	SendDone() error
}

// ProcessRequest contains all data needed to process a message
type ProcessRequest struct {
	UserID    string
	Message   string
	Responder Responder
}

// Result is what the engine produced for one message
type Result struct {
	Issue  history.HealthIssue
	Kind   assistant.Kind
	Action fallback.Action
	Saved  bool
}

type AssistantInterface interface {
	Respond(message string) assistant.Response
}

type RecorderInterface interface {
	Record(ctx context.Context, issue history.HealthIssue) bool
}

// Engine handles core conversation logic independent of transport
type Engine struct {
	assistant AssistantInterface
	recorder  RecorderInterface
	delay     time.Duration
}

// NewEngine creates an engine. delay is an artificial pause before replying
// so the client's typing indicator is visible; zero disables it.
func NewEngine(a AssistantInterface, r RecorderInterface, delay time.Duration) *Engine {
	return &Engine{
		assistant: a,
		recorder:  r,
		delay:     delay,
	}
}

// ProcessMessage validates the message, composes the reply, records it and
// pushes it to the responder as message, insight (when present) and done.
func (e *Engine) ProcessMessage(ctx context.Context, req ProcessRequest) (Result, error) {
	message := strings.TrimSpace(req.Message)
	if err := ValidateMessage(message); err != nil {
		return Result{}, err
	}

	user := privacy.UserTag(req.UserID)
	if privacy.ContainsPII(message) {
		log.Printf("Warning: potential PII in message from %s", user)
	}
	log.Printf("Processing message: user=%s, chars=%d, text=%q", user, utf8.RuneCountInString(message), privacy.ForLog(message))

	if err := e.wait(ctx); err != nil {
		return Result{}, err
	}

	resp := e.assistant.Respond(message)
	if resp.Insight != nil {
		log.Printf("Reply for %s: kind=%s, condition=%q, confidence=%d", user, resp.Kind, resp.Insight.Condition, resp.Insight.Confidence)
	} else {
		log.Printf("Reply for %s: kind=%s, no insight", user, resp.Kind)
	}

	issue := history.NewIssue(req.UserID, message, resp.Text, resp.Insight)
	result := Result{
		Issue:  issue,
		Kind:   resp.Kind,
		Action: resp.Action,
		Saved:  e.recorder.Record(ctx, issue),
	}

	if req.Responder == nil {
		return result, nil
	}
	if err := req.Responder.SendMessage(resp.Text); err != nil {
		return result, fmt.Errorf("failed to send message: %w", err)
	}
	if resp.Insight != nil {
		if err := req.Responder.SendInsight(*resp.Insight); err != nil {
			return result, fmt.Errorf("failed to send insight: %w", err)
		}
	}
	return result, req.Responder.SendDone()
}

// ValidateMessage checks an already trimmed message
func ValidateMessage(message string) error {
	if message == "" {
		return ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

func (e *Engine) wait(ctx context.Context) error {
	if e.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(e.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
