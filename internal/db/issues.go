package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/healix-app/healix-be/internal/diagnosis"
	"github.com/healix-app/healix-be/internal/history"
)

// IssueStore implements history.Store on PostgreSQL
type IssueStore struct {
	db *sql.DB
}

var _ history.Store = (*IssueStore)(nil)

// NewIssueStore creates a store on an open connection
func NewIssueStore(db *sql.DB) *IssueStore {
	return &IssueStore{db: db}
}

const issueColumns = `id, user_id, user_message, ai_response, insight, reported_severity, frequency, onset, created_at`

// AddIssue inserts an issue. The insight is stored as JSONB, NULL when absent.
func (s *IssueStore) AddIssue(ctx context.Context, issue history.HealthIssue) error {
	var insight []byte
	if issue.Insight != nil {
		b, err := json.Marshal(issue.Insight)
		if err != nil {
			return fmt.Errorf("failed to encode insight: %w", err)
		}
		insight = b
	}

	query := `
		INSERT INTO health_issues (` + issueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		issue.ID, issue.UserID, issue.UserMessage, issue.AIResponse, insight,
		issue.ReportedSeverity, issue.Frequency, issue.Onset, issue.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert health issue: %w", err)
	}
	return nil
}

// ListIssues returns the user's issues, newest first. limit <= 0 means all.
func (s *IssueStore) ListIssues(ctx context.Context, userID string, limit int) ([]history.HealthIssue, error) {
	query := `
		SELECT ` + issueColumns + `
		FROM health_issues
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query health issues: %w", err)
	}
	defer rows.Close()

	issues := make([]history.HealthIssue, 0)
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating health issues: %w", err)
	}

	return issues, nil
}

// GetIssue returns one of the user's issues or history.ErrNotFound
func (s *IssueStore) GetIssue(ctx context.Context, userID string, id uuid.UUID) (history.HealthIssue, error) {
	query := `
		SELECT ` + issueColumns + `
		FROM health_issues
		WHERE user_id = $1 AND id = $2
	`
	issue, err := scanIssue(s.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return history.HealthIssue{}, history.ErrNotFound
	}
	return issue, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIssue(row scanner) (history.HealthIssue, error) {
	var (
		issue   history.HealthIssue
		insight []byte
	)
	err := row.Scan(
		&issue.ID, &issue.UserID, &issue.UserMessage, &issue.AIResponse, &insight,
		&issue.ReportedSeverity, &issue.Frequency, &issue.Onset, &issue.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return issue, err
	}
	if err != nil {
		return issue, fmt.Errorf("failed to scan health issue: %w", err)
	}

	if len(insight) > 0 {
		var in diagnosis.Insight
		if err := json.Unmarshal(insight, &in); err != nil {
			return issue, fmt.Errorf("failed to decode insight for issue %s: %w", issue.ID, err)
		}
		issue.Insight = &in
	}

	return issue, nil
}
