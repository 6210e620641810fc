package history

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps issues in process. Each user keeps at most perUser
// issues; the oldest are dropped first.
type MemoryStore struct {
	perUser int

	mu    sync.RWMutex
	users map[string][]HealthIssue // oldest first
}

// NewMemoryStore creates an in-memory store
func NewMemoryStore(perUser int) *MemoryStore {
	if perUser < 1 {
		perUser = 1
	}
	return &MemoryStore{
		perUser: perUser,
		users:   make(map[string][]HealthIssue),
	}
}

func (s *MemoryStore) AddIssue(ctx context.Context, issue HealthIssue) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	issues := append(s.users[issue.UserID], issue)
	if len(issues) > s.perUser {
		issues = issues[len(issues)-s.perUser:]
	}
	s.users[issue.UserID] = issues
	return nil
}

// ListIssues returns up to limit issues, newest first. limit <= 0 means all.
func (s *MemoryStore) ListIssues(ctx context.Context, userID string, limit int) ([]HealthIssue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	issues := s.users[userID]
	n := len(issues)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]HealthIssue, 0, n)
	for i := len(issues) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, issues[i])
	}
	return out, nil
}

func (s *MemoryStore) GetIssue(ctx context.Context, userID string, id uuid.UUID) (HealthIssue, error) {
	if err := ctx.Err(); err != nil {
		return HealthIssue{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, issue := range s.users[userID] {
		if issue.ID == id {
			return issue, nil
		}
	}
	return HealthIssue{}, ErrNotFound
}

// Clear drops every issue of a user
func (s *MemoryStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}
