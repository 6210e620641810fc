// Package friends keeps each user's friend list. New lists start with a few
// sample friends.
package friends

import (
	"errors"
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/healix-app/healix-be/internal/auth"
)

var (
	ErrNotFound     = errors.New("friend not found")
	ErrInvalidEmail = errors.New("a valid email is required")
	ErrAlreadyAdded = errors.New("friend already added")
)

// Status of a friendship
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

// Friend is one entry in a user's list
type Friend struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Status Status    `json:"status"`
}

var seed = []struct {
	email, name string
	status      Status
}{
	{"sarah@example.com", "Sarah Johnson", StatusAccepted},
	{"mike@example.com", "Mike Chen", StatusAccepted},
	{"emma@example.com", "Emma Williams", StatusPending},
}

// Service holds friend lists in memory
type Service struct {
	mu    sync.Mutex
	lists map[string][]Friend // by owner
}

func NewService() *Service {
	return &Service{lists: make(map[string][]Friend)}
}

// List returns the owner's friends in insertion order
func (s *Service) List(owner string) []Friend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Friend(nil), s.list(owner)...)
}

// Add sends a friend request. The friend starts pending and is named after
// the email's local part.
func (s *Service) Add(owner, email string) (Friend, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return Friend{}, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.list(owner)
	for _, f := range list {
		if f.Email == email {
			return Friend{}, ErrAlreadyAdded
		}
	}

	f := newFriend(email, nameFromEmail(email), StatusPending)
	s.lists[owner] = append(list, f)
	return f, nil
}

// Accept marks a pending friend as accepted
func (s *Service) Accept(owner string, id uuid.UUID) (Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.list(owner)
	for i := range list {
		if list[i].ID == id {
			list[i].Status = StatusAccepted
			return list[i], nil
		}
	}
	return Friend{}, ErrNotFound
}

// Remove deletes a friend
func (s *Service) Remove(owner string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.list(owner)
	for i := range list {
		if list[i].ID == id {
			s.lists[owner] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// list must be called with mu held
func (s *Service) list(owner string) []Friend {
	list, ok := s.lists[owner]
	if !ok {
		list = make([]Friend, 0, len(seed))
		for _, f := range seed {
			list = append(list, newFriend(f.email, f.name, f.status))
		}
		s.lists[owner] = list
	}
	return list
}

func newFriend(email, name string, status Status) Friend {
	return Friend{
		ID:     uuid.New(),
		UserID: auth.IDForEmail(email),
		Email:  email,
		Name:   name,
		Status: status,
	}
}

func nameFromEmail(email string) string {
	if local, _, _ := strings.Cut(email, "@"); local == "" {
		return "Friend"
	}
	return auth.NameFromEmail(email)
}
