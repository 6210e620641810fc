// Package auth signs users in and issues their session tokens. There is no
// credential check: any email and password pair is accepted.
package auth

import (
	"errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrInvalidEmail = errors.New("a valid email is required")

// userNamespace derives stable user ids from emails
var userNamespace = uuid.MustParse("6f1c9a52-3d0e-4b8e-9a57-2c4f1e7d8b90")

// User is a signed-in account
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Service keeps the accounts seen since start-up
type Service struct {
	mu    sync.RWMutex
	users map[string]User // by id
}

// NewService creates an empty account service
func NewService() *Service {
	return &Service{users: make(map[string]User)}
}

// SignIn accepts any password. The same email always maps to the same user id.
func (s *Service) SignIn(email, password string) (User, error) {
	return s.upsert(email, "")
}

// SignUp is SignIn with an explicit display name
func (s *Service) SignUp(email, password, name string) (User, error) {
	return s.upsert(email, strings.TrimSpace(name))
}

// Get returns a known user
func (s *Service) Get(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Service) upsert(email, name string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return User{}, ErrInvalidEmail
	}

	id := IDForEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		u = User{
			ID:        id,
			Email:     email,
			Name:      NameFromEmail(email),
			CreatedAt: time.Now().UTC(),
		}
	}
	if name != "" {
		u.Name = name
	}
	s.users[id] = u
	return u, nil
}

// IDForEmail is the stable user id of an email address
func IDForEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(userNamespace, []byte(email)).String()
}

// NameFromEmail capitalises the local part: "jane@x.io" -> "Jane"
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "User"
	}
	return cases.Title(language.English, cases.NoLower).String(local)
}
