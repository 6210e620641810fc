package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	svc := NewService()

	u, err := svc.SignIn("  Jane@Example.com ", "anything")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "Jane", u.Name)
	assert.NotEmpty(t, u.ID)

	again, err := svc.SignIn("jane@example.com", "different")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID, "same email maps to the same user")

	got, ok := svc.Get(u.ID)
	require.True(t, ok)
	assert.Equal(t, u.Email, got.Email)
}

func TestIDForEmail(t *testing.T) {
	u, err := NewService().SignIn("Pat@Example.com", "")
	require.NoError(t, err)

	assert.Equal(t, u.ID, IDForEmail(" pat@example.COM "))
	assert.Equal(t, u.ID, IDForEmail("pat@example.com"), "ids survive a new service")
	assert.NotEqual(t, u.ID, IDForEmail("sam@example.com"))
}

func TestSignUp(t *testing.T) {
	svc := NewService()

	u, err := svc.SignUp("sam@example.com", "pw", "Sam Smith")
	require.NoError(t, err)
	assert.Equal(t, "Sam Smith", u.Name)

	u, err = svc.SignUp("alex@example.com", "pw", "  ")
	require.NoError(t, err)
	assert.Equal(t, "Alex", u.Name)
}

func TestSignIn_InvalidEmail(t *testing.T) {
	svc := NewService()

	for _, email := range []string{"", "   ", "not-an-email", "@"} {
		_, err := svc.SignIn(email, "pw")
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestNameFromEmail(t *testing.T) {
	tests := map[string]string{
		"jane@example.com": "Jane",
		"bob":              "Bob",
		"@example.com":     "User",
	}
	for email, want := range tests {
		assert.Equal(t, want, NameFromEmail(email), email)
	}
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret")
	user := User{ID: "user-1", Email: "jane@example.com"}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestIssuer_Rejects(t *testing.T) {
	issuer := NewIssuer("test-secret")
	token, err := issuer.Issue(User{ID: "user-1"})
	require.NoError(t, err)

	expired := NewIssuer("test-secret")
	expired.now = func() time.Time { return time.Now().Add(-2 * TokenTTL) }
	oldToken, err := expired.Issue(User{ID: "user-1"})
	require.NoError(t, err)

	tests := map[string]string{
		"wrong secret": token,
		"garbage":      "not.a.token",
		"expired":      oldToken,
		"tampered":     token + "x",
	}

	other := NewIssuer("other-secret")
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			verifier := issuer
			if name == "wrong secret" {
				verifier = other
			}
			_, err := verifier.Parse(tok)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}

	empty, err := issuer.Issue(User{})
	require.NoError(t, err)
	_, err = issuer.Parse(empty)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
