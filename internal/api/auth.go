package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healix-app/healix-be/internal/api/middleware"
	"github.com/healix-app/healix-be/internal/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	users  *auth.Service
	issuer *auth.Issuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *auth.Service, issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{
		users:  users,
		issuer: issuer,
	}
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.SignUp(req.Email, req.Password, req.Name)
	h.respond(c, http.StatusCreated, user, err)
}

// Login handles user login. Any password is accepted.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.SignIn(req.Email, req.Password)
	h.respond(c, http.StatusOK, user, err)
}

// Me returns the current user's information
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if user, ok := h.users.Get(userID); ok {
		c.JSON(http.StatusOK, user)
		return
	}

	// token outlived a restart; rebuild the account from its claims
	user, err := h.users.SignIn(middleware.GetEmail(c), "")
	if err != nil || user.ID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) respond(c *gin.Context, status int, user auth.User, err error) {
	if errors.Is(err, auth.ErrInvalidEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(status, AuthResponse{
		Token: token,
		User:  user,
	})
}
