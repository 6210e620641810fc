package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healix-app/healix-be/internal/api/middleware"
	"github.com/healix-app/healix-be/internal/friends"
)

// FriendHandler handles friend list endpoints
type FriendHandler struct {
	friends *friends.Service
}

func NewFriendHandler(svc *friends.Service) *FriendHandler {
	return &FriendHandler{friends: svc}
}

// AddFriendRequest represents a friend request
type AddFriendRequest struct {
	Email string `json:"email" binding:"required"`
}

// ListFriends returns the user's friends
// GET /api/friends
func (h *FriendHandler) ListFriends(c *gin.Context) {
	list := h.friends.List(middleware.GetUserID(c))
	c.JSON(http.StatusOK, gin.H{
		"friends": list,
		"count":   len(list),
	})
}

// AddFriend sends a friend request
// POST /api/friends
func (h *FriendHandler) AddFriend(c *gin.Context) {
	var req AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.friends.Add(middleware.GetUserID(c), req.Email)
	switch {
	case errors.Is(err, friends.ErrAlreadyAdded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, f)
}

// AcceptFriend accepts a pending request
// PUT /api/friends/:id/accept
func (h *FriendHandler) AcceptFriend(c *gin.Context) {
	id, ok := friendID(c)
	if !ok {
		return
	}

	f, err := h.friends.Accept(middleware.GetUserID(c), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, f)
}

// RemoveFriend deletes a friend
// DELETE /api/friends/:id
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	id, ok := friendID(c)
	if !ok {
		return
	}

	if err := h.friends.Remove(middleware.GetUserID(c), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

func friendID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friend ID"})
		return uuid.Nil, false
	}
	return id, true
}
