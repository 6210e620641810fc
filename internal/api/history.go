package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healix-app/healix-be/internal/api/middleware"
	"github.com/healix-app/healix-be/internal/history"
)

// HistoryHandler serves a user's past health issues
type HistoryHandler struct {
	store    history.Store
	maxLimit int
}

// NewHistoryHandler creates a history handler. maxLimit caps ?limit=.
func NewHistoryHandler(store history.Store, maxLimit int) *HistoryHandler {
	if maxLimit < 1 {
		maxLimit = 100
	}
	return &HistoryHandler{store: store, maxLimit: maxLimit}
}

// ListIssues returns the newest issues first
// GET /api/history?limit=20
func (h *HistoryHandler) ListIssues(c *gin.Context) {
	userID := middleware.GetUserID(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.maxLimit)))
	if err != nil || limit <= 0 || limit > h.maxLimit {
		limit = h.maxLimit
	}

	issues, err := h.store.ListIssues(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("[ERROR] ListIssues failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}
	if issues == nil {
		issues = []history.HealthIssue{}
	}

	c.JSON(http.StatusOK, gin.H{
		"issues": issues,
		"count":  len(issues),
	})
}

// GetIssue returns one issue
// GET /api/history/:id
func (h *HistoryHandler) GetIssue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	issue, err := h.store.GetIssue(c.Request.Context(), middleware.GetUserID(c), id)
	if errors.Is(err, history.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		log.Printf("[ERROR] GetIssue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	c.JSON(http.StatusOK, issue)
}
