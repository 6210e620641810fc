package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healix-app/healix-be/internal/api/middleware"
	"github.com/healix-app/healix-be/internal/assistant"
	"github.com/healix-app/healix-be/internal/chat"
	"github.com/healix-app/healix-be/internal/diagnosis"
)

// MessageProcessor is the part of chat.Engine the handlers need
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, req chat.ProcessRequest) (chat.Result, error)
}

// ChatHandler answers single chat messages over plain HTTP
type ChatHandler struct {
	engine MessageProcessor
}

// NewChatHandler creates a new chat handler
func NewChatHandler(engine MessageProcessor) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// SendMessageRequest is the body of POST /api/chat/messages
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse carries the assistant reply
type SendMessageResponse struct {
	Content string             `json:"content"`
	Insight *diagnosis.Insight `json:"insight"`
	Kind    assistant.Kind     `json:"kind"`
	Saved   bool               `json:"saved"`
	IssueID uuid.UUID          `json:"issue_id"`
}

// SendMessage runs a message through the assistant
// POST /api/chat/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.engine.ProcessMessage(c.Request.Context(), chat.ProcessRequest{
		UserID:  middleware.GetUserID(c),
		Message: req.Content,
	})
	switch {
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrMessageTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request cancelled"})
		return
	case err != nil:
		log.Printf("[ERROR] SendMessage failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	c.JSON(http.StatusOK, SendMessageResponse{
		Content: result.Issue.AIResponse,
		Insight: result.Issue.Insight,
		Kind:    result.Kind,
		Saved:   result.Saved,
		IssueID: result.Issue.ID,
	})
}
