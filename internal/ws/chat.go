// Package ws serves the streaming chat endpoint.
package ws

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/healix-app/healix-be/internal/api/middleware"
	"github.com/healix-app/healix-be/internal/auth"
	"github.com/healix-app/healix-be/internal/chat"
	"github.com/healix-app/healix-be/internal/diagnosis"
	"github.com/healix-app/healix-be/internal/privacy"
)

const (
	writeWait         = 10 * time.Second
	maxFrameBytes     = 16 << 10
	messagesPerMinute = 20
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // tokens, not cookies, authenticate the socket
	},
}

// Frame types sent to the client
const (
	FrameMessage = "message"
	FrameInsight = "insight"
	FrameError   = "error"
	FrameDone    = "done"
)

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Content string `json:"content"`
}

// OutgoingMessage represents a message to the client
type OutgoingMessage struct {
	Type    string             `json:"type"`
	Content string             `json:"content,omitempty"`
	Insight *diagnosis.Insight `json:"insight,omitempty"`
}

// MessageProcessor is the part of chat.Engine the handler needs
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, req chat.ProcessRequest) (chat.Result, error)
}

// ChatHandler handles WebSocket chat connections
type ChatHandler struct {
	engine MessageProcessor
	issuer *auth.Issuer
}

// NewChatHandler creates a new chat handler
func NewChatHandler(engine MessageProcessor, issuer *auth.Issuer) *ChatHandler {
	return &ChatHandler{engine: engine, issuer: issuer}
}

// HandleChat authenticates, upgrades and then answers each inbound message
// with message, insight and done frames.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}
	claims, err := h.issuer.Parse(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)

	user := privacy.UserTag(claims.UserID)
	log.Printf("WebSocket connected: user=%s", user)
	defer log.Printf("WebSocket closed: user=%s", user)

	out := &connResponder{conn: conn}
	limiter := middleware.NewMessageLimiter(messagesPerMinute)
	ctx := c.Request.Context()

	for {
		var msg IncomingMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: user=%s: %v", user, err)
			}
			return
		}

		if !limiter.Allow() {
			_ = out.SendError("You're sending messages too quickly. Please wait a moment.")
			continue
		}

		_, err := h.engine.ProcessMessage(ctx, chat.ProcessRequest{
			UserID:    claims.UserID,
			Message:   msg.Content,
			Responder: out,
		})
		switch {
		case err == nil:
		case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrMessageTooLong):
			_ = out.SendError(err.Error())
		case errors.Is(err, context.Canceled):
			return
		default:
			log.Printf("Error processing message: user=%s: %v", user, err)
			_ = out.SendError("Something went wrong. Please try again.")
		}
	}
}

// connResponder writes frames to one connection. gorilla connections allow a
// single concurrent writer.
type connResponder struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (r *connResponder) write(m OutgoingMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return r.conn.WriteJSON(m)
}

func (r *connResponder) SendMessage(content string) error {
	return r.write(OutgoingMessage{Type: FrameMessage, Content: content})
}

func (r *connResponder) SendInsight(insight diagnosis.Insight) error {
	return r.write(OutgoingMessage{Type: FrameInsight, Insight: &insight})
}

func (r *connResponder) SendError(message string) error {
	return r.write(OutgoingMessage{Type: FrameError, Content: message})
}

func (r *connResponder) SendDone() error {
	return r.write(OutgoingMessage{Type: FrameDone})
}
