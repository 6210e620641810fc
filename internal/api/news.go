package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healix-app/healix-be/internal/news"
)

// NewsHandler serves the health news feed
type NewsHandler struct {
	news *news.Service
}

func NewNewsHandler(svc *news.Service) *NewsHandler {
	return &NewsHandler{news: svc}
}

// ListArticles returns articles, newest first
// GET /api/news?limit=5
func (h *NewsHandler) ListArticles(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}

	articles := h.news.Articles(limit)
	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}
