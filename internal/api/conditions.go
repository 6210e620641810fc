package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healix-app/healix-be/internal/diagnosis"
)

// ConditionHandler exposes the condition catalog
type ConditionHandler struct {
	catalog *diagnosis.Catalog
}

func NewConditionHandler(catalog *diagnosis.Catalog) *ConditionHandler {
	return &ConditionHandler{catalog: catalog}
}

// ListConditions returns the catalog, optionally filtered by ?category=
// GET /api/conditions
func (h *ConditionHandler) ListConditions(c *gin.Context) {
	conditions := h.catalog.Conditions()

	if q := c.Query("category"); q != "" {
		category, err := diagnosis.ParseCategory(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filtered := conditions[:0]
		for _, cond := range conditions {
			if cond.Category == category {
				filtered = append(filtered, cond)
			}
		}
		conditions = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"version":    h.catalog.Version(),
		"conditions": conditions,
		"count":      len(conditions),
	})
}

// GetCondition returns one condition by id
// GET /api/conditions/:id
func (h *ConditionHandler) GetCondition(c *gin.Context) {
	cond, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Condition not found"})
		return
	}
	c.JSON(http.StatusOK, cond)
}
