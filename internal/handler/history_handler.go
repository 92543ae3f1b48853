package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"adcheck/internal/port"
)

// HistoryHandler exposes past judgment results.
type HistoryHandler struct {
	repo port.HistoryRepository
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(repo port.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// List handles GET /api/v1/history?limit=<n>
func (h *HistoryHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	entries, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		log.Printf("HistoryHandler.List: %v", err)
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}
