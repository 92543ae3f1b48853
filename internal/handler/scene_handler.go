package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"adcheck/internal/domain"
	"adcheck/internal/service"
)

// SceneHandler handles scene registry endpoints.
type SceneHandler struct {
	svc service.SceneService
}

// NewSceneHandler creates a new SceneHandler.
func NewSceneHandler(svc service.SceneService) *SceneHandler {
	return &SceneHandler{svc: svc}
}

// List handles GET /api/v1/scenes
func (h *SceneHandler) List(c *gin.Context) {
	scenes, err := h.svc.List(c.Request.Context())
	if err != nil {
		log.Printf("SceneHandler.List: %v", err)
		HandleError(c, err)
		return
	}
	RespondOK(c, scenes)
}

type replaceScenesRequest struct {
	Scenes []domain.Scene `json:"scenes"`
}

// Replace handles PUT /api/v1/scenes
//
// Replaces the whole registered scene set. The frontend edits scenes as a
// unit, so partial updates are not offered.
func (h *SceneHandler) Replace(c *gin.Context) {
	var req replaceScenesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with a scenes array")
		return
	}
	scenes, err := h.svc.Replace(c.Request.Context(), req.Scenes)
	if err != nil {
		log.Printf("SceneHandler.Replace: %v", err)
		HandleError(c, err)
		return
	}
	RespondOK(c, scenes)
}
