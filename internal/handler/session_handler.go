package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"adcheck/internal/domain"
	"adcheck/internal/service"
)

// SessionHandler handles judgment session endpoints.
type SessionHandler struct {
	svc service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Create handles POST /api/v1/sessions
//
// Accepts a multipart form with a "file" field and an optional "track"
// field ("checklist" or "scene"). When track is omitted, PDFs go to the
// checklist flow and images to the scene flow.
func (h *SessionHandler) Create(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FIELD", "file is required")
		return
	}
	defer file.Close()

	var track domain.Track
	switch v := c.PostForm("track"); v {
	case "":
	case string(domain.TrackChecklist):
		track = domain.TrackChecklist
	case string(domain.TrackScene):
		track = domain.TrackScene
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_TRACK", "track must be \"checklist\" or \"scene\"")
		return
	}

	sess, err := h.svc.Upload(c.Request.Context(), service.UploadInput{
		File:   file,
		Header: header,
		Track:  track,
	})
	if err != nil {
		log.Printf("SessionHandler.Create: upload failed: %v", err)
		HandleError(c, err)
		return
	}
	RespondCreated(c, sess)
}

// Get handles GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.svc.Get(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// Analyze handles POST /api/v1/sessions/:id/analyze
func (h *SessionHandler) Analyze(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.svc.Analyze(c.Request.Context(), id)
	if err != nil {
		log.Printf("SessionHandler.Analyze: session %s: %v", id, err)
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

type confirmRequest struct {
	AdType string `json:"adType" binding:"required"`
}

// Confirm handles POST /api/v1/sessions/:id/confirm
func (h *SessionHandler) Confirm(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FIELD", "adType is required")
		return
	}
	sess, err := h.svc.Confirm(c.Request.Context(), id, domain.AdType(req.AdType))
	if err != nil {
		log.Printf("SessionHandler.Confirm: session %s: %v", id, err)
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// Check handles POST /api/v1/sessions/:id/check
func (h *SessionHandler) Check(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.svc.RunChecklist(c.Request.Context(), id)
	if err != nil {
		log.Printf("SessionHandler.Check: session %s: %v", id, err)
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

type sceneCheckRequest struct {
	SceneID string `json:"sceneId" binding:"required"`
}

// SceneCheck handles POST /api/v1/sessions/:id/scene-check
func (h *SessionHandler) SceneCheck(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req sceneCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FIELD", "sceneId is required")
		return
	}
	sess, err := h.svc.CheckScene(c.Request.Context(), id, req.SceneID)
	if err != nil {
		log.Printf("SessionHandler.SceneCheck: session %s: %v", id, err)
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

type batchRequest struct {
	SceneIDs []string `json:"sceneIds"`
}

// Batch handles POST /api/v1/sessions/:id/batch
//
// Starts a background batch check over the given scenes (or the whole
// registered set when sceneIds is empty) and returns immediately. Callers
// poll Progress for completion.
func (h *SessionHandler) Batch(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		return
	}
	sess, err := h.svc.StartBatch(c.Request.Context(), id, req.SceneIDs)
	if err != nil {
		log.Printf("SessionHandler.Batch: session %s: %v", id, err)
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: sess})
}

// Progress handles GET /api/v1/sessions/:id/progress
func (h *SessionHandler) Progress(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	progress, err := h.svc.Progress(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, progress)
}

type chatRequest struct {
	Question string `json:"question" binding:"required"`
}

// Chat handles POST /api/v1/sessions/:id/chat
func (h *SessionHandler) Chat(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FIELD", "question is required")
		return
	}
	msg, err := h.svc.Chat(c.Request.Context(), id, req.Question)
	if err != nil {
		log.Printf("SessionHandler.Chat: session %s: %v", id, err)
		HandleError(c, err)
		return
	}
	RespondOK(c, msg)
}

// Delete handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.svc.Reset(id); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
