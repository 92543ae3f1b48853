package router

import (
	"github.com/gin-gonic/gin"

	"adcheck/internal/handler"
	"adcheck/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	sessionH *handler.SessionHandler,
	sceneH *handler.SceneHandler,
	catalogH *handler.CatalogHandler,
	historyH *handler.HistoryHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Judgment sessions
	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("/:id", sessionH.Get)
	sessions.POST("/:id/analyze", sessionH.Analyze)
	sessions.POST("/:id/confirm", sessionH.Confirm)
	sessions.POST("/:id/check", sessionH.Check)
	sessions.POST("/:id/scene-check", sessionH.SceneCheck)
	sessions.POST("/:id/batch", sessionH.Batch)
	sessions.GET("/:id/progress", sessionH.Progress)
	sessions.POST("/:id/chat", sessionH.Chat)
	sessions.DELETE("/:id", sessionH.Delete)

	// Scene registry
	scenes := v1.Group("/scenes")
	scenes.GET("", sceneH.List)
	scenes.PUT("", sceneH.Replace)

	// Checklist catalog (read-only)
	catalog := v1.Group("/catalog")
	catalog.GET("/types", catalogH.Types)
	catalog.GET("/checklist", catalogH.Checklist)

	// Judgment history
	v1.GET("/history", historyH.List)

	return r
}
