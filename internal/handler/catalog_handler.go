package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"adcheck/internal/domain"
	"adcheck/internal/port"
)

// CatalogHandler exposes the checklist catalog read-only.
type CatalogHandler struct {
	catalog port.ChecklistCatalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog port.ChecklistCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Types handles GET /api/v1/catalog/types
func (h *CatalogHandler) Types(c *gin.Context) {
	types, err := h.catalog.ListAdTypes(c.Request.Context())
	if err != nil {
		log.Printf("CatalogHandler.Types: %v", err)
		HandleError(c, err)
		return
	}
	RespondOK(c, types)
}

// Checklist handles GET /api/v1/catalog/checklist?type=<ad type>
func (h *CatalogHandler) Checklist(c *gin.Context) {
	adType := domain.AdType(c.Query("type"))
	if adType == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_FIELD", "type query parameter is required")
		return
	}
	if !adType.Valid() {
		RespondError(c, http.StatusBadRequest, "UNKNOWN_AD_TYPE", "unknown advertisement type")
		return
	}
	items, err := h.catalog.ListChecklist(c.Request.Context(), adType)
	if err != nil {
		log.Printf("CatalogHandler.Checklist: type %s: %v", adType, err)
		HandleError(c, err)
		return
	}
	RespondOK(c, items)
}
