package port

import (
	"context"

	"adcheck/internal/domain"
)

// ChecklistCatalog abstracts the spreadsheet-backed checklist/scene catalog.
// Reads are idempotent for a given catalog version.
type ChecklistCatalog interface {
	// ListAdTypes returns the document-type categories the catalog knows.
	ListAdTypes(ctx context.Context) ([]domain.AdType, error)
	// ListChecklist returns the checklist records for one ad type.
	ListChecklist(ctx context.Context, adType domain.AdType) ([]domain.ChecklistItem, error)
	// ListScenes returns the tabular scene records for one ad type.
	ListScenes(ctx context.Context, adType domain.AdType) ([]domain.Scene, error)
}
