package catalog

import (
	"fmt"

	"adcheck/internal/config"
	"adcheck/internal/port"
)

// New creates a ChecklistCatalog from config, selecting the backing by
// cfg.Source.
func New(cfg *config.CatalogConfig) (port.ChecklistCatalog, error) {
	switch cfg.Source {
	case "xlsx":
		return NewXLSXCatalog(cfg)
	case "http", "":
		return NewHTTPClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.Source)
	}
}
