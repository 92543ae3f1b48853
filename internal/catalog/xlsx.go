package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"adcheck/internal/config"
	"adcheck/internal/domain"
)

// XLSXCatalog reads checklist and scene records from a local workbook, the
// same layout the hosted spreadsheet uses. Rows are loaded once at
// construction; the result set is referentially stable for the lifetime of
// the process, matching the idempotent-read contract.
//
// The "checklist" sheet carries: ad type, id, category, check item,
// regulation, severity. The scene sheet carries columns A-I: scene type,
// sub-scene, project name, category, check item, reason, AI applicability
// (○/△/×), tags, notes.
type XLSXCatalog struct {
	checklists map[domain.AdType][]domain.ChecklistItem
	scenes     []domain.Scene
	adTypes    []domain.AdType
}

const checklistSheet = "checklist"

// NewXLSXCatalog loads the workbook at cfg.XLSXPath.
func NewXLSXCatalog(cfg *config.CatalogConfig) (*XLSXCatalog, error) {
	f, err := excelize.OpenFile(cfg.XLSXPath)
	if err != nil {
		return nil, fmt.Errorf("opening catalog workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	cat := &XLSXCatalog{checklists: make(map[domain.AdType][]domain.ChecklistItem)}

	if err := cat.loadChecklists(f); err != nil {
		return nil, err
	}
	if err := cat.loadScenes(f, cfg.SheetName); err != nil {
		return nil, err
	}
	return cat, nil
}

func (c *XLSXCatalog) loadChecklists(f *excelize.File) error {
	rows, err := f.GetRows(checklistSheet)
	if err != nil {
		return fmt.Errorf("reading %s sheet: %w", checklistSheet, err)
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 5 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		adType := domain.AdType(strings.TrimSpace(row[0]))
		item := domain.ChecklistItem{
			ID:         strings.TrimSpace(cell(row, 1)),
			Category:   strings.TrimSpace(cell(row, 2)),
			CheckItem:  strings.TrimSpace(cell(row, 3)),
			Regulation: strings.TrimSpace(cell(row, 4)),
			Severity:   parseSeverity(cell(row, 5)),
		}
		if item.ID == "" {
			item.ID = strconv.Itoa(i)
		}
		if _, known := c.checklists[adType]; !known {
			c.adTypes = append(c.adTypes, adType)
		}
		c.checklists[adType] = append(c.checklists[adType], item)
	}
	return nil
}

func (c *XLSXCatalog) loadScenes(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading %s sheet: %w", sheet, err)
	}

	now := time.Now().UTC()
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 5 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		scene := domain.Scene{
			ID:          strconv.Itoa(i),
			Kind:        domain.SceneKindTabular,
			SceneType:   strings.TrimSpace(cell(row, 0)),
			SubScene:    strings.TrimSpace(cell(row, 1)),
			ProjectName: strings.TrimSpace(cell(row, 2)),
			Category:    strings.TrimSpace(cell(row, 3)),
			CheckItem:   strings.TrimSpace(cell(row, 4)),
			Reason:      strings.TrimSpace(cell(row, 5)),
			AutoCheck:   parseAutoCheck(cell(row, 6)),
			ObjectTags:  splitTags(cell(row, 7)),
			Notes:       strings.TrimSpace(cell(row, 8)),
			CreatedAt:   now,
		}
		c.scenes = append(c.scenes, scene)
	}
	return nil
}

// ListAdTypes returns the ad types present in the checklist sheet, in sheet order.
func (c *XLSXCatalog) ListAdTypes(ctx context.Context) ([]domain.AdType, error) {
	return c.adTypes, nil
}

// ListChecklist returns the checklist rows for one ad type.
func (c *XLSXCatalog) ListChecklist(ctx context.Context, adType domain.AdType) ([]domain.ChecklistItem, error) {
	return c.checklists[adType], nil
}

// ListScenes returns every scene row. The workbook's scene sheet is not
// partitioned by ad type, so the argument is ignored.
func (c *XLSXCatalog) ListScenes(ctx context.Context, adType domain.AdType) ([]domain.Scene, error) {
	return c.scenes, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func parseSeverity(s string) domain.Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "高":
		return domain.SeverityHigh
	case "low", "低":
		return domain.SeverityLow
	default:
		return domain.SeverityMedium
	}
}

func parseAutoCheck(s string) domain.AutoCheckLevel {
	switch strings.TrimSpace(s) {
	case "○":
		return domain.AutoCheckFull
	case "△":
		return domain.AutoCheckPartial
	case "×":
		return domain.AutoCheckManual
	default:
		return domain.AutoCheckPartial
	}
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '、' }) {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
