package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChecklistItem is one regulatory/quality rule loaded from the external
// catalog. Immutable once loaded; check results reference it, never copy it.
type ChecklistItem struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	CheckItem  string   `json:"check_item"`
	Regulation string   `json:"regulation"`
	Severity   Severity `json:"severity"`
}

// Scene is a named subject/criteria pairing against which one image or
// document region is judged. Two shapes exist: the simple user-configured
// record (name/description/criteria) and the richer tabular record imported
// from the catalog spreadsheet. Kind discriminates; EvaluationContext
// projects both onto what the prompt builder needs.
type Scene struct {
	ID   string    `json:"id"`
	Kind SceneKind `json:"kind"`

	// Simple shape.
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Criteria    string `json:"criteria,omitempty"`

	// Tabular shape (spreadsheet columns A-I).
	SceneType   string         `json:"scene_type,omitempty"`
	SubScene    string         `json:"sub_scene,omitempty"`
	ProjectName string         `json:"project_name,omitempty"`
	Category    string         `json:"category,omitempty"`
	CheckItem   string         `json:"check_item,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	AutoCheck   AutoCheckLevel `json:"auto_check,omitempty"`
	ObjectTags  []string       `json:"object_tags,omitempty"`
	Notes       string         `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// EvaluationContext is the shape-independent projection of a Scene consumed
// by the prompt builder.
type EvaluationContext struct {
	Label    string
	Criteria string
}

// EvaluationContext reduces either scene shape to {label, criteria}.
func (s *Scene) EvaluationContext() EvaluationContext {
	if s.Kind == SceneKindTabular {
		label := s.SceneType
		if s.SubScene != "" {
			label = fmt.Sprintf("%s - %s", s.SceneType, s.SubScene)
		}
		return EvaluationContext{Label: label, Criteria: s.CheckItem}
	}
	return EvaluationContext{Label: s.Name, Criteria: s.Criteria}
}

// TypeDetection is the outcome of the ad-type detection call, held on the
// session until the operator confirms or overrides it.
type TypeDetection struct {
	DetectedType AdType  `json:"detected_type"`
	Confidence   float64 `json:"confidence"`
	Summary      string  `json:"summary"`
}

// CheckResult is the tri-state compliance outcome for one checklist item.
type CheckResult struct {
	Item     *ChecklistItem `json:"item"`
	Status   CheckStatus    `json:"status"`
	Detail   string         `json:"detail"`
	Location string         `json:"location,omitempty"`
}

// SceneCheckResult is the binary-appropriateness outcome for one scene.
// Synthetic marks results recorded by the batch runner in place of a failed
// call; those always carry IsAppropriate=false and Confidence=0.
type SceneCheckResult struct {
	Scene         *Scene   `json:"scene"`
	IsAppropriate bool     `json:"is_appropriate"`
	Confidence    float64  `json:"confidence"`
	Reason        string   `json:"reason"`
	Suggestions   []string `json:"suggestions,omitempty"`
	Synthetic     bool     `json:"synthetic,omitempty"`
}

// Message is one entry in the session's chat transcript.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// BatchProgress describes an in-flight batch run. Ephemeral: created when a
// batch starts, discarded when the session resets.
type BatchProgress struct {
	Total     int                `json:"total"`
	Completed int                `json:"completed"`
	Current   *Scene             `json:"current,omitempty"`
	Results   []SceneCheckResult `json:"results"`
	Done      bool               `json:"done"`
}

// BatchSummary aggregates a finished batch run.
type BatchSummary struct {
	Total          int `json:"total"`
	Appropriate    int `json:"appropriate"`
	NotAppropriate int `json:"not_appropriate"`
}

// Session is the unit of work for one uploaded document. Mutated only by
// stage-transition handlers; destroyed or reset as a whole.
type Session struct {
	ID          uuid.UUID          `json:"id"`
	Stage       Stage              `json:"stage"`
	Track       Track              `json:"track"`
	FileName    string             `json:"file_name"`
	FileBytes   []byte             `json:"-"`
	ContentType string             `json:"content_type"`
	FileType    FileType           `json:"file_type"`
	Detection   *TypeDetection     `json:"detection,omitempty"`
	AdType      AdType             `json:"ad_type,omitempty"`
	Checklist   []ChecklistItem    `json:"checklist,omitempty"`
	Results     []CheckResult      `json:"results,omitempty"`
	SceneResult []SceneCheckResult `json:"scene_results,omitempty"`
	Progress    *BatchProgress     `json:"progress,omitempty"`
	Messages    []Message          `json:"messages"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// HistoryEntry is a persisted record of one completed judgment run.
type HistoryEntry struct {
	ID          uuid.UUID `db:"id" json:"id"`
	SessionID   uuid.UUID `db:"session_id" json:"session_id"`
	Track       Track     `db:"track" json:"track"`
	FileName    string    `db:"file_name" json:"file_name"`
	AdType      AdType    `db:"ad_type" json:"ad_type,omitempty"`
	Total       int       `db:"total" json:"total"`
	Passed      int       `db:"passed" json:"passed"`
	Failed      int       `db:"failed" json:"failed"`
	NeedsReview int       `db:"needs_review" json:"needs_review"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}
