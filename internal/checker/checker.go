package checker

import (
	"context"
	"encoding/json"
	"fmt"

	"adcheck/internal/domain"
	"adcheck/internal/port"
)

// File is the portable encoding of an uploaded document: read-only bytes
// plus MIME type, derived once and reused across sequential calls.
type File struct {
	Bytes       []byte
	ContentType string
	Type        domain.FileType
}

// Checker performs one unit of judgment per call: build the prompt, invoke
// the generator with the attached file, extract and validate the JSON
// payload, and bind the result to the originating item. Atomic from the
// caller's perspective: a full result or a typed error, never a partial.
type Checker struct {
	gen port.Generator
}

// NewChecker creates a Checker on top of a generator.
func NewChecker(gen port.Generator) *Checker {
	return &Checker{gen: gen}
}

// DetectAdType classifies the whole document into one of the known ad types.
func (c *Checker) DetectAdType(ctx context.Context, file File) (*domain.TypeDetection, error) {
	text, err := c.gen.Generate(ctx, port.GenerateInput{
		Prompt:      BuildTypeDetectionPrompt(),
		FileBytes:   file.Bytes,
		ContentType: file.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: detecting ad type: %v", domain.ErrUpstreamFailure, err)
	}

	raw, err := Extract(text, ShapeObject)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableResponse, err)
	}

	var parsed struct {
		DetectedType string   `json:"detectedType"`
		Confidence   *float64 `json:"confidence"`
		Summary      string   `json:"summary"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: type detection payload: %v", domain.ErrSchemaMismatch, err)
	}

	adType := domain.AdType(parsed.DetectedType)
	if !adType.Valid() {
		return nil, fmt.Errorf("%w: detectedType %q is not a known ad type", domain.ErrSchemaMismatch, parsed.DetectedType)
	}
	if err := checkConfidence(parsed.Confidence); err != nil {
		return nil, err
	}

	return &domain.TypeDetection{
		DetectedType: adType,
		Confidence:   *parsed.Confidence,
		Summary:      parsed.Summary,
	}, nil
}

// ReviewChecklist reviews the whole document against every checklist item in
// a single call. The response array references items by zero-based index;
// each element is bound back to its item by that index. Out-of-range and
// duplicate indices are schema violations, never repaired.
func (c *Checker) ReviewChecklist(ctx context.Context, file File, items []domain.ChecklistItem, adType domain.AdType) ([]domain.CheckResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyChecklist
	}

	text, err := c.gen.Generate(ctx, port.GenerateInput{
		Prompt:      BuildChecklistReviewPrompt(items, adType),
		FileBytes:   file.Bytes,
		ContentType: file.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: reviewing checklist: %v", domain.ErrUpstreamFailure, err)
	}

	raw, err := Extract(text, ShapeArray)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableResponse, err)
	}

	var parsed []struct {
		ChecklistIndex *int   `json:"checklistIndex"`
		Status         string `json:"status"`
		Detail         string `json:"detail"`
		Location       string `json:"location"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: checklist review payload: %v", domain.ErrSchemaMismatch, err)
	}

	seen := make(map[int]bool, len(parsed))
	results := make([]domain.CheckResult, 0, len(parsed))
	for _, r := range parsed {
		if r.ChecklistIndex == nil {
			return nil, fmt.Errorf("%w: result element missing checklistIndex", domain.ErrSchemaMismatch)
		}
		idx := *r.ChecklistIndex
		if idx < 0 || idx >= len(items) {
			return nil, fmt.Errorf("%w: checklistIndex %d out of range [0,%d)", domain.ErrSchemaMismatch, idx, len(items))
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: duplicate checklistIndex %d", domain.ErrSchemaMismatch, idx)
		}
		seen[idx] = true

		status := domain.CheckStatus(r.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status %q is not one of OK/NG/要確認", domain.ErrSchemaMismatch, r.Status)
		}

		results = append(results, domain.CheckResult{
			Item:     &items[idx],
			Status:   status,
			Detail:   r.Detail,
			Location: r.Location,
		})
	}

	return results, nil
}

// CheckScene judges the attached file against one scene's criteria.
func (c *Checker) CheckScene(ctx context.Context, file File, scene *domain.Scene) (*domain.SceneCheckResult, error) {
	text, err := c.gen.Generate(ctx, port.GenerateInput{
		Prompt:      BuildSceneCheckPrompt(scene, file.Type),
		FileBytes:   file.Bytes,
		ContentType: file.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: checking scene %q: %v", domain.ErrUpstreamFailure, scene.EvaluationContext().Label, err)
	}

	raw, err := Extract(text, ShapeObject)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableResponse, err)
	}

	var parsed struct {
		IsAppropriate *bool    `json:"isAppropriate"`
		Confidence    *float64 `json:"confidence"`
		Reason        string   `json:"reason"`
		Suggestions   []string `json:"suggestions"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: scene check payload: %v", domain.ErrSchemaMismatch, err)
	}

	if parsed.IsAppropriate == nil {
		return nil, fmt.Errorf("%w: isAppropriate is missing", domain.ErrSchemaMismatch)
	}
	if err := checkConfidence(parsed.Confidence); err != nil {
		return nil, err
	}

	return &domain.SceneCheckResult{
		Scene:         scene,
		IsAppropriate: *parsed.IsAppropriate,
		Confidence:    *parsed.Confidence,
		Reason:        parsed.Reason,
		Suggestions:   parsed.Suggestions,
	}, nil
}

// Answer generates a conversational reply grounded in the accumulated
// judgment results. Raw text is returned unmodified; no extraction.
func (c *Checker) Answer(ctx context.Context, file File, results []domain.CheckResult, sceneResults []domain.SceneCheckResult, question string) (string, error) {
	lines := summarize(results, sceneResults)

	text, err := c.gen.Generate(ctx, port.GenerateInput{
		Prompt:      BuildChatPrompt(lines, question),
		FileBytes:   file.Bytes,
		ContentType: file.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: answering question: %v", domain.ErrUpstreamFailure, err)
	}
	return text, nil
}

// summarize flattens prior results to one line each for the chat prompt.
func summarize(results []domain.CheckResult, sceneResults []domain.SceneCheckResult) []string {
	lines := make([]string, 0, len(results)+len(sceneResults))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", r.Item.CheckItem, r.Status, r.Detail))
	}
	for _, r := range sceneResults {
		verdict := "適切"
		if !r.IsAppropriate {
			verdict = "要改善"
		}
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", r.Scene.EvaluationContext().Label, verdict, r.Reason))
	}
	return lines
}

// checkConfidence enforces the [0,1] bound strictly; out-of-range values are
// rejected, never clamped.
func checkConfidence(v *float64) error {
	if v == nil {
		return fmt.Errorf("%w: confidence is missing", domain.ErrSchemaMismatch)
	}
	if *v < 0.0 || *v > 1.0 {
		return fmt.Errorf("%w: confidence %v outside [0.0, 1.0]", domain.ErrSchemaMismatch, *v)
	}
	return nil
}
