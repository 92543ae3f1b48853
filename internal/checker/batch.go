package checker

import (
	"context"
	"log"

	"adcheck/internal/domain"
)

// ProgressFunc receives a snapshot after every processed item.
type ProgressFunc func(progress domain.BatchProgress)

// BatchRunner executes scene checks strictly sequentially over one uploaded
// file. Sequential on purpose: it bounds concurrent load on the upstream
// collaborator and keeps progress reporting deterministic. A runner is not
// restartable; construct a new one to retry.
type BatchRunner struct {
	checker *Checker
}

// NewBatchRunner creates a BatchRunner on top of a Checker.
func NewBatchRunner(c *Checker) *BatchRunner {
	return &BatchRunner{checker: c}
}

// Run processes every scene in order. A single item's failure does not abort
// the batch: the failed unit is recorded as a synthetic negative result and
// the runner proceeds, so one malformed response cannot void judgments
// already obtained. Cancelling ctx stops the runner between items; the
// results accumulated so far are returned.
func (r *BatchRunner) Run(ctx context.Context, file File, scenes []domain.Scene, onProgress ProgressFunc) ([]domain.SceneCheckResult, domain.BatchSummary) {
	results := make([]domain.SceneCheckResult, 0, len(scenes))

	report := func(current *domain.Scene) {
		if onProgress == nil {
			return
		}
		snapshot := make([]domain.SceneCheckResult, len(results))
		copy(snapshot, results)
		onProgress(domain.BatchProgress{
			Total:     len(scenes),
			Completed: len(results),
			Current:   current,
			Results:   snapshot,
			Done:      len(results) == len(scenes),
		})
	}

	for i := range scenes {
		if ctx.Err() != nil {
			log.Printf("checker.BatchRunner: canceled after %d/%d items", len(results), len(scenes))
			break
		}

		scene := &scenes[i]
		report(scene)

		result, err := r.checker.CheckScene(ctx, file, scene)
		if err != nil {
			log.Printf("checker.BatchRunner: item %d (%s) failed: %v", i, scene.EvaluationContext().Label, err)
			results = append(results, syntheticFailure(scene))
		} else {
			results = append(results, *result)
		}
		report(nil)
	}

	summary := domain.BatchSummary{Total: len(results)}
	for _, res := range results {
		if res.IsAppropriate {
			summary.Appropriate++
		} else {
			summary.NotAppropriate++
		}
	}
	return results, summary
}

// syntheticFailure records a failed unit as a negative judgment so the batch
// can keep going.
func syntheticFailure(scene *domain.Scene) domain.SceneCheckResult {
	return domain.SceneCheckResult{
		Scene:         scene,
		IsAppropriate: false,
		Confidence:    0,
		Reason:        "判定処理に失敗したため、自動的に要改善として記録されました。",
		Synthetic:     true,
	}
}
