// Package pipeline composes the audit stages into one sequential run:
// fetch, analyze, evaluate. Export is a separate explicit action and is not
// part of the run.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Snakegate/ux-wcag-agent/internal/analyze"
	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

// Stage names reported in progress events.
const (
	StageFetch    = "fetch"
	StageAnalyze  = "analyze"
	StageEvaluate = "evaluate"
)

// ProgressEvent represents a progress update during an audit run.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Status  string `json:"status"` // "started", "completed", "failed"
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called as stages start and finish.
type ProgressCallback func(event ProgressEvent)

// Fetcher captures a page snapshot for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*types.PageSnapshot, error)
}

// Evaluator produces heuristic findings for a snapshot.
type Evaluator interface {
	Evaluate(ctx context.Context, snap *types.PageSnapshot) ([]types.HeuristicFinding, error)
}

// AnalyzeFunc runs the static accessibility checks. It exists as a field so
// tests can observe or replace the analyzer; the default is analyze.Run.
type AnalyzeFunc func(snap *types.PageSnapshot) []types.AccessibilityFinding

// Runner drives one audit at a time through the stages in order. Stages
// never run concurrently within a run; a stage failure aborts the remaining
// stages but keeps the results obtained so far in the report.
type Runner struct {
	Fetcher   Fetcher
	Analyzer  AnalyzeFunc
	Evaluator Evaluator
	Verbose   bool
}

// NewRunner creates a Runner with the default analyzer.
func NewRunner(fetcher Fetcher, evaluator Evaluator) *Runner {
	return &Runner{
		Fetcher:   fetcher,
		Analyzer:  analyze.Run,
		Evaluator: evaluator,
	}
}

// Run executes the pipeline for one request, reporting stage transitions to
// onProgress (which may be nil). On failure it returns the partially filled
// report together with the stage error, so callers can still display
// whatever completed before the failure.
func (r *Runner) Run(ctx context.Context, req types.AuditRequest, onProgress ProgressCallback) (*types.AuditReport, error) {
	report := &types.AuditReport{
		ID:            uuid.New(),
		Request:       req,
		Accessibility: []types.AccessibilityFinding{},
		Heuristics:    []types.HeuristicFinding{},
		CreatedAt:     time.Now().UTC(),
	}

	// Stage 1: fetch
	emit(onProgress, StageFetch, "started", "Fetching "+req.URL, nil)
	snap, err := r.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		emit(onProgress, StageFetch, "failed", err.Error(), nil)
		return report, err
	}
	report.Snapshot = snap
	if r.Verbose {
		log.Printf("[pipeline] fetched %s: status=%d html=%d bytes", req.URL, snap.StatusCode, len(snap.HTML))
	}
	emit(onProgress, StageFetch, "completed", "Page captured", map[string]any{
		"status_code":    snap.StatusCode,
		"html_bytes":     len(snap.HTML),
		"has_screenshot": len(snap.Screenshot) > 0,
	})

	// Stage 2: analyze (pure, never fails)
	emit(onProgress, StageAnalyze, "started", "Running accessibility checks", nil)
	analyzer := r.Analyzer
	if analyzer == nil {
		analyzer = analyze.Run
	}
	report.Accessibility = analyzer(snap)
	if r.Verbose {
		log.Printf("[pipeline] static analysis: %d findings", len(report.Accessibility))
	}
	emit(onProgress, StageAnalyze, "completed", "Accessibility checks finished", report.Accessibility)

	// Stage 3: evaluate
	emit(onProgress, StageEvaluate, "started", "Evaluating usability heuristics", nil)
	heuristics, err := r.Evaluator.Evaluate(ctx, snap)
	if err != nil {
		// Accessibility findings stay in the report.
		emit(onProgress, StageEvaluate, "failed", err.Error(), nil)
		return report, err
	}
	report.Heuristics = heuristics
	if r.Verbose {
		log.Printf("[pipeline] heuristic evaluation: %d findings", len(report.Heuristics))
	}
	emit(onProgress, StageEvaluate, "completed", "Heuristic evaluation finished", report.Heuristics)

	return report, nil
}

// emit calls the progress callback if configured.
func emit(cb ProgressCallback, stage, status, message string, content any) {
	if cb != nil {
		cb(ProgressEvent{
			Stage:   stage,
			Status:  status,
			Message: message,
			Content: content,
		})
	}
}
