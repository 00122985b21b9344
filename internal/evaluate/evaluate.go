// Package evaluate asks a hosted LLM to judge a page snapshot against the
// fixed usability rubric (Nielsen's 10 heuristics plus WCAG 2.2
// checkpoints) and maps the response onto typed heuristic findings.
package evaluate

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Snakegate/ux-wcag-agent/internal/llm"
	"github.com/Snakegate/ux-wcag-agent/internal/prompts"
	"github.com/Snakegate/ux-wcag-agent/internal/schemas"
	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

//go:embed heuristic_findings.schema.json
var findingsSchema string

// maxPromptHTML bounds how much page markup goes into the prompt.
const maxPromptHTML = 8000

// DefaultTimeout bounds the single blocking model call.
const DefaultTimeout = 120 * time.Second

// Options configures the evaluator.
type Options struct {
	Tier    llm.ModelTier
	Timeout time.Duration
}

// DefaultOptions returns sensible defaults for evaluation.
func DefaultOptions() *Options {
	return &Options{
		Tier:    llm.TierStandard,
		Timeout: DefaultTimeout,
	}
}

// Evaluator runs the rubric evaluation against an LLM client.
type Evaluator struct {
	client llm.Client
	opts   Options
}

// New creates an Evaluator on top of an existing LLM client.
func New(client llm.Client, opts *Options) *Evaluator {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Evaluator{client: client, opts: *opts}
}

// Close releases the underlying LLM client.
func (e *Evaluator) Close() error {
	return e.client.Close()
}

// Evaluate sends the snapshot and the rubric to the model in a single
// blocking request and returns one finding per rubric item, ordered by the
// rubric's fixed enumeration. The response is validated against a JSON
// Schema before being accepted; anything malformed fails rather than being
// silently coerced.
func (e *Evaluator) Evaluate(ctx context.Context, snap *types.PageSnapshot) ([]types.HeuristicFinding, error) {
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	prompt := buildPrompt(snap)

	raw, err := e.client.GenerateJSON(ctx, prompt, snap.Screenshot, e.opts.Tier)
	if err != nil {
		return nil, &Error{Message: "model call failed", Cause: err}
	}

	return ParseFindings(raw)
}

// buildPrompt renders the audit prompt from the embedded template.
func buildPrompt(snap *types.PageSnapshot) string {
	html := snap.HTML
	if len(html) > maxPromptHTML {
		html = html[:maxPromptHTML]
	}
	template := prompts.MustGet("evaluate.json", "heuristic-audit")
	return prompts.Format(template, map[string]string{
		"URL":    snap.URL,
		"Rubric": rubricText(),
		"HTML":   html,
	})
}

// ParseFindings validates a raw model response against the findings schema
// and maps it onto typed findings in rubric order. Unknown heuristic IDs
// are rejected, not dropped.
func ParseFindings(raw string) ([]types.HeuristicFinding, error) {
	if err := schemas.ValidateJSONString(findingsSchema, raw); err != nil {
		return nil, &Error{Message: "response does not match findings schema", Cause: err}
	}

	var findings []types.HeuristicFinding
	if err := json.Unmarshal([]byte(raw), &findings); err != nil {
		return nil, &Error{Message: "failed to parse response JSON", Cause: err}
	}

	index := rubricIndex()
	for _, f := range findings {
		if _, ok := index[f.HeuristicID]; !ok {
			return nil, &Error{Message: fmt.Sprintf("unknown heuristic id %q in response", f.HeuristicID)}
		}
	}

	// Order follows the rubric's fixed enumeration regardless of how the
	// model ordered its output.
	sort.SliceStable(findings, func(i, j int) bool {
		return index[findings[i].HeuristicID] < index[findings[j].HeuristicID]
	})

	return findings, nil
}
