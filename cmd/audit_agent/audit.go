package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Snakegate/ux-wcag-agent/internal/annotate"
	"github.com/Snakegate/ux-wcag-agent/internal/config"
	"github.com/Snakegate/ux-wcag-agent/internal/evaluate"
	"github.com/Snakegate/ux-wcag-agent/internal/fetch"
	"github.com/Snakegate/ux-wcag-agent/internal/llm"
	"github.com/Snakegate/ux-wcag-agent/internal/observability"
	"github.com/Snakegate/ux-wcag-agent/internal/pipeline"
	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

var (
	auditConfigPath string
	auditExport     string
	auditOutput     string
	auditJSON       bool
	auditNoBrowser  bool
	auditVerbose    bool
)

var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Run one audit from the command line",
	Long: `Run the full audit pipeline for a single URL: fetch the page with a
headless browser, run the static accessibility checks, evaluate the page
against the usability rubric, and print the findings.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&auditConfigPath, "config", "", "Path to config.json file")
	auditCmd.Flags().StringVar(&auditExport, "export", "", "Export findings after the run (notion or sheets)")
	auditCmd.Flags().StringVarP(&auditOutput, "output", "o", "", "Write the annotated screenshot to this PNG file")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Print the full report as JSON instead of formatted output")
	auditCmd.Flags().BoolVar(&auditNoBrowser, "no-browser", false, "Fetch pages with plain HTTP instead of a headless browser (no screenshots)")
	auditCmd.Flags().BoolVarP(&auditVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, auditConfigPath)
	if err != nil {
		return err
	}
	if auditNoBrowser {
		cfg.DisableBrowser = true
	}
	if auditVerbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()

	evaluator, err := newEvaluator(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = evaluator.Close() }()

	fetcher := fetch.NewClient(!cfg.DisableBrowser, cfg.FetchOptions())
	runner := pipeline.NewRunner(fetcher, evaluator)
	runner.Verbose = cfg.Verbose

	req := types.AuditRequest{URL: args[0]}
	report, runErr := runner.Run(ctx, req, progressPrinter(cfg.Verbose))

	if auditJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printer := observability.NewPrinter(os.Stdout)
		if report.Snapshot != nil {
			printer.PrintSnapshot(report.Snapshot)
		}
		printer.PrintAccessibilityFindings(report.Accessibility)
		printer.PrintHeuristicFindings(report.Heuristics)
	}

	if runErr != nil {
		return runErr
	}

	if auditOutput != "" {
		if err := writeAnnotatedScreenshot(report, auditOutput); err != nil {
			return err
		}
		fmt.Printf("Annotated screenshot written to %s\n", auditOutput)
	}

	if auditExport != "" {
		exporter, ok := buildExporters(cfg)[auditExport]
		if !ok {
			return fmt.Errorf("export target %q is not configured", auditExport)
		}
		if err := exporter.Export(ctx, report); err != nil {
			return err
		}
		fmt.Printf("Findings exported to %s\n", auditExport)
	}

	return nil
}

// writeAnnotatedScreenshot highlights findings on the screenshot and saves
// the result as PNG.
func writeAnnotatedScreenshot(report *types.AuditReport, path string) error {
	if report.Snapshot == nil || len(report.Snapshot.Screenshot) == 0 {
		return fmt.Errorf("no screenshot captured (browser fetch disabled?)")
	}
	annotated, err := annotate.Screenshot(report.Snapshot.Screenshot, report.Accessibility)
	if err != nil {
		return fmt.Errorf("failed to annotate screenshot: %w", err)
	}
	return os.WriteFile(path, annotated, 0o644)
}

// newEvaluator builds the heuristic evaluator, honoring a model override.
func newEvaluator(ctx context.Context, cfg config.Config) (*evaluate.Evaluator, error) {
	opts := evaluate.DefaultOptions()
	opts.Timeout = cfg.EvalTimeout()

	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
	}

	client, err := llm.NewClient(ctx, llmConfig, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return evaluate.New(client, opts), nil
}

// progressPrinter reports stage transitions on stderr during CLI runs.
func progressPrinter(verbose bool) pipeline.ProgressCallback {
	return func(ev pipeline.ProgressEvent) {
		switch ev.Status {
		case "started":
			fmt.Fprintf(os.Stderr, "==> %s: %s\n", ev.Stage, ev.Message)
		case "failed":
			fmt.Fprintf(os.Stderr, "==> %s failed: %s\n", ev.Stage, ev.Message)
		default:
			if verbose {
				fmt.Fprintf(os.Stderr, "==> %s: %s\n", ev.Stage, ev.Message)
			}
		}
	}
}
