package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Snakegate/ux-wcag-agent/internal/config"
	"github.com/Snakegate/ux-wcag-agent/internal/export"
	"github.com/Snakegate/ux-wcag-agent/internal/fetch"
	"github.com/Snakegate/ux-wcag-agent/internal/pipeline"
	"github.com/Snakegate/ux-wcag-agent/internal/server"
)

var (
	servePort       int
	serveConfigPath string
	serveNoBrowser  bool
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the audit web server",
	Long:  `Start an HTTP server exposing the single-page audit form and the REST endpoints for running audits and exporting findings.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "Fetch pages with plain HTTP instead of a headless browser (no screenshots)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd, serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if serveNoBrowser {
		cfg.DisableBrowser = true
	}
	if serveVerbose {
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

	exporters := buildExporters(cfg)
	if len(exporters) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no export targets configured; the export endpoint will reject all requests")
	}
	if notion, ok := exporters["notion"].(*export.NotionExporter); ok {
		if err := notion.Verify(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Notion export target not usable: %v\n", err)
		}
	}

	srv := server.New(server.Config{Port: cfg.Port, Verbose: cfg.Verbose}, runner, exporters)
	return srv.Start()
}

// buildConfig layers the optional config file over environment defaults.
func buildConfig(cmd *cobra.Command, path string) (config.Config, error) {
	defaults := config.FromEnv()
	defaults.Port = pickDefault(defaults.Port, config.DefaultPort)
	defaults.FetchTimeoutSec = config.DefaultFetchTimeoutSec
	defaults.SettleDelaySec = config.DefaultSettleDelaySec
	defaults.EvalTimeoutSec = config.DefaultEvalTimeoutSec

	cfg := config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if cmd.Flags().Changed("verbose") || cfg.Verbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", path)
		}
	}

	return cfg.MergeWithDefaults(defaults), nil
}

func pickDefault(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}

// buildExporters wires up the export targets that have credentials.
func buildExporters(cfg config.Config) map[string]export.Exporter {
	exporters := make(map[string]export.Exporter)
	if cfg.NotionToken != "" && cfg.NotionDatabaseID != "" {
		exporters["notion"] = export.NewNotionExporter(cfg.NotionToken, cfg.NotionDatabaseID)
	}
	if cfg.GoogleCredentials != "" && cfg.SpreadsheetID != "" {
		exporters["sheets"] = export.NewSheetsExporter(cfg.GoogleCredentials, cfg.SpreadsheetID)
	}
	return exporters
}
