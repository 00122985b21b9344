// Package main provides the entry point for the UX/WCAG audit agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "audit_agent",
	Short: "UX/WCAG audit agent",
	Long:  "Audit agent fetches a web page with a headless browser, runs static accessibility checks and an LLM-backed usability heuristic evaluation, and exports the findings to Notion or Google Sheets.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
