// Package main provides the entry point for the resume screener service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Resume Screener HTTP API Server",
	Long:  "Resume Screener ingests job application emails from a Gmail mailbox, extracts resume text, scores each candidate against the active job posting with an LLM, and stores the results via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
