// Package handlers wires the CLI commands to the digest pipeline.
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yfetch/internal/config"
)

var cfgFile string

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "yfetch",
		Short: "Pull posts from your social sources and read AI digests",
		Long: `yfetch - Personal Content Digest

Pulls posts from Reddit and Twitter, summarizes them with Perplexity,
and groups the summaries into topical digests.

Core workflows:
  • Fetch: pull recent posts from your sources into the local store
  • Digest: generate AI summaries for fetched posts, grouped by category
  • Show: read the deduplicated digest, optionally in a tabbed TUI

Examples:
  # Pull recent posts from two subreddits
  yfetch fetch reddit programming wallstreetbets

  # Summarize everything fetched so far
  yfetch digest

  # Browse the digest by category
  yfetch show --tui

  # Run the CORS edge proxy in front of the Perplexity API
  yfetch serve`,
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .yfetch.yaml)")

	rootCmd.AddCommand(NewFetchCmd())
	rootCmd.AddCommand(NewDigestCmd())
	rootCmd.AddCommand(NewShowCmd())
	rootCmd.AddCommand(NewServeCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads in the config file and environment variables
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		// Don't exit - allow running with just environment variables
	}
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
