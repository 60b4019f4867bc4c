// Package cmd implements the CLI commands for catalogpipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalogpipe",
	Short: "catalogpipe — extract structured product data from vendor PDF catalogs",
	Long: `catalogpipe crawls manufacturer catalog pages for PDF links, downloads
and stores each catalog, extracts text and tables, parses product
records, renders page images, and builds product spreadsheets.

Usage:
  catalogpipe run [flags]
  catalogpipe manufacturers list|add`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
