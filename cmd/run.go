// Package cmd — run command.
// This is the main command that assembles the pipeline:
// fetch → discover → download → store → extract → parse → render → report.
//
// It loads the environment settings and manufacturers config, opens
// the document store (degrading to local-only when unreachable), and
// hands everything to the orchestrator.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/catalogpipe/config"
	"github.com/gaurav-prasanna/catalogpipe/core/download"
	"github.com/gaurav-prasanna/catalogpipe/core/extract"
	"github.com/gaurav-prasanna/catalogpipe/core/fetch"
	"github.com/gaurav-prasanna/catalogpipe/core/output"
	"github.com/gaurav-prasanna/catalogpipe/core/parse"
	"github.com/gaurav-prasanna/catalogpipe/core/pipeline"
	"github.com/gaurav-prasanna/catalogpipe/core/render"
	"github.com/gaurav-prasanna/catalogpipe/core/report"
	"github.com/gaurav-prasanna/catalogpipe/core/store"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagConfigFile   string
	flagManufacturer string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the catalog extraction pipeline",
	Long: `Run processes every configured manufacturer: crawls its catalog pages
for PDF links, downloads and stores each PDF, extracts product records,
renders page images, and builds spreadsheets.

Set MONGO_URL / MONGO_DB to point at the document store and
PRODUCT_LIMIT to cap products per manufacturer (fast mode).

Examples:
  catalogpipe run
  catalogpipe run --manufacturer FURUKAWA
  PRODUCT_LIMIT=50 catalogpipe run`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&flagConfigFile, "config", config.DefaultManufacturersFile,
		"Path to the manufacturers config file")
	runCmd.Flags().StringVar(&flagManufacturer, "manufacturer", "",
		"Process only the manufacturer with this code")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	manufacturers, err := config.LoadManufacturers(flagConfigFile)
	if err != nil {
		return err
	}

	selected := manufacturers.Manufacturers
	if flagManufacturer != "" {
		selected = selected[:0:0]
		for _, m := range manufacturers.Manufacturers {
			if m.Code == flagManufacturer {
				selected = append(selected, m)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("no manufacturer with code %q in %s", flagManufacturer, flagConfigFile)
		}
	}

	layout, err := output.NewLayout(settings.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output layout: %w", err)
	}

	ctx := context.Background()

	docStore := store.Connect(ctx, settings.MongoURL, settings.MongoDB)
	defer docStore.Close(ctx)

	pipe := pipeline.New(pipeline.Deps{
		Fetcher:    fetch.New(),
		Downloader: download.New(layout, os.Stdout),
		Store:      docStore,
		Extractor:  extract.New(),
		Parser:     parse.New(),
		Renderer:   render.NewPageRenderer(layout),
		Reporter:   report.New(layout),
		Progress:   os.Stdout,
	})

	return pipe.Run(ctx, pipeline.RunContext{
		Manufacturers: selected,
		ProductLimit:  settings.ProductLimit,
	})
}
