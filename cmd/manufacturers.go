// Package cmd — manufacturers command.
// Lists and edits the manufacturers config file.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/catalogpipe/config"
	"github.com/spf13/cobra"
)

var (
	flagMfrName     string
	flagMfrCode     string
	flagMfrPages    []string
	flagMfrPatterns []string
)

var manufacturersCmd = &cobra.Command{
	Use:   "manufacturers",
	Short: "Manage the manufacturers config",
}

var manufacturersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured manufacturers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := config.LoadManufacturers(flagConfigFile)
		if err != nil {
			return err
		}
		for _, mfr := range m.Manufacturers {
			fmt.Fprintf(os.Stdout, "%s  %s  (%d pages, %d patterns)\n",
				mfr.Code, mfr.Name, len(mfr.CatalogPages), len(mfr.PDFPatterns))
		}
		return nil
	},
}

var manufacturersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a manufacturer to the config",
	Long: `Add appends a manufacturer and saves the config file.

Example:
  catalogpipe manufacturers add --name "Acme Cables" --code ACME \
    --page https://acme.example/catalogs --pattern '\.pdf$'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagMfrName == "" || flagMfrCode == "" || len(flagMfrPages) == 0 {
			return fmt.Errorf("--name, --code and at least one --page are required")
		}

		m, err := config.LoadManufacturers(flagConfigFile)
		if err != nil {
			return err
		}
		m.Add(flagMfrName, flagMfrCode, flagMfrPages, flagMfrPatterns)
		if err := m.Save(flagConfigFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Manufacturer %q added to %s\n", flagMfrName, flagConfigFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manufacturersCmd)
	manufacturersCmd.AddCommand(manufacturersListCmd)
	manufacturersCmd.AddCommand(manufacturersAddCmd)

	manufacturersCmd.PersistentFlags().StringVar(&flagConfigFile, "config",
		config.DefaultManufacturersFile, "Path to the manufacturers config file")

	manufacturersAddCmd.Flags().StringVar(&flagMfrName, "name", "", "Manufacturer name")
	manufacturersAddCmd.Flags().StringVar(&flagMfrCode, "code", "", "Manufacturer code (storage partition key)")
	manufacturersAddCmd.Flags().StringArrayVar(&flagMfrPages, "page", nil, "Catalog page URL (repeatable)")
	manufacturersAddCmd.Flags().StringArrayVar(&flagMfrPatterns, "pattern", nil, "PDF href pattern (repeatable, default \\.pdf$)")
}
