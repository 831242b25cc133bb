package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"inventoryManagement/internal/report"
)

var exportCSVCmd = &cobra.Command{
	Use:   "export-csv [path]",
	Short: "Export the catalog to a CSV file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExportCSV,
}

var importCSVCmd = &cobra.Command{
	Use:   "import-csv <path>",
	Short: "Import products from a CSV file (additive only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportCSV,
}

func init() {
	rootCmd.AddCommand(exportCSVCmd)
	rootCmd.AddCommand(importCSVCmd)
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	cfg, d, products, _, err := openRepos()
	if err != nil {
		return err
	}
	defer d.Close()

	path := filepath.Join(cfg.Storage.DataDir, "produtos_export.csv")
	if len(args) == 1 {
		path = args[0]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	written, err := report.ExportCSV(cmd.Context(), products, path)
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	if !written {
		fmt.Println("No products to export; no file written.")
		return nil
	}
	fmt.Printf("Catalog exported to %s\n", path)
	return nil
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	_, d, products, _, err := openRepos()
	if err != nil {
		return err
	}
	defer d.Close()

	imported, skipped, err := report.ImportCSV(cmd.Context(), products, args[0])
	if err != nil {
		return fmt.Errorf("import csv: %w", err)
	}
	fmt.Printf("Imported %d products (%d rows skipped)\n", imported, skipped)
	return nil
}
