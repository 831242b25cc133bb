package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"inventoryManagement/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [path]",
	Short: "Generate the PDF stock report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, d, products, _, err := openRepos()
	if err != nil {
		return err
	}
	defer d.Close()

	path := filepath.Join(cfg.Storage.DataDir, "relatorio_estoque.pdf")
	if len(args) == 1 {
		path = args[0]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	written, err := report.WriteStockPDF(cmd.Context(), products, path)
	if err != nil {
		return fmt.Errorf("stock report: %w", err)
	}
	if !written {
		fmt.Println("No products to report; no file written.")
		return nil
	}
	fmt.Printf("Stock report written to %s\n", path)
	return nil
}
