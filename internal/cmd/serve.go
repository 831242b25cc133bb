package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"inventoryManagement/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the JSON API serving login, product CRUD, sale recording, the
chat assistant and CSV/PDF exports.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, d, products, users, err := openRepos()
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()
	log.Printf("Configuration loaded: %v", cfg)

	srv := server.New(cfg, products, users)
	log.Printf("HTTP server listening on %s", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
