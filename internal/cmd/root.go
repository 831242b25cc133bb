// Package cmd wires the cobra command tree for the inventory CLI.
package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"inventoryManagement/internal/config"
	"inventoryManagement/internal/db"
	"inventoryManagement/repository"
)

var rootCmd = &cobra.Command{
	Use:     "inventory",
	Version: "1.0.0",
	Short:   "Inventory management for Cores e Fragrâncias",
	Long: `Inventory management for a retail cosmetics and fragrance business.

Products, users and sales live in a local SQLite database. The tool can run
as an HTTP server, drive the stock assistant from the terminal, and produce
CSV snapshots and PDF stock reports.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openRepos loads the configuration, opens the database and builds the
// repositories. The caller must close the returned DB.
func openRepos() (*config.Config, *sql.DB, *repository.ProductRepository, *repository.UserRepository, error) {
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("create database dir: %w", err)
	}
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open db: %w", err)
	}
	products := repository.NewProductRepository(d, cfg.Storage.AssetsDir)
	users := repository.NewUserRepository(d)
	return cfg, d, products, users, nil
}
