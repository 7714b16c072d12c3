// blogctl is the operator tool for setup and account maintenance: seeding
// roles, categories and superadmin types, creating and activating
// superadmins, and granting permissions.
package main

import (
	"fmt"
	"os"

	"blog-backend/internal/config"
	"blog-backend/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openDB() (*gorm.DB, *config.Config, error) {
	cfg := config.LoadDB()
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("auto-migration failed: %w", err)
	}
	return db, cfg, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "blogctl",
		Short: "Administrative tool for the blog backend",
	}

	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newSuperAdminCommand())
	rootCmd.AddCommand(newPermsCommand())
	rootCmd.AddCommand(newUsersCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
