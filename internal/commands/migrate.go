package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optitask/optitask/internal/config"
	"github.com/optitask/optitask/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		gdb, err := db.Open(db.Options{
			Path:         cfg.Database.Path,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		if err := db.Migrate(gdb); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		fmt.Println("migrations applied")
		return nil
	},
}
