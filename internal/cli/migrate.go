package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildtall-systems/stockroom/internal/config"
	"github.com/buildtall-systems/stockroom/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		database, err := db.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() { _ = database.Close() }()

		if err := database.Migrate(); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		fmt.Printf("migrations applied to %s\n", cfg.Database.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
