package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/backstage/services/campaign/internal/database"
	"example.com/backstage/services/campaign/internal/metrics"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbs, err := database.Connect(cfg.DB, metrics.Default())
	if err != nil {
		return err
	}
	defer dbs.Close()

	if err := database.Migrate(dbs.Write); err != nil {
		return err
	}

	log.Info().Msg("Database schema is up to date")
	return nil
}
