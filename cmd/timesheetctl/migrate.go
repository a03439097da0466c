package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/Timesheet-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones SQL pendientes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, log, pool, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := postgres.NewMigrator(pool, log).Up(ctx)
		if err != nil {
			return err
		}
		log.Info().Int("applied", applied).Msg("migraciones al día")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
