package main

import (
	"github.com/cyphera/safe-gateway/internal/config"
	"github.com/cyphera/safe-gateway/internal/db"
	"github.com/cyphera/safe-gateway/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL, err := config.LoadDatabaseURL(cmd.Context(), secretProvider(cmd.Context()))
		if err != nil {
			return err
		}
		if err := db.MigrateUp(databaseURL); err != nil {
			return err
		}
		logger.Info("Migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL, err := config.LoadDatabaseURL(cmd.Context(), secretProvider(cmd.Context()))
		if err != nil {
			return err
		}
		if err := db.MigrateDown(databaseURL); err != nil {
			return err
		}
		logger.Info("Migrations rolled back")
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
