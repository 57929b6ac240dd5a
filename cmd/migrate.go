package main

import (
	"aquabot_telemetry/internal/repository/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the readings table and indexes if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := db.InitDB(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer conn.Close()
		log.Infow("schema_applied", "path", cfg.DB.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
