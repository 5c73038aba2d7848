package cmd

import (
	"coursebuilder/config"
	"coursebuilder/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.ConnectDb(config.LoadConfig())
		if err != nil {
			return err
		}
		return database.RunMigrations(db)
	},
}
