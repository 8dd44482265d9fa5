package cmd

import (
	"fmt"

	"github.com/misterclayt0n/cooperpro/internal/config"
	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/spf13/cobra"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the local database file local.db",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storage.Open(config.LocalConnectionString, "")
		if err != nil {
			return fmt.Errorf("Failed to initialize database: %w", err)
		}
		defer st.Close()

		fmt.Println("✅ Database initialized successfully as local.db")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
