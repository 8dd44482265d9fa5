package cmd

import (
	"fmt"

	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export all the database data to a TOML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := "db_dump.toml" // Default filename.
		if len(args) == 1 {
			outputFile = args[0]
		}

		st := storage.NewStorage()
		defer st.Close()

		if err := st.ExportDBToTOML(outputFile); err != nil {
			return fmt.Errorf("error exporting database: %w", err)
		}

		fmt.Printf("✅ Database exported successfully to %s\n", outputFile)
		return nil
	},
}

var buildDBCmd = &cobra.Command{
	Use:   "build-db [dump-file]",
	Short: "Replace the database content with the given TOML dump file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()
		defer st.Close()

		if err := st.ImportDBFromTOML(args[0]); err != nil {
			return fmt.Errorf("Failed to build database: %w", err)
		}
		fmt.Println("✅ Database built successfully from TOML dump.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(buildDBCmd)
}
