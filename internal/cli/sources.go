package cli

import (
	"github.com/spf13/cobra"

	"contextwatch/internal/app"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the sources the API key is entitled for",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAPIKey(); err != nil {
			return err
		}

		application := app.New(cfg, logger)
		defer func() { _ = application.Close() }()

		return application.Sources(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
