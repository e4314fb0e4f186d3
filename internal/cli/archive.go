package cli

import (
	"github.com/spf13/cobra"

	"contextwatch/internal/app"
)

var (
	archiveDSN   string
	archiveLimit int
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Show recently archived content items",
	Long: `archive reads the Postgres archive a watch run fills when started with
--archive-dsn, printing the most recent items in transcript form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("dsn") {
			cfg.Archive.DSN = archiveDSN
		}

		application := app.New(cfg, logger)
		defer func() { _ = application.Close() }()

		return application.ArchiveList(cmd.Context(), archiveLimit)
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	archiveCmd.Flags().StringVar(&archiveDSN, "dsn", "", "Postgres DSN of the archive")
	archiveCmd.Flags().IntVar(&archiveLimit, "limit", 20, "how many items to show")
}
