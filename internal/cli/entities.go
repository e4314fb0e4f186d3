package cli

import (
	"github.com/spf13/cobra"

	"contextwatch/internal/app"
)

var (
	entitiesQuery string
	entitiesExact bool
)

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Show what a query resolves to, without polling",
	Long: `entities runs the entity resolution step once and renders the matches
as a table. Useful for checking a query before starting a watch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAPIKey(); err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("query") {
			cfg.Query.Text = entitiesQuery
		}
		if flags.Changed("exact") {
			cfg.Query.Exact = entitiesExact
		}

		application := app.New(cfg, logger)
		defer func() { _ = application.Close() }()

		return application.Entities(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(entitiesCmd)

	entitiesCmd.Flags().StringVarP(&entitiesQuery, "query", "q", "", "free-text query to resolve into entities")
	entitiesCmd.Flags().BoolVar(&entitiesExact, "exact", false, "match entities exactly instead of partially")
}
