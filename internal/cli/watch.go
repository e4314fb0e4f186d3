package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"contextwatch/internal/app"
	"contextwatch/internal/domain"
)

var (
	watchQuery      string
	watchExact      bool
	watchQueryType  string
	watchPreviews   bool
	watchArchiveDSN string
	watchRetries    int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll endlessly for new content items",
	Long: `watch resolves --query into entity ids once, then asks the Context API
for recommended content every 30 seconds, printing items that were not
printed before. The loop runs until interrupted or a query fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAPIKey(); err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("query") {
			cfg.Query.Text = watchQuery
		}
		if flags.Changed("exact") {
			cfg.Query.Exact = watchExact
		}
		if flags.Changed("query-type") {
			cfg.Query.Type = watchQueryType
		}
		if flags.Changed("previews") {
			cfg.Output.Previews = watchPreviews
		}
		if flags.Changed("archive-dsn") {
			cfg.Archive.DSN = watchArchiveDSN
		}
		if flags.Changed("retries") {
			cfg.Client.RetryAttempts = watchRetries
		}

		if _, ok := domain.ParseQueryType(cfg.Query.Type); !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Unknown query type %s. Switching to FEED.\n", cfg.Query.Type)
			cfg.Query.Type = string(domain.QueryFeed)
		}

		application := app.New(cfg, logger)
		defer func() { _ = application.Close() }()

		return application.Watch(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchQuery, "query", "q", "", "free-text query to resolve into entities")
	watchCmd.Flags().BoolVar(&watchExact, "exact", false, "match entities exactly instead of partially")
	watchCmd.Flags().StringVar(&watchQueryType, "query-type", "", "FEED, RECOMMENDATION, SURVEY, SEARCH or DISCOVERY")
	watchCmd.Flags().BoolVar(&watchPreviews, "previews", false, "fetch link previews for printed items")
	watchCmd.Flags().StringVar(&watchArchiveDSN, "archive-dsn", "", "Postgres DSN for archiving printed items")
	watchCmd.Flags().IntVar(&watchRetries, "retries", 0, "bounded retries per failed request (0 = fail fast)")
}
