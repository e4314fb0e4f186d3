// Package cli contains all commands of the contextwatch binary.
package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"contextwatch/internal/config"
	"contextwatch/internal/logging"
)

const supportEmail = "support@selerityinc.com"

var (
	cfgFile   string
	serverURL string
	apiKey    string
	sessionID string
	colorMode string
	verbose   bool

	cfg     config.Config
	logger  *slog.Logger
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "contextwatch",
	Short: "Selerity Context API demo client",
	Long: `contextwatch resolves a free-text query into entities known to the
Selerity Context API and then polls endlessly for content recommended
for those entities, printing every item only once.

Example usage:
  contextwatch watch --api-key KEY --query "federal reserve"
  contextwatch entities --api-key KEY --query siemens
  contextwatch sources --api-key KEY`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default from CONTEXTWATCH_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Context API server to connect to")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key to authenticate with")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session-id", "", "session id to query under (default: fresh UUID)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "color mode: auto, always or never")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig merges defaults, config file, environment and flags, in that
// order of growing precedence.
func initConfig(cmd *cobra.Command) error {
	cfg = config.Load(cfgFile)

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server.URL = serverURL
	}
	if flags.Changed("api-key") {
		cfg.Server.APIKey = apiKey
	}
	if flags.Changed("session-id") {
		cfg.Server.SessionID = sessionID
	}
	if flags.Changed("color") {
		cfg.Output.Colors = colorMode
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	cfg.Normalize()

	logger = logging.New(cfg.Logging.Level)
	logger.Debug("configuration loaded",
		"server", cfg.Server.URL,
		"session_id", cfg.Server.SessionID,
		"query_type", cfg.Query.Type,
	)

	return nil
}

func requireAPIKey() error {
	if cfg.Server.APIKey != "" {
		return nil
	}
	return errors.New("no usable api key given. Please run the command with\n\n" +
		"  --api-key INSERT-YOUR-API-KEY-HERE\n\n" +
		"If you have not yet gotten an API key, get in touch with us at " + supportEmail)
}
