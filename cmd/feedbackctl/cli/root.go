package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"feedback-insights-go/internal/config"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/statsapi"
)

var (
	envFile string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "feedbackctl",
	Short: "Comment analysis dashboard for the terminal",
	Long: `feedbackctl fetches the aggregated comment-analysis statistics and
renders the sentiment, category, high-risk and top-important tables.
It reads API_BASE_URL and friends from the environment or a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet {
			logger.SetOutput(io.Discard)
		}
	},
}

// Execute runs the CLI; ctx is cancelled on SIGINT.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "discard log output, e.g. when piping --json or export -o -")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(envFile)
}

func newClient(cfg *config.Config) *statsapi.Client {
	return statsapi.New(cfg.APIBaseURL, cfg.HTTPTimeout, cfg.ExportRetries)
}
