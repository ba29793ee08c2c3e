package cli

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"feedback-insights-go/internal/dashboard"
	"feedback-insights-go/internal/logger"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh the dashboard on an interval until interrupted",
	Long: `Refresh the dashboard on an interval until interrupted.
The interval defaults to WATCH_INTERVAL_SEC.

Examples:
  feedbackctl watch
  feedbackctl watch --interval 1m`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "refresh interval (overrides WATCH_INTERVAL_SEC)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	interval := cfg.WatchInterval
	if watchInterval > 0 {
		interval = watchInterval
	}

	ctx := cmd.Context()
	ctrl := dashboard.NewController(newClient(cfg))
	log := logger.New().WithField("component", "watch").WithField("interval", interval.String())
	log.Info("watching stats")

	ticker := backoff.NewTicker(backoff.WithContext(backoff.NewConstantBackOff(interval), ctx))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil
		case _, ok := <-ticker.C:
			if !ok {
				return nil
			}
			v := ctrl.Refresh(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "\n== %s ==\n", time.Now().Format(time.RFC3339))
			if err := dashboard.RenderText(cmd.OutOrStdout(), v); err != nil {
				return err
			}
		}
	}
}
