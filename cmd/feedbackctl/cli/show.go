package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"feedback-insights-go/internal/dashboard"
	"feedback-insights-go/internal/dataset"
)

var (
	showFromXLSX string
	showJSON     bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch the stats once and print the dashboard",
	Long: `Fetch the stats once and print the dashboard tables.

Examples:
  feedbackctl show
  feedbackctl show --json
  feedbackctl show --from-xlsx feedback_analysis.xlsx`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFromXLSX, "from-xlsx", "", "render a workbook written by 'export xlsx' instead of calling the API")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the view model as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	fetcher, err := showFetcher()
	if err != nil {
		return err
	}

	v := dashboard.NewController(fetcher).Refresh(cmd.Context())
	if err := printView(cmd, v); err != nil {
		return err
	}
	if v.Status.State == dashboard.StateError {
		return errors.New(v.Status.Message)
	}
	return nil
}

func showFetcher() (dashboard.Fetcher, error) {
	if showFromXLSX != "" {
		records, err := dataset.Load(showFromXLSX)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", showFromXLSX, err)
		}
		return dashboard.Static(dataset.Summarize(records)), nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newClient(cfg), nil
}

func printView(cmd *cobra.Command, v *dashboard.View) error {
	if showJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return dashboard.RenderText(cmd.OutOrStdout(), v)
}
