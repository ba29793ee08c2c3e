package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"feedback-insights-go/internal/dashboard"
	"feedback-insights-go/internal/dataset"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download analysis results",
	Long: `Download analysis results.

Examples:
  feedbackctl export csv
  feedbackctl export csv --out - | head
  feedbackctl export xlsx --out report.xlsx`,
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Download the backend CSV export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		name, err := newClient(cfg).ExportCSV(cmd.Context(), &buf)
		if err != nil {
			return err
		}
		return writeOutput(cmd, exportOut, name, buf.Bytes())
	},
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Write the current stats as an XLSX workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		v := dashboard.NewController(newClient(cfg)).Refresh(cmd.Context())
		if v.Status.State != dashboard.StateSuccess {
			return fmt.Errorf("nothing to export: %s", v.Status.Message)
		}
		var buf bytes.Buffer
		if err := dataset.WriteWorkbook(&buf, v.Stats); err != nil {
			return err
		}
		return writeOutput(cmd, exportOut, "feedback_analysis.xlsx", buf.Bytes())
	},
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "", "output file, '-' for stdout (default: server-suggested name)")
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportXLSXCmd)
}

func writeOutput(cmd *cobra.Command, out, fallback string, data []byte) error {
	if out == "-" {
		_, err := io.Copy(cmd.OutOrStdout(), bytes.NewReader(data))
		return err
	}
	if out == "" {
		out = filepath.Base(fallback)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", len(data), out)
	return nil
}
