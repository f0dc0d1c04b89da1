package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/muster/internal/app"
	"github.com/alexanderramin/muster/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func newReportCmd(a *App) *cobra.Command {
	var req app.EligibilityRequest
	var now dateFlag
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report attendance and promotion eligibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTable && format != formatJSON {
				return fmt.Errorf("unknown format %q (table or json)", format)
			}
			req.Now = now.Time()

			resp, err := a.Eligibility.Report(cmd.Context(), req)
			if err != nil {
				return memberLookupError(req.MemberKey, err)
			}

			a.Recorder.RecordReport(resp)
			if a.Recorder != nil && a.Config != nil && a.Config.MetricsFile != "" {
				if err := a.Recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
					a.logger().Warn("metrics textfile not written", "path", a.Config.MetricsFile, "error", err)
				}
			}

			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating report file: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := writeReport(w, resp, format); err != nil {
				return err
			}
			if outPath != "" {
				printf(cmd, "Wrote %d verdicts to %s\n", len(resp.Verdicts), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.MemberKey, "member", "", "Only this member (attendance key)")
	cmd.Flags().StringVar(&req.Rank, "rank", "", "Only members holding this rank")
	cmd.Flags().BoolVar(&req.OfficersOnly, "officers", false, "Only officers")
	cmd.Flags().BoolVar(&req.EligibleOnly, "eligible", false, "Only members who can be promoted now")
	cmd.Flags().Var(&now, "now", "Evaluate as of this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the report to a file instead of stdout")

	return cmd
}

func writeReport(w io.Writer, resp *app.EligibilityResponse, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(w, formatter.FormatEligibilityReport(resp))
	return err
}
