package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/muster/internal/app"
)

// FormatEligibilityReport renders the verdict table followed by the summary.
func FormatEligibilityReport(resp *app.EligibilityResponse) string {
	var b strings.Builder

	if len(resp.Verdicts) == 0 {
		b.WriteString(Dim("No members match the filters.") + "\n")
	} else {
		headers := []string{"NAME", "RANK", "NEXT", "TENURE", "ACT", "ATT", "STATUS", "REASONS"}
		rows := make([][]string, 0, len(resp.Verdicts))
		for _, v := range resp.Verdicts {
			status := VerdictPill(v.Eligible, v.NextRank == "")
			if v.Unresponsive {
				status += " " + NoResponseMark(v.NoResponse, true)
			}
			rows = append(rows, []string{
				Bold(v.Name),
				v.Rank,
				orDash(v.NextRank),
				Tenure(v.TenureMonths),
				strconv.Itoa(v.Activities),
				PercentColor(v.Percent).Render(fmt.Sprintf("%d%%", v.Percent)),
				status,
				reasonList(v.Reasons),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	b.WriteString("\n")
	b.WriteString(formatSummary(resp.Summary))
	return RenderBox("Promotion eligibility", strings.TrimRight(b.String(), "\n"))
}

func reasonList(reasons []app.ReasonView) string {
	if len(reasons) == 0 {
		return Dim("--")
	}
	msgs := make([]string, len(reasons))
	for i, r := range reasons {
		msgs[i] = r.Message
	}
	return StyleRed.Render(strings.Join(msgs, "; "))
}

func formatSummary(s app.EligibilitySummary) string {
	parts := []string{
		fmt.Sprintf("%d members", s.Members),
		StyleGreen.Render(fmt.Sprintf("%d eligible", s.Eligible)),
		StyleRed.Render(fmt.Sprintf("%d not yet", s.Ineligible)),
		fmt.Sprintf("%d promotable", s.Promotable),
		fmt.Sprintf("%d at top rank", s.TerminalRank),
	}
	if s.Unresponsive > 0 {
		parts = append(parts, StyleRed.Render(fmt.Sprintf("%d unresponsive", s.Unresponsive)))
	}
	line := strings.Join(parts, Dim(" · "))
	return fmt.Sprintf("%s\n%s\n",
		line,
		Dim(fmt.Sprintf("%d sessions · average attendance %.1f%% · as of %s",
			s.TotalSessions, s.AveragePercent, s.GeneratedAt.Format(dateLayout))))
}
