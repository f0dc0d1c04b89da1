package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/muster/internal/app"
	"github.com/alexanderramin/muster/internal/domain"
)

// FormatMemberList renders the roster inside a bordered box. Members at or
// above threshold unanswered sessions are marked.
func FormatMemberList(members []*domain.Member, threshold int) string {
	if len(members) == 0 {
		return Dim("No members yet. Add one with `muster member add`.") + "\n"
	}
	return RenderBox(fmt.Sprintf("Roster (%d)", len(members)), memberTable(members, threshold, true))
}

// FormatMemberGroups renders one table per group. Members without a group
// are listed under domain.NoGroup.
func FormatMemberGroups(groups []domain.MemberGroup, threshold int) string {
	if len(groups) == 0 {
		return Dim("No members yet. Add one with `muster member add`.") + "\n"
	}

	var b strings.Builder
	var total int
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(fmt.Sprintf("%s (%d)", g.Name, len(g.Members))))
		b.WriteString("\n")
		b.WriteString(memberTable(g.Members, threshold, false))
		total += len(g.Members)
	}
	return RenderBox(fmt.Sprintf("Roster by group (%d)", total), strings.TrimRight(b.String(), "\n"))
}

func memberTable(members []*domain.Member, threshold int, withGroup bool) string {
	headers := []string{"KEY", "NAME", "RANK", "LEVEL", "JOINED", "NO RESP"}
	if withGroup {
		headers = append(headers, "GROUP")
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		row := []string{
			m.AttendanceKey(),
			Bold(m.Name),
			m.Rank,
			strconv.Itoa(m.Level),
			FormatDate(m.JoinDate),
			NoResponseMark(m.NoResponse, m.Unresponsive(threshold)),
		}
		if withGroup {
			row = append(row, orDash(m.Group))
		}
		rows = append(rows, row)
	}
	return RenderTable(headers, rows)
}

// FormatMemberDetail renders one member card. verdict may be nil.
func FormatMemberDetail(m *domain.Member, records []domain.AttendanceRecord, verdict *app.VerdictView) string {
	var b strings.Builder

	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%-15s", label)), value)
	}
	field("Name", Bold(m.Name))
	field("Key", m.AttendanceKey())
	field("Rank", m.Rank)
	field("Level", strconv.Itoa(m.Level))
	field("Joined", FormatDate(m.JoinDate))
	field("Last promotion", FormatDate(m.LastPromotion))
	field("Group", orDash(m.Group))
	field("No response", NoResponseMark(m.NoResponse, verdict != nil && verdict.Unresponsive))
	if m.Comment != "" {
		field("Comment", m.Comment)
	}

	if verdict != nil {
		b.WriteString("\n")
		b.WriteString(Header("Eligibility"))
		b.WriteString("\n")
		field("Status", VerdictPill(verdict.Eligible, verdict.NextRank == ""))
		field("Next rank", orDash(verdict.NextRank))
		field("Tenure", Tenure(verdict.TenureMonths))
		field("Attendance", PercentColor(verdict.Percent).Render(fmt.Sprintf("%d%%", verdict.Percent)))
		field("Activities", strconv.Itoa(verdict.Activities))
		for _, r := range verdict.Reasons {
			b.WriteString("  " + StyleRed.Render("✗ "+r.Message) + "\n")
		}
	}

	if len(records) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatAttendanceList(records))
	}

	return RenderBox("Member", strings.TrimRight(b.String(), "\n"))
}

// FormatAttendanceList renders a member's records, oldest first.
func FormatAttendanceList(records []domain.AttendanceRecord) string {
	if len(records) == 0 {
		return Dim("No attendance recorded.") + "\n"
	}
	headers := []string{"DATE", "CATEGORY", "SESSION"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		session := Dim("--")
		if r.SessionID != nil {
			session = TruncID(*r.SessionID)
		}
		rows = append(rows, []string{
			r.Date.Format(dateLayout),
			CategoryLabel(r.Category),
			session,
		})
	}
	return RenderTable(headers, rows)
}

// CategoryLabel colors a category by what it counts toward.
func CategoryLabel(c domain.AttendanceCategory) string {
	switch {
	case c.CountsTowardPercent():
		return StyleGreen.Render(string(c))
	case c.CountsTowardActivity():
		return StyleBlue.Render(string(c))
	default:
		return Dim(string(c))
	}
}

// FormatSessionList renders the session calendar.
func FormatSessionList(sessions []*domain.Session) string {
	if len(sessions) == 0 {
		return Dim("No sessions yet. Add one with `muster session add`.") + "\n"
	}
	headers := []string{"ID", "DATE", "TITLE", "MAPS"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.Date.Format(dateLayout),
			Bold(s.Title),
			orDash(strings.Join(s.Maps, ", ")),
		})
	}
	return RenderBox(fmt.Sprintf("Sessions (%d)", len(sessions)), RenderTable(headers, rows))
}

// FormatRequirements renders the promotion thresholds per rank. Zero
// thresholds are shown as "-" since they are not enforced.
func FormatRequirements(reqs []domain.RankRequirement) string {
	headers := []string{"RANK", "MONTHS", "ACTIVITIES", "LEVEL"}
	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		rows = append(rows, []string{
			r.Rank,
			threshold(r.Months),
			threshold(r.Activities),
			threshold(r.Level),
		})
	}
	return RenderBox("Promotion requirements", RenderTable(headers, rows))
}

func threshold(v int) string {
	if v <= 0 {
		return Dim("-")
	}
	return strconv.Itoa(v)
}
