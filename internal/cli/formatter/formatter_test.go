package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/muster/internal/app"
	"github.com/alexanderramin/muster/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "LONGER"},
		[][]string{{"wide cell", "x"}, {"y", StyleRed.Render("z")}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	col := strings.Index(lines[0], "LONGER")
	assert.Equal(t, col, strings.Index(lines[2], "x"))
	assert.Equal(t, col, strings.Index(lines[3], "z"))
	assert.True(t, strings.HasPrefix(lines[1], "─"))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"a"}}))
}

func TestRenderTable_ShortRowsArePadded(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B", "C"}, [][]string{{"1"}}))
	assert.Contains(t, out, "1")
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 3)
}

func TestTenure(t *testing.T) {
	assert.Equal(t, "unknown", stripANSI(Tenure(-1)))
	assert.Equal(t, "0 months", Tenure(0))
	assert.Equal(t, "1 month", Tenure(1))
	assert.Equal(t, "14 months", Tenure(14))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", TruncID("12345678-aaaa-bbbb-cccc-1234567890ab"))
	assert.Equal(t, "abc", TruncID("abc"))
	assert.Equal(t, "abcdefgh", TruncID("abcdefghijkl"))
}

func TestFormatMemberList(t *testing.T) {
	members := []*domain.Member{
		{Key: "anna#1", Name: "Anna", Rank: "Gefreiter", Level: 120, JoinDate: date(2024, 1, 10), Group: "Alpha"},
		{Name: "Bernd", Rank: "Anwerber/AW", Level: 40, NoResponse: 10},
	}

	out := stripANSI(FormatMemberList(members, 10))

	assert.Contains(t, out, "ROSTER (2)")
	assert.Contains(t, out, "anna#1")
	assert.Contains(t, out, "2024-01-10")
	assert.Contains(t, out, "Alpha")
	// Bernd has no key, so his name doubles as the attendance key.
	assert.Equal(t, 2, strings.Count(out, "Bernd"))
	assert.Contains(t, out, "NO RESP")
	assert.Contains(t, out, "✗ 10")

	raised := stripANSI(FormatMemberList(members, 11))
	assert.NotContains(t, raised, "✗")
}

func TestFormatMemberList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatMemberList(nil, 10)), "No members yet")
}

func TestFormatMemberGroups(t *testing.T) {
	groups := domain.GroupMembers([]*domain.Member{
		{Key: "a", Name: "Anna", Rank: "Gefreiter", Group: "Alpha"},
		{Key: "b", Name: "Bernd", Rank: "Gefreiter", Group: "Alpha"},
		{Key: "d", Name: "Dora", Rank: "Gefreiter"},
	})

	out := stripANSI(FormatMemberGroups(groups, 10))

	assert.Contains(t, out, "ROSTER BY GROUP (3)")
	assert.Contains(t, out, "ALPHA (2)")
	assert.Contains(t, out, "OHNE GRUPPE (1)")
	assert.Less(t, strings.Index(out, "ALPHA"), strings.Index(out, "OHNE GRUPPE"))
	assert.Less(t, strings.Index(out, "Bernd"), strings.Index(out, "Dora"))

	assert.Contains(t, stripANSI(FormatMemberGroups(nil, 10)), "No members yet")
}

func TestNoResponseMark(t *testing.T) {
	assert.Equal(t, "0", stripANSI(NoResponseMark(0, false)))
	assert.Equal(t, "3", stripANSI(NoResponseMark(3, false)))
	assert.Equal(t, "✗ 12", stripANSI(NoResponseMark(12, true)))
}

func TestFormatSessionList(t *testing.T) {
	sessions := []*domain.Session{
		{ID: "abcdef12-0000", Title: "Training", Date: *date(2025, 5, 3), Maps: []string{"Carentan", "Foy"}},
		{ID: "ffffffff-1111", Title: "Event", Date: *date(2025, 5, 10)},
	}

	out := stripANSI(FormatSessionList(sessions))

	assert.Contains(t, out, "SESSIONS (2)")
	assert.Contains(t, out, "abcdef12")
	assert.Contains(t, out, "Carentan, Foy")
	assert.Contains(t, out, "2025-05-10")
}

func TestFormatRequirements_HidesUnenforcedThresholds(t *testing.T) {
	out := stripANSI(FormatRequirements([]domain.RankRequirement{
		{Rank: "Anwerber/AW", Months: 3, Activities: 3, Level: 80},
		{Rank: "Major"},
	}))

	assert.Contains(t, out, "80")
	var majorLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Major") {
			majorLine = line
		}
	}
	require.NotEmpty(t, majorLine)
	assert.Equal(t, 3, strings.Count(majorLine, "-"))
}

func TestFormatMemberDetail_WithVerdict(t *testing.T) {
	m := &domain.Member{Key: "bernd#2", Name: "Bernd", Rank: "Gefreiter", Level: 90, Comment: "on leave"}
	records := []domain.AttendanceRecord{
		{MemberKey: "bernd#2", Date: *date(2025, 5, 1), Category: domain.CategoryReserve},
	}
	verdict := &app.VerdictView{
		Name:         "Bernd",
		Rank:         "Gefreiter",
		NextRank:     "Obergefreiter",
		TenureMonths: -1,
		Percent:      0,
		Activities:   1,
		Reasons: []app.ReasonView{
			{Code: "MONTHS", Actual: -1, Required: 3, Message: "months -1 < required 3"},
		},
	}

	out := stripANSI(FormatMemberDetail(m, records, verdict))

	assert.Contains(t, out, "on leave")
	assert.Contains(t, out, "NOT YET")
	assert.Contains(t, out, "Obergefreiter")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "months -1 < required 3")
	assert.Contains(t, out, "reserve")
}

func TestFormatEligibilityReport(t *testing.T) {
	resp := &app.EligibilityResponse{
		Summary: app.EligibilitySummary{
			GeneratedAt:    *date(2025, 6, 15),
			TotalSessions:  4,
			Members:        2,
			Eligible:       1,
			Ineligible:     1,
			Promotable:     1,
			Unresponsive:   1,
			AveragePercent: 37.5,
		},
		Verdicts: []app.VerdictView{
			{Name: "Anna", Rank: "Gefreiter", NextRank: "Obergefreiter", TenureMonths: 17, Activities: 3, Percent: 75, Eligible: true},
			{Name: "Bernd", Rank: "Gefreiter", NextRank: "Obergefreiter", TenureMonths: 1, Activities: 1, Percent: 0,
				NoResponse: 11, Unresponsive: true,
				Reasons: []app.ReasonView{{Message: "months 1 < required 3"}, {Message: "activities 1 < required 3"}}},
		},
	}

	out := stripANSI(FormatEligibilityReport(resp))

	assert.Contains(t, out, "PROMOTION ELIGIBILITY")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "ELIGIBLE")
	assert.Contains(t, out, "months 1 < required 3; activities 1 < required 3")
	assert.Contains(t, out, "2 members")
	assert.Contains(t, out, "✗ 11")
	assert.Contains(t, out, "1 unresponsive")
	assert.Contains(t, out, "average attendance 37.5%")
	assert.Contains(t, out, "as of 2025-06-15")
}

func TestFormatEligibilityReport_Empty(t *testing.T) {
	out := stripANSI(FormatEligibilityReport(&app.EligibilityResponse{}))
	assert.Contains(t, out, "No members match the filters.")
}

func TestVerdictPill(t *testing.T) {
	assert.Contains(t, stripANSI(VerdictPill(true, false)), "ELIGIBLE")
	assert.Contains(t, stripANSI(VerdictPill(false, false)), "NOT YET")
	assert.Contains(t, stripANSI(VerdictPill(true, true)), "TOP RANK")
}
