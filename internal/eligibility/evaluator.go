package eligibility

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/muster/internal/domain"
)

type ReasonCode string

const (
	ReasonTenure     ReasonCode = "MONTHS"
	ReasonActivities ReasonCode = "ACTIVITIES"
	ReasonLevel      ReasonCode = "LEVEL"
)

// Reason records one unmet promotion threshold.
type Reason struct {
	Code     ReasonCode
	Actual   int
	Required int
}

func (r Reason) String() string {
	switch r.Code {
	case ReasonTenure:
		return fmt.Sprintf("months %d < required %d", r.Actual, r.Required)
	case ReasonActivities:
		return fmt.Sprintf("activities %d < required %d", r.Actual, r.Required)
	case ReasonLevel:
		return fmt.Sprintf("level %d < required %d", r.Actual, r.Required)
	default:
		return fmt.Sprintf("%s %d < required %d", r.Code, r.Actual, r.Required)
	}
}

// Verdict is the complete evaluation of one member. All metrics are filled in
// whether or not the member is eligible.
type Verdict struct {
	MemberKey       string
	Name            string
	Rank            string
	NextRank        string
	Level           int
	JoinDate        *time.Time
	TenureMonths    int
	Activities      int
	Percent         int
	Eligible        bool
	Reasons         []Reason
	AttendanceCount int
	NoResponse      int
}

// HasNextRank reports whether the member can be promoted at all.
func (v Verdict) HasNextRank() bool {
	return v.NextRank != ""
}

// ReasonMessages returns the human-readable reasons in order.
func (v Verdict) ReasonMessages() []string {
	msgs := make([]string, len(v.Reasons))
	for i, r := range v.Reasons {
		msgs[i] = r.String()
	}
	return msgs
}

// AttendancePercent returns the share of totalSessions covered by
// percentage-qualifying records, rounded half away from zero and clamped to
// [0, 100]. It is 0 when there are no sessions.
func AttendancePercent(records []domain.AttendanceRecord, totalSessions int) int {
	if totalSessions <= 0 {
		return 0
	}
	var count int
	for _, r := range records {
		if r.Category.CountsTowardPercent() {
			count++
		}
	}
	pct := int(math.Round(float64(count) / float64(totalSessions) * 100))
	return min(100, max(0, pct))
}

// ActivityCount counts records that feed the activity requirement.
func ActivityCount(records []domain.AttendanceRecord) int {
	var n int
	for _, r := range records {
		if r.Category.CountsTowardActivity() {
			n++
		}
	}
	return n
}

// SincePromotion keeps the records dated after the promotion day. Records on
// the promotion day itself were earned at the old rank. A nil lastPromotion
// keeps everything.
func SincePromotion(records []domain.AttendanceRecord, lastPromotion *time.Time) []domain.AttendanceRecord {
	if lastPromotion == nil {
		return records
	}
	y, m, d := lastPromotion.Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	out := make([]domain.AttendanceRecord, 0, len(records))
	for _, r := range records {
		ry, rm, rd := r.Date.Date()
		if !time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC).Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// Evaluate computes a member's verdict against req. It never fails and never
// modifies its inputs. NextRank is left empty; Engine resolves it.
//
// Activities restart at each promotion. Percent and AttendanceCount cover the
// whole history.
func Evaluate(m domain.Member, records []domain.AttendanceRecord, totalSessions int, req domain.RankRequirement, now time.Time) Verdict {
	tenure := MonthsSince(m.JoinDate, now)
	activities := ActivityCount(SincePromotion(records, m.LastPromotion))

	v := Verdict{
		MemberKey:       m.AttendanceKey(),
		Name:            m.Name,
		Rank:            m.Rank,
		Level:           m.Level,
		TenureMonths:    tenure,
		Activities:      activities,
		Percent:         AttendancePercent(records, totalSessions),
		Reasons:         []Reason{},
		AttendanceCount: len(records),
		NoResponse:      m.NoResponse,
	}
	if m.JoinDate != nil {
		jd := *m.JoinDate
		v.JoinDate = &jd
	}

	// Every check runs so that all shortfalls are reported together.
	if req.Months > 0 && (m.JoinDate == nil || tenure < req.Months) {
		v.Reasons = append(v.Reasons, Reason{Code: ReasonTenure, Actual: tenure, Required: req.Months})
	}
	if req.Activities > 0 && activities < req.Activities {
		v.Reasons = append(v.Reasons, Reason{Code: ReasonActivities, Actual: activities, Required: req.Activities})
	}
	if req.Level > 0 && m.Level < req.Level {
		v.Reasons = append(v.Reasons, Reason{Code: ReasonLevel, Actual: m.Level, Required: req.Level})
	}

	v.Eligible = len(v.Reasons) == 0
	return v
}
