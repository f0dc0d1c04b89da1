package app

import (
	"math"
	"time"

	"github.com/alexanderramin/muster/internal/eligibility"
)

type EligibilityRequest struct {
	Now          *time.Time
	MemberKey    string
	Rank         string
	OfficersOnly bool
	// EligibleOnly keeps members who qualify and have a rank to move to.
	EligibleOnly bool
}

type ReasonView struct {
	Code     string `json:"code"`
	Actual   int    `json:"actual"`
	Required int    `json:"required"`
	Message  string `json:"message"`
}

type VerdictView struct {
	MemberKey       string       `json:"member_key"`
	Name            string       `json:"name"`
	Rank            string       `json:"rank"`
	NextRank        string       `json:"next_rank,omitempty"`
	Level           int          `json:"level"`
	JoinDate        *string      `json:"join_date"`
	TenureMonths    int          `json:"tenure_months"`
	Activities      int          `json:"activities"`
	Percent         int          `json:"percent"`
	AttendanceCount int          `json:"attendance_count"`
	Eligible        bool         `json:"eligible"`
	Reasons         []ReasonView `json:"reasons"`
	NoResponse      int          `json:"no_response"`
	// Unresponsive is set by the report once NoResponse reaches the
	// configured threshold.
	Unresponsive bool `json:"unresponsive"`
}

// Promotable is true when the member qualifies and a next rank exists.
func (v VerdictView) Promotable() bool {
	return v.Eligible && v.NextRank != ""
}

func NewVerdictView(v eligibility.Verdict) VerdictView {
	view := VerdictView{
		MemberKey:       v.MemberKey,
		Name:            v.Name,
		Rank:            v.Rank,
		NextRank:        v.NextRank,
		Level:           v.Level,
		TenureMonths:    v.TenureMonths,
		Activities:      v.Activities,
		Percent:         v.Percent,
		AttendanceCount: v.AttendanceCount,
		Eligible:        v.Eligible,
		Reasons:         make([]ReasonView, 0, len(v.Reasons)),
		NoResponse:      v.NoResponse,
	}
	if v.JoinDate != nil {
		s := v.JoinDate.Format("2006-01-02")
		view.JoinDate = &s
	}
	for _, r := range v.Reasons {
		view.Reasons = append(view.Reasons, ReasonView{
			Code:     string(r.Code),
			Actual:   r.Actual,
			Required: r.Required,
			Message:  r.String(),
		})
	}
	return view
}

type EligibilitySummary struct {
	GeneratedAt    time.Time `json:"generated_at"`
	TotalSessions  int       `json:"total_sessions"`
	Members        int       `json:"members"`
	Eligible       int       `json:"eligible"`
	Ineligible     int       `json:"ineligible"`
	Promotable     int       `json:"promotable"`
	TerminalRank   int       `json:"terminal_rank"`
	Unresponsive   int       `json:"unresponsive"`
	AveragePercent float64   `json:"average_percent"`
}

type EligibilityResponse struct {
	Summary  EligibilitySummary `json:"summary"`
	Verdicts []VerdictView      `json:"verdicts"`
}

// Summarize counts the verdicts. AveragePercent is rounded to one decimal.
func Summarize(verdicts []VerdictView, totalSessions int, now time.Time) EligibilitySummary {
	s := EligibilitySummary{
		GeneratedAt:   now,
		TotalSessions: totalSessions,
		Members:       len(verdicts),
	}
	var percentSum int
	for _, v := range verdicts {
		percentSum += v.Percent
		if v.Eligible {
			s.Eligible++
		} else {
			s.Ineligible++
		}
		if v.Promotable() {
			s.Promotable++
		}
		if v.NextRank == "" {
			s.TerminalRank++
		}
		if v.Unresponsive {
			s.Unresponsive++
		}
	}
	if len(verdicts) > 0 {
		s.AveragePercent = math.Round(float64(percentSum)/float64(len(verdicts))*10) / 10
	}
	return s
}
