package eligibility

import (
	"context"
	"time"

	"github.com/alexanderramin/muster/internal/domain"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 8

// MemberHistory pairs a member with the attendance records filed under its key.
type MemberHistory struct {
	Member  domain.Member
	Records []domain.AttendanceRecord
}

// Engine binds a rank ladder and requirement table and evaluates members
// against them.
type Engine struct {
	order   domain.RankOrder
	reqs    domain.RequirementTable
	workers int
}

type EngineOption func(*Engine)

// WithWorkers bounds how many members EvaluateRoster evaluates at once.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

func NewEngine(order domain.RankOrder, reqs domain.RequirementTable, opts ...EngineOption) *Engine {
	e := &Engine{order: order, reqs: reqs, workers: defaultWorkers}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Order returns the engine's rank ladder.
func (e *Engine) Order() domain.RankOrder {
	return e.order
}

// EvaluateMember looks up the member's requirement row and next rank, then
// evaluates.
func (e *Engine) EvaluateMember(m domain.Member, records []domain.AttendanceRecord, totalSessions int, now time.Time) Verdict {
	v := Evaluate(m, records, totalSessions, e.reqs.For(m.Rank), now)
	if next, ok := e.order.Next(m.Rank); ok {
		v.NextRank = next
	}
	return v
}

// EvaluateRoster evaluates every history and returns verdicts in input order.
// Evaluations are independent and run concurrently; the only error is ctx
// being done before all members were evaluated.
func (e *Engine) EvaluateRoster(ctx context.Context, histories []MemberHistory, totalSessions int, now time.Time) ([]Verdict, error) {
	verdicts := make([]Verdict, len(histories))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range histories {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h := histories[i]
			verdicts[i] = e.EvaluateMember(h.Member, h.Records, totalSessions, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}
