package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/muster/internal/app"
	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/eligibility"
	"github.com/alexanderramin/muster/internal/repository"
)

// EligibilityOptions tunes report generation.
type EligibilityOptions struct {
	// OfficerRank is the lowest rank kept by the officers filter.
	OfficerRank string
	// Workers bounds the evaluation fan-out; zero uses the engine default.
	Workers int
	// NoResponseThreshold flags members with at least this many missed
	// answers. Zero uses domain.DefaultNoResponseThreshold.
	NoResponseThreshold int
}

type eligibilityService struct {
	members    repository.MemberRepo
	sessions   repository.SessionRepo
	attendance repository.AttendanceRepo
	reqs       repository.RankRequirementRepo
	order      domain.RankOrder
	opts       EligibilityOptions
	observer   UseCaseObserver
}

func NewEligibilityService(
	members repository.MemberRepo,
	sessions repository.SessionRepo,
	attendance repository.AttendanceRepo,
	reqs repository.RankRequirementRepo,
	order domain.RankOrder,
	opts EligibilityOptions,
	observers ...UseCaseObserver,
) EligibilityService {
	if opts.OfficerRank == "" {
		opts.OfficerRank = domain.DefaultOfficerRank
	}
	if opts.NoResponseThreshold <= 0 {
		opts.NoResponseThreshold = domain.DefaultNoResponseThreshold
	}
	return &eligibilityService{
		members:    members,
		sessions:   sessions,
		attendance: attendance,
		reqs:       reqs,
		order:      order,
		opts:       opts,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *eligibilityService) Report(ctx context.Context, req app.EligibilityRequest) (resp *app.EligibilityResponse, err error) {
	fields := map[string]any{}
	ctx, done := beginUseCase(ctx, s.observer, "report", fields)
	defer func() { done(err) }()

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	if req.Rank != "" && !s.order.Contains(req.Rank) {
		return nil, fmt.Errorf("%w %q", ErrUnknownRank, req.Rank)
	}

	members, err := s.loadMembers(ctx, req.MemberKey)
	if err != nil {
		return nil, err
	}
	members = s.filterMembers(members, req)

	total, err := s.sessions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}
	grouped, err := s.attendance.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading attendance: %w", err)
	}
	table, err := s.reqs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rank requirements: %w", err)
	}

	histories := make([]eligibility.MemberHistory, len(members))
	for i, m := range members {
		histories[i] = eligibility.MemberHistory{Member: *m, Records: grouped[m.AttendanceKey()]}
	}

	engine := eligibility.NewEngine(s.order, table, eligibility.WithWorkers(s.opts.Workers))
	verdicts, err := engine.EvaluateRoster(ctx, histories, total, now)
	if err != nil {
		return nil, fmt.Errorf("evaluating roster: %w", err)
	}

	views := make([]app.VerdictView, 0, len(verdicts))
	for _, v := range verdicts {
		view := app.NewVerdictView(v)
		view.Unresponsive = view.NoResponse >= s.opts.NoResponseThreshold
		if req.EligibleOnly && !view.Promotable() {
			continue
		}
		views = append(views, view)
	}
	sortByRank(views, s.order, func(v app.VerdictView) (string, string) { return v.Rank, v.Name })

	resp = &app.EligibilityResponse{
		Summary:  app.Summarize(views, total, now),
		Verdicts: views,
	}
	fields["members"] = resp.Summary.Members
	fields["eligible"] = resp.Summary.Eligible
	fields["unresponsive"] = resp.Summary.Unresponsive
	fields["sessions"] = total
	return resp, nil
}

func (s *eligibilityService) loadMembers(ctx context.Context, key string) ([]*domain.Member, error) {
	if key != "" {
		m, err := s.members.GetByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		return []*domain.Member{m}, nil
	}
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading members: %w", err)
	}
	return members, nil
}

func (s *eligibilityService) filterMembers(members []*domain.Member, req app.EligibilityRequest) []*domain.Member {
	if req.Rank == "" && !req.OfficersOnly {
		return members
	}
	var out []*domain.Member
	for _, m := range members {
		if req.Rank != "" && m.Rank != req.Rank {
			continue
		}
		if req.OfficersOnly && !s.order.AtLeast(m.Rank, s.opts.OfficerRank) {
			continue
		}
		out = append(out, m)
	}
	return out
}
