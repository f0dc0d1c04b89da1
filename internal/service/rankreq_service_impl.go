package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/repository"
)

type rankRequirementService struct {
	reqs     repository.RankRequirementRepo
	order    domain.RankOrder
	observer UseCaseObserver
}

func NewRankRequirementService(
	reqs repository.RankRequirementRepo,
	order domain.RankOrder,
	observers ...UseCaseObserver,
) RankRequirementService {
	return &rankRequirementService{
		reqs:     reqs,
		order:    order,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *rankRequirementService) List(ctx context.Context) ([]domain.RankRequirement, error) {
	table, err := s.reqs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RankRequirement, 0, s.order.Len())
	for _, rank := range s.order.Names() {
		out = append(out, table.For(rank))
	}
	return out, nil
}

func (s *rankRequirementService) Set(ctx context.Context, req domain.RankRequirement) (err error) {
	fields := map[string]any{
		"rank":       req.Rank,
		"months":     req.Months,
		"activities": req.Activities,
		"level":      req.Level,
	}
	ctx, done := beginUseCase(ctx, s.observer, "set-requirement", fields)
	defer func() { done(err) }()

	if !s.order.Contains(req.Rank) {
		return fmt.Errorf("%w %q", ErrUnknownRank, req.Rank)
	}
	if err = req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequirement, err)
	}
	return s.reqs.Upsert(ctx, req)
}

func (s *rankRequirementService) SeedDefaults(ctx context.Context) (bool, error) {
	table, err := s.reqs.List(ctx)
	if err != nil {
		return false, err
	}
	if len(table) > 0 {
		return false, nil
	}
	defaults := domain.DefaultRequirements(s.order.Names())
	for _, rank := range s.order.Names() {
		if err := s.reqs.Upsert(ctx, defaults[rank]); err != nil {
			return false, fmt.Errorf("seeding requirement for %q: %w", rank, err)
		}
	}
	return true, nil
}
