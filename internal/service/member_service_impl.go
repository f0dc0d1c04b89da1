package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/muster/internal/db"
	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/repository"
	"github.com/google/uuid"
)

type memberService struct {
	members  repository.MemberRepo
	order    domain.RankOrder
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewMemberService(
	members repository.MemberRepo,
	order domain.RankOrder,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) MemberService {
	return &memberService{
		members:  members,
		order:    order,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *memberService) Create(ctx context.Context, m *domain.Member) error {
	if err := s.validate(m); err != nil {
		return err
	}
	now := time.Now().UTC()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.Key = m.AttendanceKey()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.members.Create(ctx, m)
}

func (s *memberService) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	return s.members.GetByID(ctx, id)
}

func (s *memberService) GetByKey(ctx context.Context, key string) (*domain.Member, error) {
	return s.members.GetByKey(ctx, key)
}

func (s *memberService) List(ctx context.Context) ([]*domain.Member, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}
	sortByRank(members, s.order, func(m *domain.Member) (string, string) { return m.Rank, m.Name })
	return members, nil
}

func (s *memberService) Update(ctx context.Context, m *domain.Member) error {
	if err := s.validate(m); err != nil {
		return err
	}
	m.UpdatedAt = time.Now().UTC()
	return s.members.Update(ctx, m)
}

func (s *memberService) Promote(ctx context.Context, key string, now time.Time) (member *domain.Member, err error) {
	fields := map[string]any{"member": key}
	ctx, done := beginUseCase(ctx, s.observer, "promote", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)

		m, err := txMembers.GetByKey(ctx, key)
		if err != nil {
			return err
		}
		next, ok := s.order.Next(m.Rank)
		if !ok {
			return fmt.Errorf("promoting %q from %q: %w", key, m.Rank, ErrNoNextRank)
		}
		fields["from"] = m.Rank
		fields["to"] = next
		if err := m.Promote(next, now.UTC()); err != nil {
			return err
		}
		if err := txMembers.Update(ctx, m); err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) Demote(ctx context.Context, key string) (member *domain.Member, err error) {
	fields := map[string]any{"member": key}
	ctx, done := beginUseCase(ctx, s.observer, "demote", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)

		m, err := txMembers.GetByKey(ctx, key)
		if err != nil {
			return err
		}
		previous, ok := s.order.Previous(m.Rank)
		if !ok {
			return fmt.Errorf("demoting %q from %q: %w", key, m.Rank, ErrNoLowerRank)
		}
		fields["from"] = m.Rank
		fields["to"] = previous
		if err := m.Demote(previous, time.Now().UTC()); err != nil {
			return err
		}
		if err := txMembers.Update(ctx, m); err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) RecordNoResponse(ctx context.Context, keys []string) (members []*domain.Member, err error) {
	fields := map[string]any{"members": len(keys)}
	ctx, done := beginUseCase(ctx, s.observer, "record-no-response", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)
		now := time.Now().UTC()

		members = make([]*domain.Member, 0, len(keys))
		for _, key := range keys {
			m, err := txMembers.GetByKey(ctx, key)
			if err != nil {
				return err
			}
			m.NoResponse++
			m.UpdatedAt = now
			if err := txMembers.Update(ctx, m); err != nil {
				return err
			}
			members = append(members, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (s *memberService) ResetNoResponse(ctx context.Context, key string) (*domain.Member, error) {
	m, err := s.members.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if m.NoResponse == 0 {
		return m, nil
	}
	m.NoResponse = 0
	m.UpdatedAt = time.Now().UTC()
	if err := s.members.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *memberService) Delete(ctx context.Context, key string) (removed int, err error) {
	fields := map[string]any{"member": key}
	ctx, done := beginUseCase(ctx, s.observer, "remove-member", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)
		txAttendance := repository.NewSQLiteAttendanceRepo(tx)

		m, err := txMembers.GetByKey(ctx, key)
		if err != nil {
			return err
		}
		removed, err = txAttendance.DeleteByMember(ctx, m.AttendanceKey())
		if err != nil {
			return err
		}
		fields["attendance_removed"] = removed
		return txMembers.Delete(ctx, m.ID)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *memberService) validate(m *domain.Member) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if !s.order.Contains(m.Rank) {
		return fmt.Errorf("member %q: %w %q", m.Name, ErrUnknownRank, m.Rank)
	}
	return nil
}

// sortByRank orders items highest rank first, then by name. Ranks outside the
// order sort last.
func sortByRank[T any](items []T, order domain.RankOrder, key func(T) (rank, name string)) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, ni := key(items[i])
		rj, nj := key(items[j])
		pi, oki := order.Position(ri)
		pj, okj := order.Position(rj)
		if oki != okj {
			return oki
		}
		if pi != pj {
			return pi > pj
		}
		return strings.ToLower(ni) < strings.ToLower(nj)
	})
}
