package repository

import (
	"context"

	"github.com/alexanderramin/muster/internal/domain"
)

type MemberRepo interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByKey(ctx context.Context, key string) (*domain.Member, error)
	List(ctx context.Context) ([]*domain.Member, error)
	Update(ctx context.Context, m *domain.Member) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

// AttendanceRepo stores records by member key. Records are never updated.
type AttendanceRepo interface {
	Create(ctx context.Context, r *domain.AttendanceRecord) error
	ListByMember(ctx context.Context, memberKey string) ([]domain.AttendanceRecord, error)
	ListAll(ctx context.Context) (map[string][]domain.AttendanceRecord, error)
	DeleteByMember(ctx context.Context, memberKey string) (int, error)
}

type RankRequirementRepo interface {
	Get(ctx context.Context, rank string) (*domain.RankRequirement, error)
	List(ctx context.Context) (domain.RequirementTable, error)
	Upsert(ctx context.Context, req domain.RankRequirement) error
}
