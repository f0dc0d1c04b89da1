package service

import (
	"context"
	"time"

	"github.com/alexanderramin/muster/internal/app"
	"github.com/alexanderramin/muster/internal/domain"
)

type MemberService interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByKey(ctx context.Context, key string) (*domain.Member, error)
	// List returns the roster highest rank first.
	List(ctx context.Context) ([]*domain.Member, error)
	Update(ctx context.Context, m *domain.Member) error
	Promote(ctx context.Context, key string, now time.Time) (*domain.Member, error)
	// Demote moves the member one rank down. The promotion date is kept.
	Demote(ctx context.Context, key string) (*domain.Member, error)
	// RecordNoResponse adds one missed answer to each named member. Unknown
	// keys fail the whole call.
	RecordNoResponse(ctx context.Context, keys []string) ([]*domain.Member, error)
	ResetNoResponse(ctx context.Context, key string) (*domain.Member, error)
	// Delete removes the member and their attendance, returning the number of
	// attendance records removed.
	Delete(ctx context.Context, key string) (int, error)
}

type SessionService interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

type AttendanceService interface {
	// Record stores the record and clears the member's no-response count.
	Record(ctx context.Context, r *domain.AttendanceRecord) error
	ListByMember(ctx context.Context, memberKey string) ([]domain.AttendanceRecord, error)
}

type RankRequirementService interface {
	// List returns one requirement per configured rank, in rank order.
	List(ctx context.Context) ([]domain.RankRequirement, error)
	Set(ctx context.Context, req domain.RankRequirement) error
	// SeedDefaults stores the default table when no requirement is stored yet.
	SeedDefaults(ctx context.Context) (bool, error)
}

type ImportService interface {
	app.ImportRosterUseCase
}

type EligibilityService interface {
	app.EligibilityUseCase
}
