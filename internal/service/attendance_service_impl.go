package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/repository"
	"github.com/google/uuid"
)

type attendanceService struct {
	attendance repository.AttendanceRepo
	members    repository.MemberRepo
	observer   UseCaseObserver
}

func NewAttendanceService(
	attendance repository.AttendanceRepo,
	members repository.MemberRepo,
	observers ...UseCaseObserver,
) AttendanceService {
	return &attendanceService{
		attendance: attendance,
		members:    members,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Record stores a record for a known member and clears its no-response count.
// The session reference is kept as given and need not exist.
func (s *attendanceService) Record(ctx context.Context, r *domain.AttendanceRecord) (err error) {
	fields := map[string]any{"member": r.MemberKey, "category": string(r.Category)}
	ctx, done := beginUseCase(ctx, s.observer, "record-attendance", fields)
	defer func() { done(err) }()

	if !r.Category.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidCategory, r.Category)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("attendance date is required")
	}
	m, err := s.members.GetByKey(ctx, r.MemberKey)
	if err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()
	if err = s.attendance.Create(ctx, r); err != nil {
		return err
	}

	if m.NoResponse > 0 {
		fields["no_response_cleared"] = m.NoResponse
		m.NoResponse = 0
		m.UpdatedAt = r.CreatedAt
		if err = s.members.Update(ctx, m); err != nil {
			return fmt.Errorf("clearing no-response count: %w", err)
		}
	}
	return nil
}

func (s *attendanceService) ListByMember(ctx context.Context, memberKey string) ([]domain.AttendanceRecord, error) {
	return s.attendance.ListByMember(ctx, memberKey)
}
