package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/repository"
	"github.com/alexanderramin/muster/internal/testutil"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type testServices struct {
	db           *sql.DB
	members      MemberService
	sessions     SessionService
	attendance   AttendanceService
	requirements RankRequirementService
	imports      ImportService
	eligibility  EligibilityService
}

func newTestServices(t *testing.T, observers ...UseCaseObserver) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	order := domain.DefaultRankOrder()

	memberRepo := repository.NewSQLiteMemberRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	attendanceRepo := repository.NewSQLiteAttendanceRepo(database)
	reqRepo := repository.NewSQLiteRankRequirementRepo(database)

	return &testServices{
		db:           database,
		members:      NewMemberService(memberRepo, order, uow, observers...),
		sessions:     NewSessionService(sessionRepo),
		attendance:   NewAttendanceService(attendanceRepo, memberRepo, observers...),
		requirements: NewRankRequirementService(reqRepo, order, observers...),
		imports:      NewImportService(order, uow, observers...),
		eligibility: NewEligibilityService(memberRepo, sessionRepo, attendanceRepo, reqRepo, order,
			EligibilityOptions{Workers: 4}, observers...),
	}
}

// addSessions creates n sessions on consecutive days starting at start.
func (s *testServices) addSessions(t *testing.T, n int, start time.Time) []*domain.Session {
	t.Helper()
	out := make([]*domain.Session, n)
	for i := range out {
		sess := &domain.Session{Title: "Training", Date: start.AddDate(0, 0, i)}
		if err := s.sessions.Create(t.Context(), sess); err != nil {
			t.Fatalf("creating session: %v", err)
		}
		out[i] = sess
	}
	return out
}

func (s *testServices) attend(t *testing.T, key string, cat domain.AttendanceCategory, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		rec := &domain.AttendanceRecord{MemberKey: key, Date: testutil.Date(2025, 5, 1+i), Category: cat}
		if err := s.attendance.Record(t.Context(), rec); err != nil {
			t.Fatalf("recording attendance: %v", err)
		}
	}
}
