package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/muster/internal/app"
	"github.com/alexanderramin/muster/internal/db"
	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/importer"
	"github.com/alexanderramin/muster/internal/repository"
)

type importService struct {
	order    domain.RankOrder
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(order domain.RankOrder, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		order:    order,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportRoster(ctx context.Context, filePath string) (*app.ImportResult, error) {
	bundle, err := importer.LoadRosterBundle(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportRosterBundle(ctx, bundle)
}

// ImportRosterBundle writes the whole bundle in one transaction; any failure
// leaves the store untouched.
func (s *importService) ImportRosterBundle(ctx context.Context, bundle *importer.RosterBundle) (result *app.ImportResult, err error) {
	fields := map[string]any{}
	ctx, done := beginUseCase(ctx, s.observer, "import", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateRosterBundle(bundle, s.order); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	data, err := importer.Convert(bundle)
	if err != nil {
		return nil, fmt.Errorf("converting roster bundle: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txAttendance := repository.NewSQLiteAttendanceRepo(tx)
		txReqs := repository.NewSQLiteRankRequirementRepo(tx)

		for _, sess := range data.Sessions {
			if err := txSessions.Create(ctx, sess); err != nil {
				return fmt.Errorf("creating session %q: %w", sess.Title, err)
			}
		}
		for _, m := range data.Members {
			if err := txMembers.Create(ctx, m); err != nil {
				return fmt.Errorf("creating member %q: %w", m.Name, err)
			}
		}
		for _, rec := range data.Attendance {
			if err := txAttendance.Create(ctx, rec); err != nil {
				return fmt.Errorf("creating attendance for %q: %w", rec.MemberKey, err)
			}
		}
		for _, req := range data.Requirements {
			if err := txReqs.Upsert(ctx, req); err != nil {
				return fmt.Errorf("storing requirement for %q: %w", req.Rank, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		MemberCount:      len(data.Members),
		SessionCount:     len(data.Sessions),
		AttendanceCount:  len(data.Attendance),
		RequirementCount: len(data.Requirements),
	}
	fields["members"] = result.MemberCount
	fields["sessions"] = result.SessionCount
	fields["attendance"] = result.AttendanceCount
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
