package app

import (
	"context"

	"github.com/alexanderramin/muster/internal/importer"
)

type EligibilityUseCase interface {
	Report(ctx context.Context, req EligibilityRequest) (*EligibilityResponse, error)
}

// ImportResult counts what an import wrote.
type ImportResult struct {
	MemberCount      int
	SessionCount     int
	AttendanceCount  int
	RequirementCount int
}

type ImportRosterUseCase interface {
	ImportRoster(ctx context.Context, filePath string) (*ImportResult, error)
	ImportRosterBundle(ctx context.Context, bundle *importer.RosterBundle) (*ImportResult, error)
}
