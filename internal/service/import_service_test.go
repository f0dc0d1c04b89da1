package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/importer"
	"github.com/alexanderramin/muster/internal/repository"
	"github.com/alexanderramin/muster/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }

func validBundle() *importer.RosterBundle {
	return &importer.RosterBundle{
		Sessions: []importer.SessionImport{
			{Ref: "s1", Title: "Training", Date: "2025-05-03"},
			{Ref: "s2", Title: "Clan-Event", Date: "2025-05-10", Maps: []string{"Foy"}},
		},
		Members: []importer.MemberImport{
			{Key: "anna", Name: "Anna", Rank: "Gefreiter", Level: ptrInt(100), JoinDate: ptrStr("2024-01-01")},
			{Name: "Bernd", Rank: "Anwerber/AW", Level: ptrInt(40)},
		},
		Attendance: map[string][]importer.AttendanceImport{
			"anna": {
				{Date: "2025-05-03", Category: "Training", SessionRef: ptrStr("s1")},
				{Date: "2025-05-10", Category: "ClanEvent", SessionRef: ptrStr("s2")},
			},
		},
		RankRequirements: map[string]importer.RequirementImport{
			"Gefreiter": {Months: ptrInt(3), Activities: ptrInt(2)},
		},
	}
}

func TestImportService_ImportsBundle(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	result, err := svc.imports.ImportRosterBundle(ctx, validBundle())
	require.NoError(t, err)
	assert.Equal(t, 2, result.MemberCount)
	assert.Equal(t, 2, result.SessionCount)
	assert.Equal(t, 2, result.AttendanceCount)
	assert.Equal(t, 1, result.RequirementCount)

	n, err := svc.sessions.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bernd, err := svc.members.GetByKey(ctx, "Bernd")
	require.NoError(t, err)
	assert.Equal(t, 40, bernd.Level)

	recs, err := svc.attendance.ListByMember(ctx, "anna")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestImportService_ImportRosterFromFile(t *testing.T) {
	svc := newTestServices(t)
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"sessions": [{"ref": "s1", "title": "Training", "date": "2025-05-03"}],
		"members": [{"name": "Anna", "rank": "Gefreiter"}],
		"attendance": {"Anna": [{"date": "2025-05-03", "category": "reserve"}]}
	}`), 0o644))

	result, err := svc.imports.ImportRoster(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.MemberCount)
	assert.Equal(t, 1, result.AttendanceCount)
}

func TestImportService_MissingFile(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.imports.ImportRoster(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}

func TestImportService_ValidationErrorsListed(t *testing.T) {
	svc := newTestServices(t)
	b := validBundle()
	b.Members[0].Rank = "Admiral"
	b.Sessions[1].Date = "10.05.2025"

	_, err := svc.imports.ImportRosterBundle(context.Background(), b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), `unknown rank "Admiral"`)
	assert.Contains(t, err.Error(), "sessions[1].date")
}

func TestImportService_RollbackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	// Exec #1 and #2 are the sessions, #3 is the first member.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 3,
		Err:    fmt.Errorf("injected member create failure"),
	}
	svc := NewImportService(domain.DefaultRankOrder(), failUoW)

	_, err := svc.ImportRosterBundle(ctx, validBundle())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected member create failure")

	n, err := repository.NewSQLiteSessionRepo(database).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "sessions must be rolled back")

	members, err := repository.NewSQLiteMemberRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestImportService_ConflictWithExistingMemberRollsBack(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	require.NoError(t, svc.members.Create(ctx, &domain.Member{Key: "anna", Name: "Anna", Rank: "Major"}))

	_, err := svc.imports.ImportRosterBundle(ctx, validBundle())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `creating member "Anna"`)

	n, err := svc.sessions.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
