package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepo_ListByMember(t *testing.T) {
	repo := NewSQLiteAttendanceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	second := testutil.NewTestAttendance("k1", testutil.Date(2025, 2, 1), testutil.WithCategory(domain.CategoryReserve))
	first := testutil.NewTestAttendance("k1", testutil.Date(2025, 1, 1), testutil.WithCategory(domain.CategoryEvent))
	other := testutil.NewTestAttendance("k2", testutil.Date(2025, 1, 1))
	for _, r := range []*domain.AttendanceRecord{second, first, other} {
		require.NoError(t, repo.Create(ctx, r))
	}

	recs, err := repo.ListByMember(ctx, "k1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, first.ID, recs[0].ID)
	assert.Equal(t, domain.CategoryEvent, recs[0].Category)
	assert.Equal(t, domain.CategoryReserve, recs[1].Category)
	assert.Nil(t, recs[0].SessionID)
}

func TestAttendanceRepo_ListByMember_UnknownKeyIsEmpty(t *testing.T) {
	repo := NewSQLiteAttendanceRepo(testutil.NewTestDB(t))

	recs, err := repo.ListByMember(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestAttendanceRepo_ListAllGroupsByKey(t *testing.T) {
	repo := NewSQLiteAttendanceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(ctx, testutil.NewTestAttendance("a", testutil.Date(2025, 1, i))))
	}
	require.NoError(t, repo.Create(ctx, testutil.NewTestAttendance("b", testutil.Date(2025, 1, 1))))

	grouped, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, grouped, 2)
	assert.Len(t, grouped["a"], 3)
	assert.Len(t, grouped["b"], 1)
}

func TestAttendanceRepo_DeleteByMember(t *testing.T) {
	repo := NewSQLiteAttendanceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestAttendance("a", testutil.Date(2025, 1, 1))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAttendance("a", testutil.Date(2025, 1, 2))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAttendance("b", testutil.Date(2025, 1, 1))))

	n, err := repo.DeleteByMember(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	grouped, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.NotContains(t, grouped, "a")
	assert.Len(t, grouped["b"], 1)
}
