package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/muster/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteMemberRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMember("Anna",
		testutil.WithKey("anna-01"),
		testutil.WithLevel(85),
		testutil.WithRank("Obergrenadier"),
		testutil.WithJoinDate(testutil.Date(2024, 3, 15)),
		testutil.WithGroup("Zug 2"),
	)
	m.Comment = "Sani"
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna-01", got.Key)
	assert.Equal(t, "Anna", got.Name)
	assert.Equal(t, 85, got.Level)
	assert.Equal(t, "Obergrenadier", got.Rank)
	assert.Equal(t, "Zug 2", got.Group)
	assert.Equal(t, "Sani", got.Comment)
	require.NotNil(t, got.JoinDate)
	assert.True(t, got.JoinDate.Equal(testutil.Date(2024, 3, 15)))
	assert.Nil(t, got.LastPromotion)
}

func TestMemberRepo_CreateFallsBackToNameAsKey(t *testing.T) {
	repo := NewSQLiteMemberRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMember("Bernd", testutil.WithKey(""))
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByKey(ctx, "Bernd")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, "Bernd", got.Key)
}

func TestMemberRepo_DuplicateKeyRejected(t *testing.T) {
	repo := NewSQLiteMemberRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestMember("A", testutil.WithKey("dup"))))
	err := repo.Create(ctx, testutil.NewTestMember("B", testutil.WithKey("dup")))
	assert.Error(t, err)
}

func TestMemberRepo_NotFound(t *testing.T) {
	repo := NewSQLiteMemberRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByKey(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
}

func TestMemberRepo_ListOrderedByName(t *testing.T) {
	repo := NewSQLiteMemberRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"carla", "Anna", "bernd"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestMember(name)))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Anna", list[0].Name)
	assert.Equal(t, "bernd", list[1].Name)
	assert.Equal(t, "carla", list[2].Name)
}

func TestMemberRepo_UpdatePersistsPromotion(t *testing.T) {
	repo := NewSQLiteMemberRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMember("Dora", testutil.WithRank("Gefreiter"))
	require.NoError(t, repo.Create(ctx, m))

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, m.Promote("Obergefreiter", now))
	require.NoError(t, repo.Update(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Obergefreiter", got.Rank)
	require.NotNil(t, got.LastPromotion)
	assert.Equal(t, "2025-06-15", got.LastPromotion.Format(dateLayout))
	assert.True(t, got.UpdatedAt.Equal(now))
}

func TestMemberRepo_UpdatePersistsNoResponse(t *testing.T) {
	repo := NewSQLiteMemberRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMember("Emil")
	m.NoResponse = 2
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByKey(ctx, m.AttendanceKey())
	require.NoError(t, err)
	assert.Equal(t, 2, got.NoResponse)

	got.NoResponse = 7
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.NoResponse)
}

func TestMemberRepo_UpdateMissing(t *testing.T) {
	repo := NewSQLiteMemberRepo(testutil.NewTestDB(t))

	err := repo.Update(context.Background(), testutil.NewTestMember("Ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemberRepo_Delete(t *testing.T) {
	repo := NewSQLiteMemberRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMember("Emil")
	require.NoError(t, repo.Create(ctx, m))
	require.NoError(t, repo.Delete(ctx, m.ID))

	_, err := repo.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
