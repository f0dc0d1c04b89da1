package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankRequirementRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteRankRequirementRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.RankRequirement{Rank: "Gefreiter", Months: 3, Activities: 3}))
	require.NoError(t, repo.Upsert(ctx, domain.RankRequirement{Rank: "Gefreiter", Months: 6, Activities: 0, Level: 90}))

	got, err := repo.Get(ctx, "Gefreiter")
	require.NoError(t, err)
	assert.Equal(t, domain.RankRequirement{Rank: "Gefreiter", Months: 6, Activities: 0, Level: 90}, *got)
}

func TestRankRequirementRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteRankRequirementRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "Oberst")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRankRequirementRepo_ListIsTotal(t *testing.T) {
	repo := NewSQLiteRankRequirementRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.RankRequirement{Rank: "Feldwebel", Months: 3}))

	table, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, table, 1)
	assert.Equal(t, 3, table.For("Feldwebel").Months)
	assert.True(t, table.For("Major").Unenforced())
}

func TestRankRequirementRepo_NegativeRejectedByStore(t *testing.T) {
	repo := NewSQLiteRankRequirementRepo(testutil.NewTestDB(t))

	err := repo.Upsert(context.Background(), domain.RankRequirement{Rank: "Major", Level: -5})
	assert.Error(t, err)
}
