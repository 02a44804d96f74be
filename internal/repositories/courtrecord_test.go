package repositories_test

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/spermcourt/internal/court"
	"github.com/myrjola/spermcourt/internal/models"
	"github.com/myrjola/spermcourt/internal/repositories"
	"github.com/myrjola/spermcourt/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func summary(score int, record string, guilty int) court.Summary {
	return court.Summary{
		Guilty:   guilty,
		Innocent: len(record) - guilty,
		Score:    score,
		Record:   record,
		Grade:    court.Grade{Name: "GOOD"},
	}
}

func TestCourtRecordRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repositories.NewCourtRecordRepository(newTestDB(t), testhelpers.NewLogger(io.Discard))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	perfect := models.NewCourtRecord(uuid.New(), summary(350, "GIIGI", 2),
		[]court.AchievementID{court.PerfectJudge}, "Justice was served.", start)
	harsh := models.NewCourtRecord(uuid.New(), summary(220, "GGGGG", 5),
		[]court.AchievementID{court.FirstObjection, court.HarshJudge}, "", start.Add(time.Minute))
	tied := models.NewCourtRecord(uuid.New(), summary(220, "GGGGI", 4), nil, "", start.Add(time.Hour))
	for _, record := range []models.CourtRecord{tied, harsh, perfect} {
		require.NoError(t, repo.Insert(ctx, record))
	}

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	top, err := repo.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, perfect.ID, top[0].ID)
	require.Equal(t, harsh.ID, top[1].ID, "earlier trial wins ties")

	got, err := repo.Get(ctx, harsh.ID)
	require.NoError(t, err)
	require.Equal(t, harsh.RoomID, got.RoomID)
	require.Equal(t, "GGGGG", got.Record)
	require.Equal(t, 0, got.Innocent())
	require.True(t, harsh.CreatedAt.Equal(got.CreatedAt))
	require.Equal(t, []court.Achievement{
		mustAchievement(t, court.FirstObjection),
		mustAchievement(t, court.HarshJudge),
	}, got.UnlockedAchievements())

	_, err = repo.Get(ctx, uuid.New())
	require.ErrorIs(t, err, sql.ErrNoRows)

	require.Error(t, repo.Insert(ctx, perfect), "duplicate IDs are rejected")
}

func mustAchievement(t *testing.T, id court.AchievementID) court.Achievement {
	t.Helper()
	a, ok := court.LookupAchievement(id)
	require.True(t, ok)
	return a
}
