package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/match/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Match{}, &model.GoalEvent{}))
	return db
}

func scheduled(id string, round model.Round, slot int) *model.Match {
	return &model.Match{
		ID:               id,
		TournamentID:     "t1",
		Round:            round,
		Slot:             slot,
		TeamAID:          "a" + id,
		TeamBID:          "b" + id,
		TeamAName:        "Team A " + id,
		TeamBName:        "Team B " + id,
		Status:           model.StatusScheduled,
		Mode:             model.ModeSimulated,
		Commentary:       []string{},
		CommentarySource: model.CommentaryNone,
	}
}

func TestRepository_CreateBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []*model.Match{
		scheduled("m1", model.RoundQuarterfinal, 0),
		scheduled("m2", model.RoundQuarterfinal, 1),
	}))

	t.Run("taken slot", func(t *testing.T) {
		err := repo.CreateBatch(ctx, []*model.Match{scheduled("m9", model.RoundQuarterfinal, 1)})
		assert.ErrorIs(t, err, model.ErrSlotTaken)
	})

	t.Run("empty batch", func(t *testing.T) {
		assert.NoError(t, repo.CreateBatch(ctx, nil))
	})

	matches, err := repo.ListByRound(ctx, "t1", model.RoundQuarterfinal)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "m1", matches[0].ID)
	assert.Equal(t, "m2", matches[1].ID)
	assert.Empty(t, matches[0].Commentary)
}

func TestRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrMatchNotFound)

	require.NoError(t, repo.CreateBatch(ctx, []*model.Match{scheduled("m1", model.RoundFinal, 0)}))
	require.NoError(t, repo.CreateGoals(ctx, []model.GoalEvent{
		{MatchID: "m1", Seq: 1, PlayerID: "p2", PlayerName: "Late", TeamID: "bm1", TeamName: "Team B m1", Minute: 80},
		{MatchID: "m1", Seq: 0, PlayerID: "p1", PlayerName: "Early", TeamID: "am1", TeamName: "Team A m1", Minute: 10},
	}))

	match, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, match.Goals, 2)
	assert.Equal(t, 10, match.Goals[0].Minute)
	assert.Equal(t, 80, match.Goals[1].Minute)
}

func TestRepository_Complete(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())
	ctx := context.Background()
	require.NoError(t, repo.CreateBatch(ctx, []*model.Match{scheduled("m1", model.RoundQuarterfinal, 0)}))

	now := time.Now().UTC()
	winner := "am1"
	result := &model.Match{
		ID:               "m1",
		ScoreA:           2,
		ScoreB:           0,
		Mode:             model.ModePlayed,
		Commentary:       []string{"1': kick off", "FULL TIME!"},
		CommentarySource: model.CommentaryFallback,
		WinnerID:         &winner,
		CompletedAt:      &now,
	}

	ok, err := repo.Complete(ctx, result)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Complete(ctx, result)
	require.NoError(t, err)
	assert.False(t, ok, "a completed match must not be completed twice")

	stored, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, stored.Status)
	assert.Equal(t, model.ModePlayed, stored.Mode)
	assert.Equal(t, 2, stored.ScoreA)
	assert.Equal(t, []string{"1': kick off", "FULL TIME!"}, stored.Commentary)
	require.NotNil(t, stored.WinnerID)
	assert.Equal(t, "am1", *stored.WinnerID)
	assert.NotNil(t, stored.CompletedAt)
}

func TestRepository_ReplaceFallbackCommentary(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())
	ctx := context.Background()
	require.NoError(t, repo.CreateBatch(ctx, []*model.Match{scheduled("m1", model.RoundQuarterfinal, 0)}))

	ok, err := repo.ReplaceFallbackCommentary(ctx, "m1", []string{"generated"})
	require.NoError(t, err)
	assert.False(t, ok, "scheduled match has no placeholder")

	now := time.Now().UTC()
	_, err = repo.Complete(ctx, &model.Match{
		ID:               "m1",
		Mode:             model.ModePlayed,
		ScoreA:           1,
		Commentary:       []string{"placeholder"},
		CommentarySource: model.CommentaryFallback,
		CompletedAt:      &now,
	})
	require.NoError(t, err)

	ok, err = repo.ReplaceFallbackCommentary(ctx, "m1", []string{"1': generated"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ReplaceFallbackCommentary(ctx, "m1", []string{"second"})
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1': generated"}, stored.Commentary)
	assert.Equal(t, model.CommentaryNarrative, stored.CommentarySource)
}

func TestRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())
	ctx := context.Background()

	final := scheduled("f", model.RoundFinal, 0)
	semi := scheduled("s", model.RoundSemifinal, 0)
	quarter := scheduled("q", model.RoundQuarterfinal, 0)
	other := scheduled("o", model.RoundQuarterfinal, 0)
	other.TournamentID = "t2"
	require.NoError(t, repo.CreateBatch(ctx, []*model.Match{final, semi, quarter, other}))

	all, err := repo.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	quarters, err := repo.List(ctx, model.ListFilter{TournamentID: "t1", Round: model.RoundQuarterfinal})
	require.NoError(t, err)
	require.Len(t, quarters, 1)
	assert.Equal(t, "q", quarters[0].ID)

	bracket, err := repo.ListByTournament(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, bracket, 3)
	assert.Equal(t, []model.Round{model.RoundQuarterfinal, model.RoundSemifinal, model.RoundFinal},
		[]model.Round{bracket[0].Round, bracket[1].Round, bracket[2].Round})
}

func TestRepository_ReadErrorsAreLogged(t *testing.T) {
	db := setupTestDB(t)
	core, logs := observer.New(zapcore.ErrorLevel)
	repo := New(db, zap.New(core).Sugar())
	ctx := context.Background()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.GetByID(ctx, "m1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrMatchNotFound)
	_, err = repo.ListByRound(ctx, "t1", model.RoundFinal)
	require.Error(t, err)
	_, err = repo.ListByTournament(ctx, "t1")
	require.Error(t, err)
	_, err = repo.List(ctx, model.ListFilter{TournamentID: "t1"})
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("failed to get match").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to list round matches").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to list tournament matches").Len())
	require.Equal(t, 1, logs.FilterMessage("failed to list matches").Len())
	assert.Equal(t, "t1", logs.FilterMessage("failed to list matches").All()[0].ContextMap()["tournament_id"])
}
