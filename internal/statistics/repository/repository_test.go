package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	matchModel "github.com/festy23/nations_league/internal/match/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&matchModel.Match{}, &matchModel.GoalEvent{}))
	return db
}

func insertMatch(
	t *testing.T,
	db *gorm.DB,
	tournamentID string,
	slot int,
	a, b string,
	scoreA, scoreB int,
	mode matchModel.Mode,
	completed bool,
) {
	t.Helper()
	m := &matchModel.Match{
		ID:               fmt.Sprintf("%s-%d", tournamentID, slot),
		TournamentID:     tournamentID,
		Round:            matchModel.RoundQuarterfinal,
		Slot:             slot,
		TeamAID:          a,
		TeamAName:        "Team " + a,
		TeamBID:          b,
		TeamBName:        "Team " + b,
		ScoreA:           scoreA,
		ScoreB:           scoreB,
		Status:           matchModel.StatusScheduled,
		Mode:             mode,
		Commentary:       []string{},
		CommentarySource: matchModel.CommentaryNone,
	}
	if completed {
		now := time.Now().Add(time.Duration(slot) * time.Minute)
		m.Status = matchModel.StatusCompleted
		m.CompletedAt = &now
		if winner, _, ok := m.Winner(); ok {
			m.WinnerID = &winner
		}
	}
	require.NoError(t, db.Create(m).Error)
}

func TestGetTournamentStatistics(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		stats, err := repo.GetTournamentStatistics(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalMatches)
		assert.Zero(t, stats.AverageGoalsPerMatch)
		assert.Nil(t, stats.BiggestWin)
	})

	insertMatch(t, db, "t1", 0, "ng", "gh", 3, 1, matchModel.ModeSimulated, true)
	insertMatch(t, db, "t1", 1, "sn", "eg", 0, 4, matchModel.ModePlayed, true)
	insertMatch(t, db, "t1", 2, "ma", "cm", 0, 0, matchModel.ModeSimulated, false)
	insertMatch(t, db, "t2", 0, "dz", "ci", 6, 0, matchModel.ModeSimulated, true)

	t.Run("scoped to tournament", func(t *testing.T) {
		stats, err := repo.GetTournamentStatistics(ctx, "t1")
		require.NoError(t, err)

		assert.Equal(t, "t1", stats.TournamentID)
		assert.Equal(t, 3, stats.TotalMatches)
		assert.Equal(t, 2, stats.CompletedMatches)
		assert.Equal(t, 1, stats.SimulatedMatches)
		assert.Equal(t, 1, stats.PlayedMatches)
		assert.Equal(t, 8, stats.TotalGoals)
		assert.InDelta(t, 4.0, stats.AverageGoalsPerMatch, 0.001)

		require.NotNil(t, stats.BiggestWin)
		assert.Equal(t, "t1-1", stats.BiggestWin.MatchID)
		assert.Equal(t, "Team eg", stats.BiggestWin.Winner)
		assert.Equal(t, "Team sn", stats.BiggestWin.Loser)
		assert.Equal(t, "4-0", stats.BiggestWin.Score)
		assert.Equal(t, 4, stats.BiggestWin.Margin)
	})

	t.Run("all tournaments", func(t *testing.T) {
		stats, err := repo.GetTournamentStatistics(ctx, "")
		require.NoError(t, err)

		assert.Equal(t, 4, stats.TotalMatches)
		assert.Equal(t, 3, stats.CompletedMatches)
		assert.Equal(t, 14, stats.TotalGoals)
		require.NotNil(t, stats.BiggestWin)
		assert.Equal(t, "6-0", stats.BiggestWin.Score)
	})
}

func TestGetTeamStatistics(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		stats, err := repo.GetTeamStatistics(ctx, "")
		require.NoError(t, err)
		assert.NotNil(t, stats)
		assert.Empty(t, stats)
	})

	insertMatch(t, db, "t1", 0, "ng", "gh", 3, 1, matchModel.ModeSimulated, true)
	insertMatch(t, db, "t1", 1, "sn", "ng", 0, 2, matchModel.ModeSimulated, true)
	insertMatch(t, db, "t1", 2, "ma", "cm", 0, 0, matchModel.ModeSimulated, false)
	insertMatch(t, db, "t2", 0, "ng", "ci", 0, 1, matchModel.ModeSimulated, true)

	t.Run("scoped to tournament", func(t *testing.T) {
		stats, err := repo.GetTeamStatistics(ctx, "t1")
		require.NoError(t, err)
		require.Len(t, stats, 3, "scheduled matches are not counted")

		top := stats[0]
		assert.Equal(t, "ng", top.TeamID)
		assert.Equal(t, "Team ng", top.TeamName)
		assert.Equal(t, 2, top.Played)
		assert.Equal(t, 2, top.Wins)
		assert.Equal(t, 0, top.Losses)
		assert.Equal(t, 5, top.GoalsFor)
		assert.Equal(t, 1, top.GoalsAgainst)
		assert.Equal(t, 4, top.GoalDifference)

		// gh lost by 2, sn by 2; ties on difference break by id.
		assert.Equal(t, "gh", stats[1].TeamID)
		assert.Equal(t, "sn", stats[2].TeamID)
	})

	t.Run("all tournaments", func(t *testing.T) {
		stats, err := repo.GetTeamStatistics(ctx, "")
		require.NoError(t, err)

		var ng *int
		for i := range stats {
			if stats[i].TeamID == "ng" {
				ng = &stats[i].Played
				assert.Equal(t, 1, stats[i].Losses)
			}
		}
		require.NotNil(t, ng)
		assert.Equal(t, 3, *ng)
	})
}
