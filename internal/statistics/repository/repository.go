// Package repository provides data access layer for statistics module.
package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	matchModel "github.com/festy23/nations_league/internal/match/model"
	"github.com/festy23/nations_league/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
// An empty tournamentID covers every tournament.
type Repository interface {
	// GetTournamentStatistics returns match and goal aggregates.
	GetTournamentStatistics(ctx context.Context, tournamentID string) (*model.TournamentStatistics, error)

	// GetTeamStatistics returns per-team records over completed matches.
	GetTeamStatistics(ctx context.Context, tournamentID string) ([]model.TeamStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

func scoped(db *gorm.DB, tournamentID string) *gorm.DB {
	if tournamentID == "" {
		return db
	}
	return db.Where("tournament_id = ?", tournamentID)
}

// GetTournamentStatistics returns match and goal aggregates.
func (r *repository) GetTournamentStatistics(ctx context.Context, tournamentID string) (*model.TournamentStatistics, error) {
	r.logger.Debugw("GetTournamentStatistics called", "tournament_id", tournamentID)

	var result struct {
		TotalMatches     int64 `gorm:"column:total_matches"`
		CompletedMatches int64 `gorm:"column:completed_matches"`
		SimulatedMatches int64 `gorm:"column:simulated_matches"`
		PlayedMatches    int64 `gorm:"column:played_matches"`
		TotalGoals       int64 `gorm:"column:total_goals"`
	}

	err := scoped(r.db.WithContext(ctx).Table("matches"), tournamentID).
		Select(`
			COUNT(*) as total_matches,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as completed_matches,
			COALESCE(SUM(CASE WHEN status = ? AND mode = ? THEN 1 ELSE 0 END), 0) as simulated_matches,
			COALESCE(SUM(CASE WHEN status = ? AND mode = ? THEN 1 ELSE 0 END), 0) as played_matches,
			COALESCE(SUM(CASE WHEN status = ? THEN score_a + score_b ELSE 0 END), 0) as total_goals
		`,
			matchModel.StatusCompleted,
			matchModel.StatusCompleted, matchModel.ModeSimulated,
			matchModel.StatusCompleted, matchModel.ModePlayed,
			matchModel.StatusCompleted,
		).
		Scan(&result).Error
	if err != nil {
		r.logger.Errorw("GetTournamentStatistics database error", "error", err)
		return nil, err
	}

	stats := &model.TournamentStatistics{
		TournamentID:     tournamentID,
		TotalMatches:     int(result.TotalMatches),
		CompletedMatches: int(result.CompletedMatches),
		SimulatedMatches: int(result.SimulatedMatches),
		PlayedMatches:    int(result.PlayedMatches),
		TotalGoals:       int(result.TotalGoals),
	}
	if stats.CompletedMatches > 0 {
		stats.AverageGoalsPerMatch = float64(stats.TotalGoals) / float64(stats.CompletedMatches)
	}

	var biggest []matchModel.Match
	err = scoped(r.db.WithContext(ctx).Model(&matchModel.Match{}), tournamentID).
		Where("status = ? AND score_a <> score_b", matchModel.StatusCompleted).
		Order("ABS(score_a - score_b) DESC, completed_at ASC").
		Limit(1).
		Find(&biggest).Error
	if err != nil {
		r.logger.Errorw("GetTournamentStatistics biggest win query failed", "error", err)
		return nil, err
	}
	if len(biggest) == 1 {
		stats.BiggestWin = biggestWin(&biggest[0])
	}

	r.logger.Debugw("GetTournamentStatistics completed", "total_matches", stats.TotalMatches)
	return stats, nil
}

func biggestWin(m *matchModel.Match) *model.BiggestWin {
	win := &model.BiggestWin{MatchID: m.ID, Round: string(m.Round)}
	if m.ScoreA > m.ScoreB {
		win.Winner, win.Loser = m.TeamAName, m.TeamBName
		win.Score = fmt.Sprintf("%d-%d", m.ScoreA, m.ScoreB)
		win.Margin = m.ScoreA - m.ScoreB
	} else {
		win.Winner, win.Loser = m.TeamBName, m.TeamAName
		win.Score = fmt.Sprintf("%d-%d", m.ScoreB, m.ScoreA)
		win.Margin = m.ScoreB - m.ScoreA
	}
	return win
}

// GetTeamStatistics returns per-team records over completed matches.
func (r *repository) GetTeamStatistics(ctx context.Context, tournamentID string) ([]model.TeamStatistics, error) {
	r.logger.Debugw("GetTeamStatistics called", "tournament_id", tournamentID)

	sides := `
		SELECT tournament_id, team_a_id AS team_id, team_a_name AS team_name,
			score_a AS goals_for, score_b AS goals_against, winner_id
		FROM matches WHERE status = @completed
		UNION ALL
		SELECT tournament_id, team_b_id, team_b_name, score_b, score_a, winner_id
		FROM matches WHERE status = @completed`

	var stats []model.TeamStatistics
	err := r.db.WithContext(ctx).
		Raw(`
			SELECT
				team_id,
				MAX(team_name) AS team_name,
				COUNT(*) AS played,
				SUM(CASE WHEN winner_id = team_id THEN 1 ELSE 0 END) AS wins,
				SUM(CASE WHEN winner_id = team_id THEN 0 ELSE 1 END) AS losses,
				SUM(goals_for) AS goals_for,
				SUM(goals_against) AS goals_against,
				SUM(goals_for) - SUM(goals_against) AS goal_difference
			FROM (`+sides+`) sides
			WHERE CAST(@tournament AS TEXT) = '' OR tournament_id = @tournament
			GROUP BY team_id
			ORDER BY wins DESC, goal_difference DESC, team_id ASC`,
			map[string]any{"completed": matchModel.StatusCompleted, "tournament": tournamentID},
		).
		Scan(&stats).Error
	if err != nil {
		r.logger.Errorw("GetTeamStatistics database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.TeamStatistics{}
	}

	r.logger.Debugw("GetTeamStatistics completed", "count", len(stats))
	return stats, nil
}
