// Package repository provides data access layer for leaderboard module.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/nations_league/internal/leaderboard/model"
)

// Repository defines the interface for leaderboard data access operations.
type Repository interface {
	// Apply adds goals to the tournament tally, one increment per goal.
	// Calling it twice for the same goals counts them twice.
	Apply(ctx context.Context, tournamentID string, goals []model.Goal) error

	// ListByTournament returns entries ordered by goals descending.
	// A non-positive limit returns every entry.
	ListByTournament(ctx context.Context, tournamentID string, limit int) ([]model.Entry, error)

	// DeleteByTournament removes every entry of a tournament and reports how many were removed.
	DeleteByTournament(ctx context.Context, tournamentID string) (int64, error)

	// Rebuild recomputes the tournament tally from completed matches' goal events.
	Rebuild(ctx context.Context, tournamentID string) (int64, error)

	// TournamentReset reports whether the tournament was reset.
	// Unknown ids return model.ErrTournamentNotFound.
	TournamentReset(ctx context.Context, tournamentID string) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a new leaderboard repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger, now: time.Now}
}

// Apply adds goals to the tournament tally, one increment per goal.
func (r *repository) Apply(ctx context.Context, tournamentID string, goals []model.Goal) error {
	for _, entry := range model.Tally(tournamentID, goals, r.now().UTC()) {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "tournament_id"}, {Name: "player_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"goals":       gorm.Expr("leaderboard_entries.goals + excluded.goals"),
					"player_name": gorm.Expr("excluded.player_name"),
					"team_id":     gorm.Expr("excluded.team_id"),
					"team_name":   gorm.Expr("excluded.team_name"),
					"updated_at":  gorm.Expr("excluded.updated_at"),
				}),
			}).
			Create(&entry).Error
		if err != nil {
			r.logger.Errorw("failed to apply goals to leaderboard",
				"tournament_id", tournamentID,
				"player_id", entry.PlayerID,
				"error", err,
			)
			return err
		}
	}
	return nil
}

// ListByTournament returns entries ordered by goals descending, ties by player name.
func (r *repository) ListByTournament(ctx context.Context, tournamentID string, limit int) ([]model.Entry, error) {
	entries := []model.Entry{}
	query := r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("goals DESC").
		Order("player_name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteByTournament removes every entry of a tournament.
func (r *repository) DeleteByTournament(ctx context.Context, tournamentID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Delete(&model.Entry{})
	if result.Error != nil {
		r.logger.Errorw("failed to clear leaderboard", "tournament_id", tournamentID, "error", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

const rebuildQuery = `
INSERT INTO leaderboard_entries (tournament_id, player_id, player_name, team_id, team_name, goals, updated_at)
SELECT m.tournament_id, g.player_id, MAX(g.player_name), MAX(g.team_id), MAX(g.team_name), COUNT(*), ?
FROM goal_events g
JOIN matches m ON m.id = g.match_id
WHERE m.tournament_id = ? AND m.status = 'completed'
GROUP BY m.tournament_id, g.player_id`

// Rebuild recomputes the tournament tally from completed matches' goal events.
// Callers run it inside a transaction so readers never see the empty intermediate state.
func (r *repository) Rebuild(ctx context.Context, tournamentID string) (int64, error) {
	if _, err := r.DeleteByTournament(ctx, tournamentID); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Exec(rebuildQuery, r.now().UTC(), tournamentID)
	if result.Error != nil {
		r.logger.Errorw("failed to rebuild leaderboard", "tournament_id", tournamentID, "error", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// TournamentReset reports whether the tournament was reset.
func (r *repository) TournamentReset(ctx context.Context, tournamentID string) (bool, error) {
	var row struct {
		Total int64
		Reset int64
	}
	err := r.db.WithContext(ctx).
		Raw("SELECT COUNT(*) AS total, COUNT(reset_at) AS reset FROM tournaments WHERE id = ?", tournamentID).
		Scan(&row).Error
	if err != nil {
		r.logger.Errorw("failed to get tournament reset state", "tournament_id", tournamentID, "error", err)
		return false, err
	}
	if row.Total == 0 {
		return false, model.ErrTournamentNotFound
	}
	return row.Reset > 0, nil
}
