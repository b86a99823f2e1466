// Package repository provides data access layer for tournament module.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/database/dberr"
	matchModel "github.com/festy23/nations_league/internal/match/model"
	"github.com/festy23/nations_league/internal/tournament/model"
)

// Repository defines the interface for tournament data access operations.
type Repository interface {
	// Create inserts a tournament.
	Create(ctx context.Context, tournament *model.Tournament) error

	// GetByID finds tournament by id.
	GetByID(ctx context.Context, id string) (*model.Tournament, error)

	// GetActive returns the active tournament.
	GetActive(ctx context.Context) (*model.Tournament, error)

	// DeactivateActive marks every active tournament inactive. A non-nil resetAt is recorded.
	DeactivateActive(ctx context.Context, resetAt *time.Time) (int64, error)

	// AdvanceRound moves an active tournament from one round to the next.
	// It reports false when the tournament is no longer in from.
	AdvanceRound(ctx context.Context, id string, from, to matchModel.Round, matchIDs []string) (bool, error)

	// Complete declares the champion of a tournament in its final.
	// It reports false when the final was already decided.
	Complete(ctx context.Context, id, winnerID, winnerName string, completedAt time.Time) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new tournament repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a tournament.
func (r *repository) Create(ctx context.Context, tournament *model.Tournament) error {
	if err := r.db.WithContext(ctx).Create(tournament).Error; err != nil {
		if dberr.IsDuplicate(err) {
			r.logger.Warnw("tournament insert conflicted", "tournament_id", tournament.ID, "error", err)
		} else {
			r.logger.Errorw("failed to create tournament", "tournament_id", tournament.ID, "error", err)
		}
		return err
	}
	return nil
}

// GetByID finds tournament by id.
func (r *repository) GetByID(ctx context.Context, id string) (*model.Tournament, error) {
	var tournament model.Tournament
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tournament).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTournamentNotFound
		}
		r.logger.Errorw("failed to get tournament", "tournament_id", id, "error", err)
		return nil, err
	}
	return &tournament, nil
}

// GetActive returns the active tournament.
func (r *repository) GetActive(ctx context.Context) (*model.Tournament, error) {
	var tournament model.Tournament
	err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&tournament).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNoActiveTournament
		}
		r.logger.Errorw("failed to get active tournament", "error", err)
		return nil, err
	}
	return &tournament, nil
}

// DeactivateActive marks every active tournament inactive.
func (r *repository) DeactivateActive(ctx context.Context, resetAt *time.Time) (int64, error) {
	updates := map[string]any{"is_active": false, "updated_at": time.Now().UTC()}
	if resetAt != nil {
		updates["reset_at"] = *resetAt
	}

	res := r.db.WithContext(ctx).
		Model(&model.Tournament{}).
		Where("is_active = ?", true).
		Updates(updates)
	if res.Error != nil {
		r.logger.Errorw("failed to deactivate tournaments", "error", res.Error)
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// AdvanceRound moves an active tournament from one round to the next.
func (r *repository) AdvanceRound(
	ctx context.Context,
	id string,
	from, to matchModel.Round,
	matchIDs []string,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Tournament{}).
		Where("id = ? AND current_round = ? AND is_active = ?", id, from, true).
		Select("current_round", "match_ids", "updated_at").
		Updates(&model.Tournament{
			CurrentRound: to,
			MatchIDs:     matchIDs,
			UpdatedAt:    time.Now().UTC(),
		})
	if res.Error != nil {
		r.logger.Errorw("failed to advance tournament", "tournament_id", id, "from", from, "error", res.Error)
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Complete declares the champion of a tournament in its final.
func (r *repository) Complete(ctx context.Context, id, winnerID, winnerName string, completedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Tournament{}).
		Where("id = ? AND current_round = ? AND is_active = ?", id, matchModel.RoundFinal, true).
		Updates(map[string]any{
			"is_active":     false,
			"current_round": matchModel.RoundCompleted,
			"winner_id":     winnerID,
			"winner_name":   winnerName,
			"completed_at":  completedAt,
			"updated_at":    completedAt,
		})
	if res.Error != nil {
		r.logger.Errorw("failed to complete tournament", "tournament_id", id, "error", res.Error)
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
