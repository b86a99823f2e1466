// Package repository provides data access layer for match module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/database/dberr"
	"github.com/festy23/nations_league/internal/match/model"
)

// Repository defines the interface for match data access operations.
type Repository interface {
	// CreateBatch inserts scheduled matches. A taken bracket slot fails with ErrSlotTaken.
	CreateBatch(ctx context.Context, matches []*model.Match) error

	// GetByID finds match by id, goals included.
	GetByID(ctx context.Context, id string) (*model.Match, error)

	// ListByRound returns the tournament's matches of one round ordered by slot.
	ListByRound(ctx context.Context, tournamentID string, round model.Round) ([]model.Match, error)

	// ListByTournament returns every match of a tournament with goals, in bracket order.
	ListByTournament(ctx context.Context, tournamentID string) ([]model.Match, error)

	// List returns matches matching the filter.
	List(ctx context.Context, filter model.ListFilter) ([]model.Match, error)

	// Complete stores the result of a scheduled match.
	// It reports false when the match was no longer scheduled.
	Complete(ctx context.Context, result *model.Match) (bool, error)

	// CreateGoals inserts goal events.
	CreateGoals(ctx context.Context, goals []model.GoalEvent) error

	// ReplaceFallbackCommentary swaps placeholder commentary for generated commentary.
	// It reports false when the match no longer holds placeholder commentary.
	ReplaceFallbackCommentary(ctx context.Context, matchID string, commentary []string) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new match repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func orderGoals(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

// bracketOrder sorts rounds quarterfinal first regardless of collation.
const bracketOrder = "CASE round WHEN 'quarterfinal' THEN 0 WHEN 'semifinal' THEN 1 ELSE 2 END, slot ASC"

// CreateBatch inserts scheduled matches.
func (r *repository) CreateBatch(ctx context.Context, matches []*model.Match) error {
	if len(matches) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Omit("Goals").Create(matches).Error
	if err != nil {
		if dberr.IsDuplicate(err) {
			return model.ErrSlotTaken
		}
		r.logger.Errorw("failed to create matches",
			"tournament_id", matches[0].TournamentID,
			"round", matches[0].Round,
			"error", err,
		)
		return err
	}
	return nil
}

// GetByID finds match by id, goals included.
func (r *repository) GetByID(ctx context.Context, id string) (*model.Match, error) {
	var match model.Match
	err := r.db.WithContext(ctx).
		Preload("Goals", orderGoals).
		Where("id = ?", id).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrMatchNotFound
		}
		r.logger.Errorw("failed to get match", "match_id", id, "error", err)
		return nil, err
	}
	return &match, nil
}

// ListByRound returns the tournament's matches of one round ordered by slot.
func (r *repository) ListByRound(ctx context.Context, tournamentID string, round model.Round) ([]model.Match, error) {
	matches := []model.Match{}
	err := r.db.WithContext(ctx).
		Where("tournament_id = ? AND round = ?", tournamentID, round).
		Order("slot ASC").
		Find(&matches).Error
	if err != nil {
		r.logger.Errorw("failed to list round matches", "tournament_id", tournamentID, "round", round, "error", err)
		return nil, err
	}
	return matches, nil
}

// ListByTournament returns every match of a tournament with goals, in bracket order.
func (r *repository) ListByTournament(ctx context.Context, tournamentID string) ([]model.Match, error) {
	matches := []model.Match{}
	err := r.db.WithContext(ctx).
		Preload("Goals", orderGoals).
		Where("tournament_id = ?", tournamentID).
		Order(bracketOrder).
		Find(&matches).Error
	if err != nil {
		r.logger.Errorw("failed to list tournament matches", "tournament_id", tournamentID, "error", err)
		return nil, err
	}
	return matches, nil
}

// List returns matches matching the filter.
func (r *repository) List(ctx context.Context, filter model.ListFilter) ([]model.Match, error) {
	matches := []model.Match{}
	query := r.db.WithContext(ctx).Preload("Goals", orderGoals)
	if filter.TournamentID != "" {
		query = query.Where("tournament_id = ?", filter.TournamentID)
	}
	if filter.Round != "" {
		query = query.Where("round = ?", filter.Round)
	}
	if err := query.Order("created_at ASC, slot ASC").Find(&matches).Error; err != nil {
		r.logger.Errorw("failed to list matches",
			"tournament_id", filter.TournamentID,
			"round", filter.Round,
			"error", err,
		)
		return nil, err
	}
	return matches, nil
}

// Complete stores the result of a scheduled match.
func (r *repository) Complete(ctx context.Context, result *model.Match) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Match{}).
		Where("id = ? AND status = ?", result.ID, model.StatusScheduled).
		Select(
			"score_a", "score_b", "status", "mode", "commentary", "commentary_source",
			"penalty_winner_id", "winner_id", "completed_at",
		).
		Updates(&model.Match{
			ScoreA:           result.ScoreA,
			ScoreB:           result.ScoreB,
			Status:           model.StatusCompleted,
			Mode:             result.Mode,
			Commentary:       result.Commentary,
			CommentarySource: result.CommentarySource,
			PenaltyWinnerID:  result.PenaltyWinnerID,
			WinnerID:         result.WinnerID,
			CompletedAt:      result.CompletedAt,
		})
	if res.Error != nil {
		r.logger.Errorw("failed to complete match", "match_id", result.ID, "error", res.Error)
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CreateGoals inserts goal events.
func (r *repository) CreateGoals(ctx context.Context, goals []model.GoalEvent) error {
	if len(goals) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&goals).Error; err != nil {
		r.logger.Errorw("failed to create goal events", "match_id", goals[0].MatchID, "error", err)
		return err
	}
	return nil
}

// ReplaceFallbackCommentary swaps placeholder commentary for generated commentary.
func (r *repository) ReplaceFallbackCommentary(ctx context.Context, matchID string, commentary []string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Match{}).
		Where("id = ? AND commentary_source = ?", matchID, model.CommentaryFallback).
		Select("commentary", "commentary_source").
		Updates(&model.Match{
			Commentary:       commentary,
			CommentarySource: model.CommentaryNarrative,
		})
	if res.Error != nil {
		r.logger.Errorw("failed to replace commentary", "match_id", matchID, "error", res.Error)
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
