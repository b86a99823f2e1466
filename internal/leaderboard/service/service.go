// Package service provides business logic layer for leaderboard module.
package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/leaderboard/model"
	"github.com/festy23/nations_league/internal/leaderboard/repository"
)

// Service defines the interface for leaderboard reads and maintenance.
type Service interface {
	// GoalLeaders returns the tournament's scorers ordered by goals descending.
	GoalLeaders(ctx context.Context, tournamentID string, limit int) ([]model.Entry, error)

	// Rebuild recomputes the tournament's tally from completed matches.
	// Reset tournaments are refused with model.ErrTournamentReset.
	Rebuild(ctx context.Context, tournamentID string) (int64, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new leaderboard service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// GoalLeaders returns the tournament's scorers ordered by goals descending.
func (s *service) GoalLeaders(ctx context.Context, tournamentID string, limit int) ([]model.Entry, error) {
	if tournamentID == "" {
		return nil, model.ErrTournamentRequired
	}
	if limit <= 0 {
		limit = model.DefaultLimit
	}
	return s.repo.ListByTournament(ctx, tournamentID, limit)
}

// Rebuild recomputes the tournament's tally from completed matches.
func (s *service) Rebuild(ctx context.Context, tournamentID string) (int64, error) {
	if tournamentID == "" {
		return 0, model.ErrTournamentRequired
	}

	var rebuilt int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		reset, err := txRepo.TournamentReset(ctx, tournamentID)
		if err != nil {
			return err
		}
		if reset {
			return model.ErrTournamentReset
		}

		rebuilt, err = txRepo.Rebuild(ctx, tournamentID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Infow("leaderboard rebuilt", "tournament_id", tournamentID, "entries", rebuilt)
	return rebuilt, nil
}
