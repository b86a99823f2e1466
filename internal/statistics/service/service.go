// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/statistics/model"
	"github.com/festy23/nations_league/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetTournamentStatistics returns aggregates for a tournament, or for all when tournamentID is empty.
	GetTournamentStatistics(ctx context.Context, tournamentID string) (*model.TournamentStatistics, error)

	// GetTeamStatistics returns per-team records, best first.
	GetTeamStatistics(ctx context.Context, tournamentID string) (*model.TeamsStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetTournamentStatistics returns aggregates for a tournament.
func (s *service) GetTournamentStatistics(ctx context.Context, tournamentID string) (*model.TournamentStatistics, error) {
	s.logger.Debugw("GetTournamentStatistics called", "tournament_id", tournamentID)

	stats, err := s.repo.GetTournamentStatistics(ctx, tournamentID)
	if err != nil {
		s.logger.Errorw("GetTournamentStatistics failed", "error", err)
		return nil, err
	}

	s.logger.Infow("GetTournamentStatistics completed",
		"tournament_id", tournamentID,
		"completed_matches", stats.CompletedMatches,
	)
	return stats, nil
}

// GetTeamStatistics returns per-team records, best first.
func (s *service) GetTeamStatistics(ctx context.Context, tournamentID string) (*model.TeamsStatisticsResponse, error) {
	s.logger.Debugw("GetTeamStatistics called", "tournament_id", tournamentID)

	teams, err := s.repo.GetTeamStatistics(ctx, tournamentID)
	if err != nil {
		s.logger.Errorw("GetTeamStatistics failed", "error", err)
		return nil, err
	}

	if teams == nil {
		teams = []model.TeamStatistics{}
	}

	s.logger.Infow("GetTeamStatistics completed", "count", len(teams))
	return &model.TeamsStatisticsResponse{
		TournamentID: tournamentID,
		Teams:        teams,
		Total:        len(teams),
	}, nil
}
