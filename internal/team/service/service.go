// Package service provides business logic layer for team module.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/squad"
	teamModel "github.com/festy23/nations_league/internal/team/model"
	"github.com/festy23/nations_league/internal/team/repository"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// RegisterTeam creates the representative's team with a generated squad.
	RegisterTeam(ctx context.Context, representativeID string, req *teamModel.RegisterTeamRequest) (*teamModel.Team, error)

	// ListTeams returns every registered team.
	ListTeams(ctx context.Context) ([]teamModel.Team, error)

	// GetTeam returns a team with its squad.
	GetTeam(ctx context.Context, id string) (*teamModel.Team, error)

	// GetTeamsByIDs returns the teams with the given ids; unknown ids are skipped.
	GetTeamsByIDs(ctx context.Context, ids []string) ([]teamModel.Team, error)

	// SeedDemoTeams creates the demo teams whose countries are still free.
	SeedDemoTeams(ctx context.Context) (*teamModel.SeedResponse, error)
}

type service struct {
	repo      repository.Repository
	db        *gorm.DB
	generator *squad.Generator
	logger    *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, generator *squad.Generator, logger *zap.SugaredLogger) Service {
	return &service{
		repo:      repo,
		db:        db,
		generator: generator,
		logger:    logger,
	}
}

// RegisterTeam creates the representative's team with a generated squad.
func (s *service) RegisterTeam(
	ctx context.Context,
	representativeID string,
	req *teamModel.RegisterTeamRequest,
) (*teamModel.Team, error) {
	country := strings.TrimSpace(req.Country)
	manager := strings.TrimSpace(req.Manager)
	if country == "" || strings.ContainsAny(country, "\r\n") {
		return nil, teamModel.ErrInvalidCountry
	}
	if manager == "" || strings.ContainsAny(manager, "\r\n") {
		return nil, teamModel.ErrInvalidManager
	}

	team := s.buildTeam(country, manager, &representativeID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		_, err := txRepo.GetByRepresentative(ctx, representativeID)
		if err == nil {
			return teamModel.ErrAlreadyHasTeam
		}
		if !errors.Is(err, teamModel.ErrTeamNotFound) {
			return err
		}

		exists, err := txRepo.CountryExists(ctx, country)
		if err != nil {
			return err
		}
		if exists {
			return teamModel.ErrTeamExists
		}

		return txRepo.Create(ctx, team)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team registered",
		"team_id", team.ID,
		"country", team.Country,
		"average_rating", team.AverageRating,
	)
	return team, nil
}

// ListTeams returns every registered team.
func (s *service) ListTeams(ctx context.Context) ([]teamModel.Team, error) {
	return s.repo.List(ctx)
}

// GetTeam returns a team with its squad.
func (s *service) GetTeam(ctx context.Context, id string) (*teamModel.Team, error) {
	if id == "" {
		return nil, teamModel.ErrTeamNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetTeamsByIDs returns the teams with the given ids.
func (s *service) GetTeamsByIDs(ctx context.Context, ids []string) ([]teamModel.Team, error) {
	return s.repo.GetByIDs(ctx, ids)
}

// SeedDemoTeams creates the demo teams whose countries are still free.
func (s *service) SeedDemoTeams(ctx context.Context) (*teamModel.SeedResponse, error) {
	resp := &teamModel.SeedResponse{Teams: []teamModel.Team{}}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		for _, demo := range teamModel.DemoTeams {
			exists, err := txRepo.CountryExists(ctx, demo.Country)
			if err != nil {
				return err
			}
			if exists {
				s.logger.Debugw("demo team already registered", "country", demo.Country)
				continue
			}

			team := s.buildTeam(demo.Country, demo.Manager, nil)
			if err := txRepo.Create(ctx, team); err != nil {
				return err
			}
			resp.Teams = append(resp.Teams, *team)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.Created = len(resp.Teams)
	if resp.Created == 0 {
		resp.Message = "Demo teams already exist."
	} else {
		resp.Message = "Demo teams created successfully! You can now register the 8th team and start a tournament."
	}
	s.logger.Infow("demo teams seeded", "created", resp.Created)
	return resp, nil
}

func (s *service) buildTeam(country, manager string, representativeID *string) *teamModel.Team {
	generated := s.generator.Generate(country)

	team := &teamModel.Team{
		ID:               uuid.NewString(),
		Country:          country,
		Manager:          manager,
		RepresentativeID: representativeID,
		AverageRating:    squad.TeamRating(generated),
		Squad:            make([]teamModel.Player, len(generated)),
	}
	for i, p := range generated {
		team.Squad[i] = teamModel.Player{
			ID:              uuid.NewString(),
			TeamID:          team.ID,
			SquadOrder:      i,
			Name:            p.Name,
			NaturalPosition: p.NaturalPosition,
			Ratings:         p.Ratings,
			IsCaptain:       p.IsCaptain,
		}
	}
	return team
}
