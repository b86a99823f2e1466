// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/database/dberr"
	teamModel "github.com/festy23/nations_league/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a team together with its squad.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID finds team by id, squad included.
	GetByID(ctx context.Context, id string) (*teamModel.Team, error)

	// GetByIDs returns the teams with the given ids, squads included; unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]teamModel.Team, error)

	// GetByRepresentative finds the team owned by a representative.
	GetByRepresentative(ctx context.Context, representativeID string) (*teamModel.Team, error)

	// CountryExists reports whether the country already has a team.
	CountryExists(ctx context.Context, country string) (bool, error)

	// List returns all teams ordered by registration, squads included.
	List(ctx context.Context) ([]teamModel.Team, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func preloadSquad(db *gorm.DB) *gorm.DB {
	return db.Order("squad_order ASC")
}

// Create inserts a team together with its squad.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	err := r.db.WithContext(ctx).Create(team).Error
	if err != nil {
		if dberr.IsDuplicate(err) {
			return teamModel.ErrTeamExists
		}
		r.logger.Errorw("failed to create team", "country", team.Country, "error", err)
		return err
	}
	return nil
}

// GetByID finds team by id, squad included.
func (r *repository) GetByID(ctx context.Context, id string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Squad", preloadSquad).
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByIDs returns the teams with the given ids, squads included.
func (r *repository) GetByIDs(ctx context.Context, ids []string) ([]teamModel.Team, error) {
	teams := []teamModel.Team{}
	if len(ids) == 0 {
		return teams, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Squad", preloadSquad).
		Where("id IN ?", ids).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// GetByRepresentative finds the team owned by a representative.
func (r *repository) GetByRepresentative(ctx context.Context, representativeID string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("representative_id = ?", representativeID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// CountryExists reports whether the country already has a team.
func (r *repository) CountryExists(ctx context.Context, country string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("country = ?", country).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns all teams ordered by registration, squads included.
func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	teams := []teamModel.Team{}
	err := r.db.WithContext(ctx).
		Preload("Squad", preloadSquad).
		Order("created_at ASC, country ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}
