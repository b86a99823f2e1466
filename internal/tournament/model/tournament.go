// Package model provides tournament domain types.
package model

import (
	"time"

	matchModel "github.com/festy23/nations_league/internal/match/model"
)

const (
	// Name is the display name of every tournament.
	Name = "African Nations League"
	// TeamCount is the bracket size.
	TeamCount = 8
)

// Tournament is a single-elimination bracket. At most one is active.
type Tournament struct {
	ID      string   `gorm:"primaryKey;column:id;type:varchar(36)"                 json:"id"`
	Name    string   `gorm:"column:name;type:varchar(255);not null"                json:"name"`
	TeamIDs []string `gorm:"column:team_ids;type:jsonb;serializer:json;not null"   json:"team_ids"`
	// MatchIDs are the matches of the current round.
	MatchIDs     []string         `gorm:"column:match_ids;type:jsonb;serializer:json;not null" json:"match_ids"`
	CurrentRound matchModel.Round `gorm:"column:current_round;type:varchar(16);not null"       json:"current_round"`
	IsActive     bool             `gorm:"column:is_active;not null;index:idx_tournaments_single_active,unique,where:is_active" json:"is_active"`
	WinnerID     *string          `gorm:"column:winner_id;type:varchar(36)"                    json:"winner_id,omitempty"`
	WinnerName   *string          `gorm:"column:winner_name;type:varchar(255)"                 json:"winner_name,omitempty"`
	CreatedAt    time.Time        `gorm:"column:created_at;not null"                           json:"created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;not null"                           json:"-"`
	CompletedAt  *time.Time       `gorm:"column:completed_at"                                  json:"completed_at,omitempty"`
	ResetAt      *time.Time       `gorm:"column:reset_at"                                      json:"reset_at,omitempty"`
}

// TableName specifies the table name for GORM.
func (Tournament) TableName() string {
	return "tournaments"
}

// IsCompleted reports whether a champion has been declared.
func (t *Tournament) IsCompleted() bool {
	return t.CurrentRound == matchModel.RoundCompleted
}
