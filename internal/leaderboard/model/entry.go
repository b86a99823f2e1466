// Package model provides leaderboard domain types.
package model

import (
	"errors"
	"time"
)

var (
	// ErrTournamentRequired is returned when a leaderboard call has no tournament id.
	ErrTournamentRequired = errors.New("tournament id is required")

	// ErrTournamentNotFound is returned when rebuilding an unknown tournament.
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrTournamentReset is returned when rebuilding a tournament whose tally was cleared by a reset.
	ErrTournamentReset = errors.New("tournament was reset, its leaderboard cannot be rebuilt")
)

// DefaultLimit is the number of goal leaders returned when no limit is given.
const DefaultLimit = 20

// Entry is a per-tournament, per-player goal tally.
type Entry struct {
	TournamentID string    `gorm:"primaryKey;column:tournament_id;type:varchar(36)"           json:"tournament_id"`
	PlayerID     string    `gorm:"primaryKey;column:player_id;type:varchar(36)"               json:"player_id"`
	PlayerName   string    `gorm:"column:player_name;type:varchar(255);not null"              json:"player_name"`
	TeamID       string    `gorm:"column:team_id;type:varchar(36);not null"                   json:"team_id"`
	TeamName     string    `gorm:"column:team_name;type:varchar(255);not null"                json:"team_name"`
	Goals        int       `gorm:"column:goals;not null;default:0"                            json:"goals"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"                                 json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Entry) TableName() string {
	return "leaderboard_entries"
}

// Goal is one scoring occurrence fed into the leaderboard.
type Goal struct {
	PlayerID   string
	PlayerName string
	TeamID     string
	TeamName   string
}

// Tally groups goals by player, keeping first-seen order and the latest display names.
func Tally(tournamentID string, goals []Goal, now time.Time) []Entry {
	index := make(map[string]int, len(goals))
	entries := make([]Entry, 0, len(goals))
	for _, g := range goals {
		if i, ok := index[g.PlayerID]; ok {
			entries[i].Goals++
			entries[i].PlayerName = g.PlayerName
			entries[i].TeamID = g.TeamID
			entries[i].TeamName = g.TeamName
			continue
		}
		index[g.PlayerID] = len(entries)
		entries = append(entries, Entry{
			TournamentID: tournamentID,
			PlayerID:     g.PlayerID,
			PlayerName:   g.PlayerName,
			TeamID:       g.TeamID,
			TeamName:     g.TeamName,
			Goals:        1,
			UpdatedAt:    now,
		})
	}
	return entries
}
