package model

import (
	"time"

	matchModel "github.com/festy23/nations_league/internal/match/model"
)

// CreateRequest lists the teams of a new tournament.
type CreateRequest struct {
	TeamIDs []string `json:"team_ids" binding:"required"`
}

// RoundMatches are the matches of one round, ordered by slot.
type RoundMatches struct {
	Round   matchModel.Round   `json:"round"`
	Matches []matchModel.Match `json:"matches"`
}

// Bracket is a tournament with every match it has produced.
type Bracket struct {
	*Tournament
	Rounds []RoundMatches `json:"rounds"`
}

// Advancement reports the outcome of a round completion check.
type Advancement struct {
	// Advanced is false when the round was incomplete or already advanced.
	Advanced     bool               `json:"advanced"`
	CurrentRound matchModel.Round   `json:"current_round"`
	Matches      []matchModel.Match `json:"matches,omitempty"`
	WinnerID     string             `json:"winner_id,omitempty"`
	WinnerName   string             `json:"winner_name,omitempty"`
}

// PlayResponse is returned after a match is played.
type PlayResponse struct {
	Message string            `json:"message"`
	Match   *matchModel.Match `json:"match"`
	// Advancement is nil when the completion check failed; it can be re-run.
	Advancement *Advancement `json:"advancement"`
}

// ResetResponse is returned by a reset.
type ResetResponse struct {
	Message      string    `json:"message"`
	TournamentID string    `json:"tournament_id,omitempty"`
	DeletedCount int64     `json:"deleted_count"`
	ResetAt      time.Time `json:"reset_at"`
}

// RebuildResponse is returned by a leaderboard rebuild.
type RebuildResponse struct {
	TournamentID string `json:"tournament_id"`
	Entries      int64  `json:"entries"`
}
