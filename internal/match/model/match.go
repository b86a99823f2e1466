// Package model provides match domain types.
package model

import (
	"time"
)

// Round is a bracket stage. Completed is terminal and never carries matches.
type Round string

const (
	RoundQuarterfinal Round = "quarterfinal"
	RoundSemifinal    Round = "semifinal"
	RoundFinal        Round = "final"
	RoundCompleted    Round = "completed"
)

// Next returns the round that follows r. Completed follows itself.
func (r Round) Next() Round {
	switch r {
	case RoundQuarterfinal:
		return RoundSemifinal
	case RoundSemifinal:
		return RoundFinal
	default:
		return RoundCompleted
	}
}

// MatchCount is the number of matches played in r.
func (r Round) MatchCount() int {
	switch r {
	case RoundQuarterfinal:
		return 4
	case RoundSemifinal:
		return 2
	case RoundFinal:
		return 1
	default:
		return 0
	}
}

// Valid reports whether r is a round that has matches.
func (r Round) Valid() bool {
	return r.MatchCount() > 0
}

// Rounds lists the playable rounds in bracket order.
var Rounds = []Round{RoundQuarterfinal, RoundSemifinal, RoundFinal}

// Status is the lifecycle state of a match.
type Status string

const (
	StatusScheduled Status = "scheduled"
	// StatusLive is reserved; resolution goes straight from scheduled to completed.
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Mode selects how a match is resolved.
type Mode string

const (
	ModeSimulated Mode = "simulated"
	ModePlayed    Mode = "played"
)

// Valid reports whether m is a known resolution mode.
func (m Mode) Valid() bool {
	return m == ModeSimulated || m == ModePlayed
}

// CommentarySource tells where the stored commentary came from.
type CommentarySource string

const (
	CommentaryNone CommentarySource = "none"
	// CommentaryTimeline is the summary written for simulated matches.
	CommentaryTimeline CommentarySource = "timeline"
	// CommentaryFallback is the placeholder written for played matches until narration arrives.
	CommentaryFallback CommentarySource = "fallback"
	// CommentaryNarrative is generated commentary. It is never replaced.
	CommentaryNarrative CommentarySource = "narrative"
)

// Match is one fixture of a tournament bracket.
type Match struct {
	ID               string           `gorm:"primaryKey;column:id;type:varchar(36)"                                         json:"id"`
	TournamentID     string           `gorm:"column:tournament_id;type:varchar(36);not null;uniqueIndex:idx_matches_slot,priority:1" json:"tournament_id"`
	Round            Round            `gorm:"column:round;type:varchar(16);not null;uniqueIndex:idx_matches_slot,priority:2"        json:"round"`
	Slot             int              `gorm:"column:slot;not null;uniqueIndex:idx_matches_slot,priority:3"                          json:"slot"`
	TeamAID          string           `gorm:"column:team_a_id;type:varchar(36);not null"                                    json:"team_a_id"`
	TeamBID          string           `gorm:"column:team_b_id;type:varchar(36);not null"                                    json:"team_b_id"`
	TeamAName        string           `gorm:"column:team_a_name;type:varchar(255);not null"                                 json:"team_a_name"`
	TeamBName        string           `gorm:"column:team_b_name;type:varchar(255);not null"                                 json:"team_b_name"`
	ScoreA           int              `gorm:"column:score_a;not null;default:0"                                             json:"score_a"`
	ScoreB           int              `gorm:"column:score_b;not null;default:0"                                             json:"score_b"`
	Status           Status           `gorm:"column:status;type:varchar(16);not null;default:scheduled"                    json:"status"`
	Mode             Mode             `gorm:"column:mode;type:varchar(16);not null;default:simulated"                       json:"mode"`
	Commentary       []string         `gorm:"column:commentary;type:jsonb;serializer:json;not null"                         json:"commentary"`
	CommentarySource CommentarySource `gorm:"column:commentary_source;type:varchar(16);not null;default:none"               json:"commentary_source"`
	PenaltyWinnerID  *string          `gorm:"column:penalty_winner_id;type:varchar(36)"                                     json:"penalty_winner_id,omitempty"`
	WinnerID         *string          `gorm:"column:winner_id;type:varchar(36)"                                             json:"winner_id,omitempty"`
	Goals            []GoalEvent      `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"                                json:"goals"`
	CreatedAt        time.Time        `gorm:"column:created_at;not null"                                                    json:"created_at"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;not null"                                                    json:"-"`
	CompletedAt      *time.Time       `gorm:"column:completed_at"                                                           json:"completed_at,omitempty"`
}

// TableName specifies the table name for GORM.
func (Match) TableName() string {
	return "matches"
}

// IsCompleted reports whether the match result is final.
func (m *Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

// Winner returns the winning team id and name of a completed match.
// The strictly higher score wins; a level score falls to the penalty winner.
// ok is false when the match has no winner yet.
func (m *Match) Winner() (id, name string, ok bool) {
	if !m.IsCompleted() {
		return "", "", false
	}
	switch {
	case m.ScoreA > m.ScoreB:
		return m.TeamAID, m.TeamAName, true
	case m.ScoreB > m.ScoreA:
		return m.TeamBID, m.TeamBName, true
	}
	if m.PenaltyWinnerID == nil {
		return "", "", false
	}
	switch *m.PenaltyWinnerID {
	case m.TeamAID:
		return m.TeamAID, m.TeamAName, true
	case m.TeamBID:
		return m.TeamBID, m.TeamBName, true
	}
	return "", "", false
}

// GoalEvent is a single goal attached to a match.
type GoalEvent struct {
	ID         uint64 `gorm:"primaryKey;column:id;autoIncrement"                                    json:"-"`
	MatchID    string `gorm:"column:match_id;type:varchar(36);not null;uniqueIndex:idx_goal_events_seq,priority:1" json:"-"`
	Seq        int    `gorm:"column:seq;not null;uniqueIndex:idx_goal_events_seq,priority:2"         json:"-"`
	PlayerID   string `gorm:"column:player_id;type:varchar(36);not null"                           json:"player_id"`
	PlayerName string `gorm:"column:player_name;type:varchar(255);not null"                        json:"player_name"`
	TeamID     string `gorm:"column:team_id;type:varchar(36);not null"                             json:"team_id"`
	TeamName   string `gorm:"column:team_name;type:varchar(255);not null"                          json:"team_name"`
	Minute     int    `gorm:"column:minute;not null"                                               json:"minute"`
}

// TableName specifies the table name for GORM.
func (GoalEvent) TableName() string {
	return "goal_events"
}
