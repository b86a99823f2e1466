// Package model provides data transfer objects for statistics module.
package model

// BiggestWin is the completed match with the widest score margin.
type BiggestWin struct {
	MatchID string `json:"match_id"`
	Round   string `json:"round"`
	Winner  string `json:"winner"`
	Loser   string `json:"loser"`
	Score   string `json:"score"`
	Margin  int    `json:"margin"`
}

// TournamentStatistics aggregates the matches of one tournament, or of all
// tournaments when TournamentID is empty.
type TournamentStatistics struct {
	TournamentID         string      `json:"tournament_id,omitempty"`
	TotalMatches         int         `json:"total_matches"`
	CompletedMatches     int         `json:"completed_matches"`
	SimulatedMatches     int         `json:"simulated_matches"`
	PlayedMatches        int         `json:"played_matches"`
	TotalGoals           int         `json:"total_goals"`
	AverageGoalsPerMatch float64     `json:"average_goals_per_match"`
	BiggestWin           *BiggestWin `json:"biggest_win,omitempty"`
}

// TeamStatistics is one team's record over completed matches.
type TeamStatistics struct {
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
}

// TeamsStatisticsResponse represents response for team statistics.
type TeamsStatisticsResponse struct {
	TournamentID string           `json:"tournament_id,omitempty"`
	Teams        []TeamStatistics `json:"teams"`
	Total        int              `json:"total"`
}
