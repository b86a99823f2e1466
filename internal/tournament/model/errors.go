package model

import "errors"

var (
	// ErrInvalidTeamCount is returned when a bracket is not built from exactly 8 teams.
	ErrInvalidTeamCount = errors.New("tournament requires exactly 8 teams")

	// ErrDuplicateTeam is returned when a team id is listed twice or is empty.
	ErrDuplicateTeam = errors.New("tournament teams must be 8 distinct ids")

	// ErrTournamentNotFound is returned when tournament is not found.
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrNoActiveTournament is returned when no tournament is active.
	ErrNoActiveTournament = errors.New("no active tournament")

	// ErrTournamentInactive is returned when a match of a finished or reset tournament is played.
	ErrTournamentInactive = errors.New("tournament is not active")
)
