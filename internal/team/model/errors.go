package model

import "errors"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamExists indicates that the country already has a team.
	ErrTeamExists = errors.New("team already registered for this country")
	// ErrAlreadyHasTeam indicates that the representative already registered a team.
	ErrAlreadyHasTeam = errors.New("representative already has a registered team")
	// ErrInvalidCountry indicates an empty country or one spanning several lines.
	ErrInvalidCountry = errors.New("country is required and must be a single line")
	// ErrInvalidManager indicates an empty or multi-line manager name.
	ErrInvalidManager = errors.New("manager is required and must be a single line")
)
