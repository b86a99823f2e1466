package model

// RegisterTeamRequest represents a team registration by a representative.
type RegisterTeamRequest struct {
	Country string `json:"country" binding:"required"`
	Manager string `json:"manager" binding:"required"`
}

// SeedResponse reports the demo seed outcome.
type SeedResponse struct {
	Created int    `json:"created"`
	Teams   []Team `json:"teams"`
	Message string `json:"message"`
}
