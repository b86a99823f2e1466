package model

// PlayRequest selects the resolution mode of a match.
type PlayRequest struct {
	Mode Mode `json:"mode" binding:"required"`
}

// ListFilter narrows the match list.
type ListFilter struct {
	TournamentID string `form:"tournament_id"`
	Round        Round  `form:"round"`
}
