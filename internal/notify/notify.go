// Package notify delivers match results to team representatives and runs
// fire-and-forget side effects after a match is committed.
package notify

import (
	"context"
	"fmt"

	"github.com/festy23/nations_league/internal/match/model"
)

// Outcome is a match result from one team's point of view.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeDrew Outcome = "drew"
)

// MatchResult is a single notification addressed to one team's representative.
type MatchResult struct {
	To       string
	Team     string
	Opponent string
	// Score is written from Team's side, e.g. "2-1".
	Score   string
	Outcome Outcome
	// Scorers are formatted as "<name> (<minute>')".
	Scorers []string
}

// Sender delivers match result notifications.
type Sender interface {
	SendMatchResult(ctx context.Context, result MatchResult) error
}

// Perspectives builds one MatchResult per team that has a recipient address.
// recipients maps team id to e-mail.
func Perspectives(m *model.Match, recipients map[string]string) []MatchResult {
	sides := []struct {
		teamID, team, opponent string
		goalsFor, goalsAgainst int
	}{
		{m.TeamAID, m.TeamAName, m.TeamBName, m.ScoreA, m.ScoreB},
		{m.TeamBID, m.TeamBName, m.TeamAName, m.ScoreB, m.ScoreA},
	}

	results := make([]MatchResult, 0, len(sides))
	for _, side := range sides {
		to := recipients[side.teamID]
		if to == "" {
			continue
		}

		scorers := []string{}
		for _, g := range m.Goals {
			if g.TeamID == side.teamID {
				scorers = append(scorers, fmt.Sprintf("%s (%d')", g.PlayerName, g.Minute))
			}
		}

		results = append(results, MatchResult{
			To:       to,
			Team:     side.team,
			Opponent: side.opponent,
			Score:    fmt.Sprintf("%d-%d", side.goalsFor, side.goalsAgainst),
			Outcome:  outcome(side.goalsFor, side.goalsAgainst),
			Scorers:  scorers,
		})
	}
	return results
}

func outcome(goalsFor, goalsAgainst int) Outcome {
	switch {
	case goalsFor > goalsAgainst:
		return OutcomeWon
	case goalsFor < goalsAgainst:
		return OutcomeLost
	default:
		return OutcomeDrew
	}
}
