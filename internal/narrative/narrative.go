// Package narrative turns a played match's event timeline into readable commentary.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// LeagueName appears in prompts, commentary and e-mails.
const LeagueName = "African Nations League"

// ErrEmptyCommentary is returned when the generator produced nothing usable.
var ErrEmptyCommentary = errors.New("empty commentary")

// fallbackEvents is how many timeline events the fallback commentary keeps.
const fallbackEvents = 8

// Goal is a goal as narrated.
type Goal struct {
	Minute int
	Player string
	Team   string
}

// Request describes a finished match to narrate.
type Request struct {
	TeamA  string
	TeamB  string
	ScoreA int
	ScoreB int
	// Events is the synthesized match timeline in order.
	Events []string
	Goals  []Goal
	// ShootoutWinner is set when a level match went to penalties.
	ShootoutWinner string
}

// Generator produces commentary lines for a match.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]string, error)
}

// ShootoutLine announces the penalty shoot-out winner.
func ShootoutLine(winner string) string {
	return fmt.Sprintf("Penalties: %s win the shoot-out!", winner)
}

// Fallback builds deterministic commentary from the timeline. It never fails.
func Fallback(req Request) []string {
	events := req.Events
	if len(events) > fallbackEvents {
		events = events[:fallbackEvents]
	}

	lines := make([]string, 0, len(events)+len(req.Goals)+5)
	lines = append(lines,
		fmt.Sprintf("MATCH DAY! %s vs %s kicks off in the %s!", req.TeamA, req.TeamB, LeagueName),
		"The atmosphere is electric as both teams take to the field.",
	)
	lines = append(lines, events...)
	lines = append(lines, fmt.Sprintf("FULL TIME! %s %d-%d %s", req.TeamA, req.ScoreA, req.ScoreB, req.TeamB))
	if req.ShootoutWinner != "" {
		lines = append(lines, ShootoutLine(req.ShootoutWinner))
	}
	for _, g := range req.Goals {
		lines = append(lines, fmt.Sprintf("%d': %s finds the net for %s!", g.Minute, g.Player, g.Team))
	}
	lines = append(lines, "What an incredible match of African football!")
	return lines
}

// Prompt renders the instruction sent to a text-generation model.
func Prompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate realistic football match commentary for a match between %s and %s in the %s.\n\n",
		req.TeamA, req.TeamB, LeagueName)
	b.WriteString("Key match events:\n")
	b.WriteString(strings.Join(req.Events, "\n"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Final score: %s %d-%d %s\n", req.TeamA, req.ScoreA, req.ScoreB, req.TeamB)
	if len(req.Goals) > 0 {
		b.WriteString("Goals:\n")
		for _, g := range req.Goals {
			fmt.Fprintf(&b, "%d': %s (%s)\n", g.Minute, g.Player, g.Team)
		}
	}
	if req.ShootoutWinner != "" {
		fmt.Fprintf(&b, "%s won the penalty shoot-out.\n", req.ShootoutWinner)
	}

	b.WriteString("\nReturn the commentary as a JSON array of strings with minute markers.\n")
	b.WriteString(`Example: ["1': The match kicks off...", "23': GOAL! Amazing strike..."]`)
	return b.String()
}
