// Package bracket holds the pure pairing and advancement rules of a
// single-elimination bracket.
package bracket

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	matchModel "github.com/festy23/nations_league/internal/match/model"
)

// ErrUndecided is returned when a completed match has no winner.
var ErrUndecided = errors.New("match has no winner")

// Entrant is a team placed in a bracket slot.
type Entrant struct {
	TeamID string
	Name   string
}

// Shuffle returns a shuffled copy of entrants.
func Shuffle(rng *rand.Rand, entrants []Entrant) []Entrant {
	out := append([]Entrant(nil), entrants...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Pair schedules entrants consecutively: [0] vs [1], [2] vs [3] and so on.
// Slots follow pairing order.
func Pair(tournamentID string, round matchModel.Round, entrants []Entrant) ([]*matchModel.Match, error) {
	if !round.Valid() {
		return nil, fmt.Errorf("cannot schedule matches for round %q", round)
	}
	if len(entrants) != 2*round.MatchCount() {
		return nil, fmt.Errorf("%s needs %d teams, got %d", round, 2*round.MatchCount(), len(entrants))
	}

	matches := make([]*matchModel.Match, 0, len(entrants)/2)
	for i := 0; i < len(entrants); i += 2 {
		a, b := entrants[i], entrants[i+1]
		matches = append(matches, &matchModel.Match{
			ID:               uuid.NewString(),
			TournamentID:     tournamentID,
			Round:            round,
			Slot:             i / 2,
			TeamAID:          a.TeamID,
			TeamAName:        a.Name,
			TeamBID:          b.TeamID,
			TeamBName:        b.Name,
			Status:           matchModel.StatusScheduled,
			Mode:             matchModel.ModeSimulated,
			Commentary:       []string{},
			CommentarySource: matchModel.CommentaryNone,
		})
	}
	return matches, nil
}

// RoundComplete reports whether every match of round exists and is completed.
// matches must be the round's matches.
func RoundComplete(round matchModel.Round, matches []matchModel.Match) bool {
	if !round.Valid() || len(matches) != round.MatchCount() {
		return false
	}
	for i := range matches {
		if !matches[i].IsCompleted() {
			return false
		}
	}
	return true
}

// Winners returns the winner of each match in the given order.
func Winners(matches []matchModel.Match) ([]Entrant, error) {
	winners := make([]Entrant, len(matches))
	for i := range matches {
		id, name, ok := matches[i].Winner()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUndecided, matches[i].ID)
		}
		winners[i] = Entrant{TeamID: id, Name: name}
	}
	return winners, nil
}

// IDs returns the ids of matches.
func IDs(matches []*matchModel.Match) []string {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return ids
}
