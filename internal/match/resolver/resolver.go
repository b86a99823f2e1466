// Package resolver decides a match: final score, goal events and commentary.
package resolver

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/match/model"
	"github.com/festy23/nations_league/internal/narrative"
	teamModel "github.com/festy23/nations_league/internal/team/model"
)

const (
	simulatedDivisor = 25.0
	playedDivisor    = 30.0
	playedMaxGoals   = 5
)

// minuteBand is a range of minutes a played-mode goal can fall in.
type minuteBand struct {
	min, max int
}

var playedGoalBands = []minuteBand{{15, 40}, {50, 70}, {75, 88}}

// Result is the outcome of resolving a match.
type Result struct {
	ScoreA int
	ScoreB int
	// Goals are ordered by minute. MatchID and Seq are left for the caller.
	Goals            []model.GoalEvent
	Commentary       []string
	CommentarySource model.CommentarySource
	// PenaltyWinnerID is set when the score is level.
	PenaltyWinnerID string
	// Narrative describes a played match for the commentary generator.
	Narrative *narrative.Request
}

// Resolver resolves matches. It never modifies the teams it is given
// and is safe for concurrent use.
type Resolver struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *zap.SugaredLogger
}

// New creates a resolver. A nil rng is replaced by a time-seeded source.
func New(rng *rand.Rand, logger *zap.SugaredLogger) *Resolver {
	if rng == nil {
		//nolint:gosec // G404: match outcomes are a game mechanic
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Resolver{rng: rng, logger: logger}
}

// Resolve dispatches on mode.
func (r *Resolver) Resolve(mode model.Mode, teamA, teamB *teamModel.Team) (*Result, error) {
	switch mode {
	case model.ModeSimulated:
		return r.Simulate(teamA, teamB), nil
	case model.ModePlayed:
		return r.Play(teamA, teamB), nil
	default:
		return nil, model.ErrInvalidMode
	}
}

// Simulate is the fast path: rating-based scores, uniform goal minutes and a
// short summary. A goalless draw is never produced.
func (r *Resolver) Simulate(teamA, teamB *teamModel.Team) *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	scoreA := r.simulatedScore(teamA.AverageRating)
	scoreB := r.simulatedScore(teamB.AverageRating)
	if scoreA == 0 && scoreB == 0 {
		if r.rng.Float64() > 0.5 {
			scoreA = 1
		} else {
			scoreB = 1
		}
	}

	uniformMinute := func() int { return r.rng.Intn(90) + 1 }
	goals := append(r.goals(teamA, scoreA, uniformMinute), r.goals(teamB, scoreB, uniformMinute)...)
	sortGoals(goals)

	result := &Result{
		ScoreA:           scoreA,
		ScoreB:           scoreB,
		Goals:            goals,
		CommentarySource: model.CommentaryTimeline,
	}
	shootoutWinner := r.shootout(result, teamA, teamB)

	commentary := make([]string, 0, len(goals)+3)
	commentary = append(commentary, fmt.Sprintf("Match Simulation: %s %d-%d %s", teamA.Country, scoreA, scoreB, teamB.Country))
	for _, g := range goals {
		commentary = append(commentary, fmt.Sprintf("%d': %s scores for %s", g.Minute, g.PlayerName, g.TeamName))
	}
	switch {
	case scoreA > scoreB:
		commentary = append(commentary, fmt.Sprintf("Simulation complete. %s wins!", teamA.Country))
	case scoreB > scoreA:
		commentary = append(commentary, fmt.Sprintf("Simulation complete. %s wins!", teamB.Country))
	default:
		commentary = append(commentary, "Simulation complete. Both teams draw!", narrative.ShootoutLine(shootoutWinner))
	}
	result.Commentary = commentary
	return result
}

// Play is the rich path: a synthesized event timeline, rating-based scores
// clamped to [0,5] and goals placed in fixed minute bands. The stored
// commentary is the deterministic fallback until generated commentary replaces it.
func (r *Resolver) Play(teamA, teamB *teamModel.Team) *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := r.timeline(teamA.Country, teamB.Country)

	scoreA := r.playedScore(teamA.AverageRating)
	scoreB := r.playedScore(teamB.AverageRating)

	bandMinute := func() int {
		band := playedGoalBands[r.rng.Intn(len(playedGoalBands))]
		return band.min + r.rng.Intn(band.max-band.min+1)
	}
	goals := append(r.goals(teamA, scoreA, bandMinute), r.goals(teamB, scoreB, bandMinute)...)
	sortGoals(goals)

	result := &Result{
		ScoreA:           scoreA,
		ScoreB:           scoreB,
		Goals:            goals,
		CommentarySource: model.CommentaryFallback,
	}

	req := &narrative.Request{
		TeamA:          teamA.Country,
		TeamB:          teamB.Country,
		ScoreA:         scoreA,
		ScoreB:         scoreB,
		Events:         events,
		Goals:          make([]narrative.Goal, len(goals)),
		ShootoutWinner: r.shootout(result, teamA, teamB),
	}
	for i, g := range goals {
		req.Goals[i] = narrative.Goal{Minute: g.Minute, Player: g.PlayerName, Team: g.TeamName}
	}

	result.Narrative = req
	result.Commentary = narrative.Fallback(*req)
	return result
}

func (r *Resolver) simulatedScore(rating int) int {
	score := int(math.Floor(float64(rating)/simulatedDivisor + r.rng.Float64()*3 - 1))
	return max(score, 0)
}

func (r *Resolver) playedScore(rating int) int {
	score := int(math.Floor(float64(rating)/playedDivisor + r.rng.Float64()*2))
	return min(max(score, 0), playedMaxGoals)
}

// shootout settles a level score with a coin flip and returns the winner's name.
func (r *Resolver) shootout(result *Result, teamA, teamB *teamModel.Team) string {
	if result.ScoreA != result.ScoreB {
		return ""
	}
	winner := teamA
	if r.rng.Intn(2) == 1 {
		winner = teamB
	}
	result.PenaltyWinnerID = winner.ID
	return winner.Country
}

// goals draws scorers uniformly from midfielders and attackers.
// A team without eligible players keeps its score but gets no goal events.
func (r *Resolver) goals(team *teamModel.Team, count int, minute func() int) []model.GoalEvent {
	if count == 0 {
		return nil
	}

	eligible := make([]teamModel.Player, 0, len(team.Squad))
	for _, p := range team.Squad {
		if p.NaturalPosition.CanScore() {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		r.logger.Warnw("no eligible scorers, goals dropped", "team_id", team.ID, "team", team.Country, "goals", count)
		return nil
	}

	goals := make([]model.GoalEvent, count)
	for i := range goals {
		scorer := eligible[r.rng.Intn(len(eligible))]
		goals[i] = model.GoalEvent{
			PlayerID:   scorer.ID,
			PlayerName: scorer.Name,
			TeamID:     team.ID,
			TeamName:   team.Country,
			Minute:     minute(),
		}
	}
	return goals
}

func sortGoals(goals []model.GoalEvent) {
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].Minute < goals[j].Minute
	})
}
