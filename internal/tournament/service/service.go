// Package service provides business logic layer for tournament module.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	leaderboardRepository "github.com/festy23/nations_league/internal/leaderboard/repository"
	matchModel "github.com/festy23/nations_league/internal/match/model"
	matchRepository "github.com/festy23/nations_league/internal/match/repository"
	matchService "github.com/festy23/nations_league/internal/match/service"
	"github.com/festy23/nations_league/internal/metrics"
	"github.com/festy23/nations_league/internal/realtime"
	teamModel "github.com/festy23/nations_league/internal/team/model"
	teamRepository "github.com/festy23/nations_league/internal/team/repository"
	"github.com/festy23/nations_league/internal/tournament/bracket"
	"github.com/festy23/nations_league/internal/tournament/model"
	"github.com/festy23/nations_league/internal/tournament/repository"
)

// Service defines the interface for tournament business logic operations.
type Service interface {
	// Create replaces the active tournament with a new bracket of 8 teams.
	Create(ctx context.Context, teamIDs []string) (*model.Bracket, error)

	// GetCurrent returns the active tournament, or nil when there is none.
	GetCurrent(ctx context.Context) (*model.Bracket, error)

	// GetBracket returns a tournament with all of its matches.
	GetBracket(ctx context.Context, id string) (*model.Bracket, error)

	// AdvanceRound checks whether round is complete and, if so, schedules the
	// next round or declares the champion. Safe to call repeatedly.
	AdvanceRound(ctx context.Context, tournamentID string, round matchModel.Round) (*model.Advancement, error)

	// PlayMatch resolves a match of the active tournament and runs the completion check.
	PlayMatch(ctx context.Context, matchID string, mode matchModel.Mode) (*model.PlayResponse, error)

	// Reset clears the active tournament's leaderboard and deactivates it.
	Reset(ctx context.Context) (*model.ResetResponse, error)
}

// Broadcaster pushes tournament events to watchers.
type Broadcaster interface {
	Publish(tournamentID, eventType string, payload any)
}

// Archiver stores the final bracket of a completed tournament.
type Archiver interface {
	ArchiveBracket(ctx context.Context, tournamentID string, snapshot any) (string, error)
}

// TaskRunner runs fire-and-forget work.
type TaskRunner interface {
	Go(name string, task func(ctx context.Context) error) bool
}

// Collaborators are optional; nil fields disable the corresponding effect.
type Collaborators struct {
	Broadcaster Broadcaster
	Archiver    Archiver
	Tasks       TaskRunner
	Metrics     *metrics.Recorder
}

type service struct {
	repo    repository.Repository
	matches matchRepository.Repository
	teams   teamRepository.Repository
	resolve matchService.Service
	db      *gorm.DB
	collab  Collaborators

	rngMu sync.Mutex
	rng   *rand.Rand

	now    func() time.Time
	logger *zap.SugaredLogger
}

// New creates a new tournament service instance. A nil rng is replaced by a time-seeded source.
func New(
	repo repository.Repository,
	matches matchRepository.Repository,
	teams teamRepository.Repository,
	resolve matchService.Service,
	db *gorm.DB,
	rng *rand.Rand,
	collab Collaborators,
	logger *zap.SugaredLogger,
) Service {
	if rng == nil {
		//nolint:gosec // G404: bracket draw is a game mechanic
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &service{
		repo:    repo,
		matches: matches,
		teams:   teams,
		resolve: resolve,
		db:      db,
		collab:  collab,
		rng:     rng,
		now:     time.Now,
		logger:  logger,
	}
}

// Create replaces the active tournament with a new bracket of 8 teams.
func (s *service) Create(ctx context.Context, teamIDs []string) (*model.Bracket, error) {
	if len(teamIDs) != model.TeamCount {
		return nil, model.ErrInvalidTeamCount
	}
	seen := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if _, dup := seen[id]; dup || id == "" {
			return nil, model.ErrDuplicateTeam
		}
		seen[id] = struct{}{}
	}

	teams, err := s.teams.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	entrants, err := entrantsInOrder(teamIDs, teams)
	if err != nil {
		return nil, err
	}

	s.rngMu.Lock()
	shuffled := bracket.Shuffle(s.rng, entrants)
	s.rngMu.Unlock()

	tournament := &model.Tournament{
		ID:           uuid.NewString(),
		Name:         model.Name,
		TeamIDs:      append([]string(nil), teamIDs...),
		CurrentRound: matchModel.RoundQuarterfinal,
		IsActive:     true,
	}
	quarterfinals, err := bracket.Pair(tournament.ID, matchModel.RoundQuarterfinal, shuffled)
	if err != nil {
		return nil, err
	}
	tournament.MatchIDs = bracket.IDs(quarterfinals)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		deactivated, err := txRepo.DeactivateActive(ctx, nil)
		if err != nil {
			return err
		}
		if deactivated > 0 {
			s.logger.Infow("previous tournament deactivated", "count", deactivated)
		}

		if err := txRepo.Create(ctx, tournament); err != nil {
			return err
		}
		return matchRepository.New(tx, s.logger).CreateBatch(ctx, quarterfinals)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("tournament created", "tournament_id", tournament.ID, "teams", len(teamIDs))

	result := &model.Bracket{
		Tournament: tournament,
		Rounds:     []model.RoundMatches{{Round: matchModel.RoundQuarterfinal, Matches: derefMatches(quarterfinals)}},
	}
	s.publish(tournament.ID, realtime.EventTournamentCreated, result)
	return result, nil
}

// GetCurrent returns the active tournament, or nil when there is none.
func (s *service) GetCurrent(ctx context.Context) (*model.Bracket, error) {
	tournament, err := s.repo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNoActiveTournament) {
			return nil, nil
		}
		return nil, err
	}
	return s.GetBracket(ctx, tournament.ID)
}

// GetBracket returns a tournament with all of its matches.
func (s *service) GetBracket(ctx context.Context, id string) (*model.Bracket, error) {
	var (
		tournament *model.Tournament
		matches    []matchModel.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournament, err = s.repo.GetByID(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matches.ListByTournament(gCtx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.Bracket{Tournament: tournament, Rounds: groupByRound(matches)}, nil
}

// AdvanceRound checks whether round is complete and moves the bracket forward.
func (s *service) AdvanceRound(
	ctx context.Context,
	tournamentID string,
	round matchModel.Round,
) (*model.Advancement, error) {
	if !round.Valid() {
		return nil, matchModel.ErrInvalidRound
	}

	tournament, err := s.repo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	idle := &model.Advancement{CurrentRound: tournament.CurrentRound}
	if !tournament.IsActive || tournament.CurrentRound != round {
		return idle, nil
	}

	matches, err := s.matches.ListByRound(ctx, tournamentID, round)
	if err != nil {
		return nil, err
	}
	if !bracket.RoundComplete(round, matches) {
		return idle, nil
	}

	winners, err := bracket.Winners(matches)
	if err != nil {
		return nil, err
	}

	if round == matchModel.RoundFinal {
		return s.complete(ctx, tournament, winners[0])
	}
	return s.advance(ctx, tournament, round, winners)
}

func (s *service) advance(
	ctx context.Context,
	tournament *model.Tournament,
	round matchModel.Round,
	winners []bracket.Entrant,
) (*model.Advancement, error) {
	next := round.Next()

	// Display names come from the teams themselves; a vanished team aborts the step.
	ids := make([]string, len(winners))
	for i, w := range winners {
		ids[i] = w.TeamID
	}
	teams, err := s.teams.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	entrants, err := entrantsInOrder(ids, teams)
	if err != nil {
		s.logger.Errorw("advancement aborted", "tournament_id", tournament.ID, "round", round, "error", err)
		return nil, fmt.Errorf("%w: %w", matchModel.ErrTeamMissing, err)
	}

	scheduled, err := bracket.Pair(tournament.ID, next, entrants)
	if err != nil {
		return nil, err
	}

	advanced := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := repository.New(tx, s.logger).AdvanceRound(ctx, tournament.ID, round, next, bracket.IDs(scheduled))
		if err != nil || !ok {
			return err
		}
		if err := matchRepository.New(tx, s.logger).CreateBatch(ctx, scheduled); err != nil {
			return err
		}
		advanced = true
		return nil
	})
	if errors.Is(err, matchModel.ErrSlotTaken) {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	if !advanced {
		s.logger.Debugw("round already advanced", "tournament_id", tournament.ID, "round", round)
		return &model.Advancement{CurrentRound: next}, nil
	}

	s.collab.Metrics.RoundAdvanced(string(next))
	s.logger.Infow("round advanced", "tournament_id", tournament.ID, "from", round, "to", next)

	result := &model.Advancement{Advanced: true, CurrentRound: next, Matches: derefMatches(scheduled)}
	s.publish(tournament.ID, realtime.EventRoundAdvanced, result)
	return result, nil
}

func (s *service) complete(
	ctx context.Context,
	tournament *model.Tournament,
	champion bracket.Entrant,
) (*model.Advancement, error) {
	ok, err := s.repo.Complete(ctx, tournament.ID, champion.TeamID, champion.Name, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return &model.Advancement{CurrentRound: matchModel.RoundCompleted}, nil
	}

	s.collab.Metrics.TournamentCompleted()
	s.logger.Infow("tournament completed", "tournament_id", tournament.ID, "champion", champion.Name)

	result := &model.Advancement{
		Advanced:     true,
		CurrentRound: matchModel.RoundCompleted,
		WinnerID:     champion.TeamID,
		WinnerName:   champion.Name,
	}
	s.publish(tournament.ID, realtime.EventTournamentCompleted, result)
	s.archive(tournament.ID)
	return result, nil
}

// PlayMatch resolves a match of the active tournament and runs the completion check.
func (s *service) PlayMatch(ctx context.Context, matchID string, mode matchModel.Mode) (*model.PlayResponse, error) {
	if !mode.Valid() {
		return nil, matchModel.ErrInvalidMode
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	tournament, err := s.repo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, err
	}
	if !tournament.IsActive {
		return nil, model.ErrTournamentInactive
	}

	resolved, err := s.resolve.Resolve(ctx, matchID, mode)
	if err != nil {
		return nil, err
	}
	s.publish(resolved.TournamentID, realtime.EventMatchCompleted, resolved)

	message := "Match simulated successfully"
	if mode == matchModel.ModePlayed {
		message = "Match played with AI commentary successfully"
	}
	resp := &model.PlayResponse{Message: message, Match: resolved}

	advancement, err := s.AdvanceRound(ctx, resolved.TournamentID, resolved.Round)
	if err != nil {
		// The match stays committed; the check can be re-run.
		s.logger.Errorw("round completion check failed",
			"tournament_id", resolved.TournamentID,
			"round", resolved.Round,
			"error", err,
		)
		return resp, nil
	}
	resp.Advancement = advancement
	return resp, nil
}

// Reset clears the active tournament's leaderboard and deactivates it.
func (s *service) Reset(ctx context.Context) (*model.ResetResponse, error) {
	resetAt := s.now().UTC()
	resp := &model.ResetResponse{
		Message: "Tournament reset successfully, goal leaderboard cleared",
		ResetAt: resetAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		tournament, err := txRepo.GetActive(ctx)
		if err != nil {
			if errors.Is(err, model.ErrNoActiveTournament) {
				return nil
			}
			return err
		}
		resp.TournamentID = tournament.ID

		deleted, err := leaderboardRepository.New(tx, s.logger).DeleteByTournament(ctx, tournament.ID)
		if err != nil {
			return err
		}
		resp.DeletedCount = deleted

		_, err = txRepo.DeactivateActive(ctx, &resetAt)
		return err
	})
	if err != nil {
		return nil, err
	}

	if resp.TournamentID == "" {
		s.logger.Infow("no active tournament to reset")
		return resp, nil
	}

	s.logger.Infow("tournament reset", "tournament_id", resp.TournamentID, "deleted_entries", resp.DeletedCount)
	s.publish(resp.TournamentID, realtime.EventTournamentReset, resp)
	return resp, nil
}

func (s *service) publish(tournamentID, eventType string, payload any) {
	if s.collab.Broadcaster != nil {
		s.collab.Broadcaster.Publish(tournamentID, eventType, payload)
	}
}

func (s *service) archive(tournamentID string) {
	if s.collab.Archiver == nil {
		return
	}

	task := func(ctx context.Context) error {
		snapshot, err := s.GetBracket(ctx, tournamentID)
		if err != nil {
			return err
		}
		_, err = s.collab.Archiver.ArchiveBracket(ctx, tournamentID, snapshot)
		return err
	}

	if s.collab.Tasks != nil {
		s.collab.Tasks.Go("archive", task)
		return
	}
	if err := task(context.Background()); err != nil {
		s.logger.Warnw("bracket archive failed", "tournament_id", tournamentID, "error", err)
	}
}

// entrantsInOrder maps ids to entrants, keeping the order of ids.
func entrantsInOrder(ids []string, teams []teamModel.Team) ([]bracket.Entrant, error) {
	byID := make(map[string]string, len(teams))
	for _, t := range teams {
		byID[t.ID] = t.Country
	}

	entrants := make([]bracket.Entrant, len(ids))
	for i, id := range ids {
		name, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", teamModel.ErrTeamNotFound, id)
		}
		entrants[i] = bracket.Entrant{TeamID: id, Name: name}
	}
	return entrants, nil
}

func groupByRound(matches []matchModel.Match) []model.RoundMatches {
	rounds := []model.RoundMatches{}
	for _, round := range matchModel.Rounds {
		var inRound []matchModel.Match
		for _, m := range matches {
			if m.Round == round {
				inRound = append(inRound, m)
			}
		}
		if len(inRound) > 0 {
			rounds = append(rounds, model.RoundMatches{Round: round, Matches: inRound})
		}
	}
	return rounds
}

func derefMatches(matches []*matchModel.Match) []matchModel.Match {
	out := make([]matchModel.Match, len(matches))
	for i, m := range matches {
		out[i] = *m
	}
	return out
}
