// Package service provides business logic layer for match module.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	leaderboardModel "github.com/festy23/nations_league/internal/leaderboard/model"
	leaderboardRepository "github.com/festy23/nations_league/internal/leaderboard/repository"
	"github.com/festy23/nations_league/internal/match/model"
	"github.com/festy23/nations_league/internal/match/repository"
	"github.com/festy23/nations_league/internal/match/resolver"
	"github.com/festy23/nations_league/internal/metrics"
	"github.com/festy23/nations_league/internal/narrative"
	"github.com/festy23/nations_league/internal/notify"
	teamModel "github.com/festy23/nations_league/internal/team/model"
	teamRepository "github.com/festy23/nations_league/internal/team/repository"
	userRepository "github.com/festy23/nations_league/internal/user/repository"
)

// Service defines the interface for match business logic operations.
type Service interface {
	// Resolve decides a scheduled match. The result, its goals and the
	// leaderboard update are committed together, exactly once per match.
	Resolve(ctx context.Context, matchID string, mode model.Mode) (*model.Match, error)

	// List returns matches matching the filter.
	List(ctx context.Context, filter model.ListFilter) ([]model.Match, error)

	// Get returns a match with its goals.
	Get(ctx context.Context, id string) (*model.Match, error)
}

// Collaborators are the optional side effects run after a match is committed.
// Nil fields disable the corresponding effect.
type Collaborators struct {
	Narrative  narrative.Generator
	Mailer     notify.Sender
	Dispatcher *notify.Dispatcher
	Metrics    *metrics.Recorder
}

type service struct {
	repo     repository.Repository
	teams    teamRepository.Repository
	users    userRepository.Repository
	db       *gorm.DB
	resolver *resolver.Resolver
	collab   Collaborators
	now      func() time.Time
	logger   *zap.SugaredLogger
}

// New creates a new match service instance.
func New(
	repo repository.Repository,
	teams teamRepository.Repository,
	users userRepository.Repository,
	db *gorm.DB,
	res *resolver.Resolver,
	collab Collaborators,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:     repo,
		teams:    teams,
		users:    users,
		db:       db,
		resolver: res,
		collab:   collab,
		now:      time.Now,
		logger:   logger,
	}
}

// Resolve decides a scheduled match.
func (s *service) Resolve(ctx context.Context, matchID string, mode model.Mode) (*model.Match, error) {
	if !mode.Valid() {
		return nil, model.ErrInvalidMode
	}

	match, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.IsCompleted() {
		return nil, model.ErrMatchAlreadyCompleted
	}

	teamA, teamB, err := s.loadTeams(ctx, match)
	if err != nil {
		return nil, err
	}

	result, err := s.resolver.Resolve(mode, teamA, teamB)
	if err != nil {
		return nil, err
	}

	completedAt := s.now().UTC()
	match.ScoreA = result.ScoreA
	match.ScoreB = result.ScoreB
	match.Status = model.StatusCompleted
	match.Mode = mode
	match.Commentary = result.Commentary
	match.CommentarySource = result.CommentarySource
	match.CompletedAt = &completedAt
	if result.PenaltyWinnerID != "" {
		match.PenaltyWinnerID = &result.PenaltyWinnerID
	}
	if winnerID, _, ok := match.Winner(); ok {
		match.WinnerID = &winnerID
	}

	goals := result.Goals
	for i := range goals {
		goals[i].MatchID = match.ID
		goals[i].Seq = i + 1
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		completed, err := repository.New(tx, s.logger).Complete(ctx, match)
		if err != nil {
			return err
		}
		if !completed {
			return model.ErrMatchAlreadyCompleted
		}

		if err := repository.New(tx, s.logger).CreateGoals(ctx, goals); err != nil {
			return err
		}

		return leaderboardRepository.New(tx, s.logger).Apply(ctx, match.TournamentID, leaderboardGoals(goals))
	})
	if err != nil {
		return nil, err
	}

	s.collab.Metrics.MatchResolved(string(mode), len(goals))
	s.logger.Infow("match resolved",
		"match_id", match.ID,
		"tournament_id", match.TournamentID,
		"round", match.Round,
		"mode", mode,
		"score", fmt.Sprintf("%d-%d", match.ScoreA, match.ScoreB),
	)

	committed, err := s.repo.GetByID(ctx, match.ID)
	if err != nil {
		return nil, err
	}

	if result.Narrative != nil {
		s.generateNarrative(committed.ID, *result.Narrative)
	}
	s.notifyRepresentatives(committed, teamA, teamB)

	return committed, nil
}

// List returns matches matching the filter.
func (s *service) List(ctx context.Context, filter model.ListFilter) ([]model.Match, error) {
	if filter.Round != "" && !filter.Round.Valid() {
		return nil, model.ErrInvalidRound
	}
	return s.repo.List(ctx, filter)
}

// Get returns a match with its goals.
func (s *service) Get(ctx context.Context, id string) (*model.Match, error) {
	if id == "" {
		return nil, model.ErrMatchNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) loadTeams(ctx context.Context, match *model.Match) (*teamModel.Team, *teamModel.Team, error) {
	teams, err := s.teams.GetByIDs(ctx, []string{match.TeamAID, match.TeamBID})
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[string]*teamModel.Team, len(teams))
	for i := range teams {
		byID[teams[i].ID] = &teams[i]
	}

	teamA, okA := byID[match.TeamAID]
	teamB, okB := byID[match.TeamBID]
	switch {
	case !okA:
		return nil, nil, fmt.Errorf("%w: %s", model.ErrTeamMissing, match.TeamAID)
	case !okB:
		return nil, nil, fmt.Errorf("%w: %s", model.ErrTeamMissing, match.TeamBID)
	}
	return teamA, teamB, nil
}

func leaderboardGoals(goals []model.GoalEvent) []leaderboardModel.Goal {
	out := make([]leaderboardModel.Goal, len(goals))
	for i, g := range goals {
		out[i] = leaderboardModel.Goal{
			PlayerID:   g.PlayerID,
			PlayerName: g.PlayerName,
			TeamID:     g.TeamID,
			TeamName:   g.TeamName,
		}
	}
	return out
}

// async runs task on the dispatcher, or inline when there is none.
func (s *service) async(name string, task func(ctx context.Context) error) {
	if s.collab.Dispatcher != nil {
		s.collab.Dispatcher.Go(name, task)
		return
	}
	if err := task(context.Background()); err != nil {
		s.logger.Warnw("background task failed", "task", name, "error", err)
	}
}

// generateNarrative replaces the fallback commentary of a played match once.
func (s *service) generateNarrative(matchID string, req narrative.Request) {
	if s.collab.Narrative == nil {
		s.collab.Metrics.NarrativeFallback()
		return
	}

	s.async("narrative", func(ctx context.Context) error {
		lines, err := s.collab.Narrative.Generate(ctx, req)
		if err != nil {
			s.collab.Metrics.NarrativeFallback()
			return fmt.Errorf("match %s keeps fallback commentary: %w", matchID, err)
		}

		if req.ShootoutWinner != "" {
			if line := narrative.ShootoutLine(req.ShootoutWinner); !slices.Contains(lines, line) {
				lines = append(lines, line)
			}
		}

		replaced, err := s.repo.ReplaceFallbackCommentary(ctx, matchID, lines)
		if err != nil {
			return err
		}
		if !replaced {
			s.logger.Debugw("commentary already replaced", "match_id", matchID)
			return nil
		}
		s.logger.Infow("match commentary generated", "match_id", matchID, "lines", len(lines))
		return nil
	})
}

// notifyRepresentatives e-mails each side's representative its view of the result.
func (s *service) notifyRepresentatives(match *model.Match, teamA, teamB *teamModel.Team) {
	if s.collab.Mailer == nil {
		s.collab.Metrics.Notification("skipped")
		return
	}

	representatives := map[string]string{}
	for _, team := range []*teamModel.Team{teamA, teamB} {
		if team.RepresentativeID != nil {
			representatives[*team.RepresentativeID] = team.ID
		}
	}
	if len(representatives) == 0 {
		s.collab.Metrics.Notification("skipped")
		return
	}

	s.async("notify", func(ctx context.Context) error {
		userIDs := make([]string, 0, len(representatives))
		for id := range representatives {
			userIDs = append(userIDs, id)
		}
		users, err := s.users.GetByIDs(ctx, userIDs)
		if err != nil {
			return fmt.Errorf("failed to load representatives: %w", err)
		}

		recipients := make(map[string]string, len(users))
		for _, u := range users {
			if u.Email != "" {
				recipients[representatives[u.ID]] = u.Email
			}
		}

		var errs []error
		for _, result := range notify.Perspectives(match, recipients) {
			if err := s.collab.Mailer.SendMatchResult(ctx, result); err != nil {
				s.collab.Metrics.Notification("failed")
				errs = append(errs, err)
				continue
			}
			s.collab.Metrics.Notification("sent")
		}
		return errors.Join(errs...)
	})
}
