package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/statistics/model"
	"github.com/festy23/nations_league/internal/statistics/repository"
)

// mockRepository is a mock implementation of repository.Repository for unit tests.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetTournamentStatistics(ctx context.Context, tournamentID string) (*model.TournamentStatistics, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TournamentStatistics), args.Error(1)
}

func (m *mockRepository) GetTeamStatistics(ctx context.Context, tournamentID string) ([]model.TeamStatistics, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TeamStatistics), args.Error(1)
}

var _ repository.Repository = (*mockRepository)(nil)

func TestService_GetTournamentStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, zap.NewNop().Sugar())
		expected := &model.TournamentStatistics{TournamentID: "t1", TotalMatches: 7, CompletedMatches: 3}
		mockRepo.On("GetTournamentStatistics", ctx, "t1").Return(expected, nil)

		stats, err := svc.GetTournamentStatistics(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, expected, stats)
		mockRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, zap.NewNop().Sugar())
		repoErr := errors.New("database error")
		mockRepo.On("GetTournamentStatistics", ctx, "").Return(nil, repoErr)

		stats, err := svc.GetTournamentStatistics(ctx, "")
		assert.ErrorIs(t, err, repoErr)
		assert.Nil(t, stats)
	})
}

func TestService_GetTeamStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, zap.NewNop().Sugar())
		mockRepo.On("GetTeamStatistics", ctx, "t1").Return([]model.TeamStatistics{
			{TeamID: "ng", Played: 3, Wins: 3},
			{TeamID: "gh", Played: 1},
		}, nil)

		resp, err := svc.GetTeamStatistics(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, "t1", resp.TournamentID)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, "ng", resp.Teams[0].TeamID)
	})

	t.Run("nil result becomes empty list", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, zap.NewNop().Sugar())
		mockRepo.On("GetTeamStatistics", ctx, "").Return(nil, nil)

		resp, err := svc.GetTeamStatistics(ctx, "")
		require.NoError(t, err)
		assert.NotNil(t, resp.Teams)
		assert.Equal(t, 0, resp.Total)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, zap.NewNop().Sugar())
		mockRepo.On("GetTeamStatistics", ctx, "").Return(nil, errors.New("database error"))

		resp, err := svc.GetTeamStatistics(ctx, "")
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}
