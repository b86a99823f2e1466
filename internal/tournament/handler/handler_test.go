package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/apierror"
	leaderboardModel "github.com/festy23/nations_league/internal/leaderboard/model"
	leaderboardService "github.com/festy23/nations_league/internal/leaderboard/service"
	matchModel "github.com/festy23/nations_league/internal/match/model"
	teamModel "github.com/festy23/nations_league/internal/team/model"
	"github.com/festy23/nations_league/internal/tournament/model"
	"github.com/festy23/nations_league/internal/tournament/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, teamIDs []string) (*model.Bracket, error) {
	args := m.Called(ctx, teamIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bracket), args.Error(1)
}

func (m *mockService) GetCurrent(ctx context.Context) (*model.Bracket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bracket), args.Error(1)
}

func (m *mockService) GetBracket(ctx context.Context, id string) (*model.Bracket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bracket), args.Error(1)
}

func (m *mockService) AdvanceRound(
	ctx context.Context,
	tournamentID string,
	round matchModel.Round,
) (*model.Advancement, error) {
	args := m.Called(ctx, tournamentID, round)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Advancement), args.Error(1)
}

func (m *mockService) PlayMatch(ctx context.Context, matchID string, mode matchModel.Mode) (*model.PlayResponse, error) {
	args := m.Called(ctx, matchID, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlayResponse), args.Error(1)
}

func (m *mockService) Reset(ctx context.Context) (*model.ResetResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResetResponse), args.Error(1)
}

type mockLeaderboard struct {
	mock.Mock
}

func (m *mockLeaderboard) GoalLeaders(ctx context.Context, tournamentID string, limit int) ([]leaderboardModel.Entry, error) {
	args := m.Called(ctx, tournamentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]leaderboardModel.Entry), args.Error(1)
}

func (m *mockLeaderboard) Rebuild(ctx context.Context, tournamentID string) (int64, error) {
	args := m.Called(ctx, tournamentID)
	return args.Get(0).(int64), args.Error(1)
}

var (
	_ service.Service            = (*mockService)(nil)
	_ leaderboardService.Service = (*mockLeaderboard)(nil)
)

func setupRouter(svc *mockService, lb *mockLeaderboard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(svc, lb, zap.NewNop().Sugar())

	r.GET("/tournament/current", h.GetCurrent)
	r.GET("/tournament/goal-leaders", h.GoalLeaders)
	r.GET("/tournament/:id", h.GetTournament)
	r.POST("/tournament/create", h.CreateTournament)
	r.POST("/tournament/reset", h.ResetTournament)
	r.POST("/tournament/matches/:matchId/play", h.PlayMatch)
	r.POST("/tournament/:id/advance", h.AdvanceRound)
	r.POST("/tournament/:id/goal-leaders/rebuild", h.RebuildLeaderboard)
	return r
}

func do(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierror.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

func bracketFixture(id string) *model.Bracket {
	return &model.Bracket{
		Tournament: &model.Tournament{
			ID:           id,
			Name:         model.Name,
			CurrentRound: matchModel.RoundQuarterfinal,
			IsActive:     true,
		},
		Rounds: []model.RoundMatches{},
	}
}

func TestHandler_CreateTournament(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	body, _ := json.Marshal(model.CreateRequest{TeamIDs: ids})

	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, ids).Return(bracketFixture("t1"), nil)

		w := do(setupRouter(svc, nil), http.MethodPost, "/tournament/create", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"t1"`)
		assert.Contains(t, w.Body.String(), `"name":"African Nations League"`)
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedCode   string
	}{
		{"wrong count", model.ErrInvalidTeamCount, http.StatusBadRequest, "INVALID_TEAM_COUNT"},
		{"duplicate team", model.ErrDuplicateTeam, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown team", fmt.Errorf("%w: zz", teamModel.ErrTeamNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Create", mock.Anything, ids).Return(nil, tt.serviceErr)

			w := do(setupRouter(svc, nil), http.MethodPost, "/tournament/create", body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, errorCode(t, w))
		})
	}

	t.Run("missing body", func(t *testing.T) {
		svc := new(mockService)
		w := do(setupRouter(svc, nil), http.MethodPost, "/tournament/create", []byte(`{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestHandler_GetCurrent(t *testing.T) {
	t.Run("none active", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetCurrent", mock.Anything).Return(nil, nil)

		w := do(setupRouter(svc, nil), http.MethodGet, "/tournament/current", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", w.Body.String())
	})

	t.Run("active", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetCurrent", mock.Anything).Return(bracketFixture("t1"), nil)

		w := do(setupRouter(svc, nil), http.MethodGet, "/tournament/current", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var b model.Bracket
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
		assert.Equal(t, "t1", b.ID)
		assert.Equal(t, matchModel.RoundQuarterfinal, b.CurrentRound)
	})
}

func TestHandler_GetTournament(t *testing.T) {
	svc := new(mockService)
	svc.On("GetBracket", mock.Anything, "missing").Return(nil, model.ErrTournamentNotFound)

	w := do(setupRouter(svc, nil), http.MethodGet, "/tournament/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestHandler_PlayMatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("PlayMatch", mock.Anything, "m1", matchModel.ModePlayed).Return(&model.PlayResponse{
			Message:     "Match played with AI commentary successfully",
			Match:       &matchModel.Match{ID: "m1", Status: matchModel.StatusCompleted},
			Advancement: &model.Advancement{CurrentRound: matchModel.RoundQuarterfinal},
		}, nil)

		w := do(setupRouter(svc, nil), http.MethodPost, "/tournament/matches/m1/play", []byte(`{"mode":"played"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.PlayResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "m1", resp.Match.ID)
		require.NotNil(t, resp.Advancement)
		assert.False(t, resp.Advancement.Advanced)
	})

	t.Run("missing mode", func(t *testing.T) {
		svc := new(mockService)
		w := do(setupRouter(svc, nil), http.MethodPost, "/tournament/matches/m1/play", []byte(`{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_MODE", errorCode(t, w))
	})

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedCode   string
	}{
		{"unknown mode", matchModel.ErrInvalidMode, http.StatusBadRequest, "INVALID_MODE"},
		{"match not found", matchModel.ErrMatchNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"already completed", matchModel.ErrMatchAlreadyCompleted, http.StatusConflict, "MATCH_COMPLETED"},
		{"inactive tournament", model.ErrTournamentInactive, http.StatusConflict, "NO_ACTIVE_TOURNAMENT"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("PlayMatch", mock.Anything, "m1", matchModel.Mode("simulated")).Return(nil, tt.serviceErr)

			w := do(setupRouter(svc, nil), http.MethodPost, "/tournament/matches/m1/play", []byte(`{"mode":"simulated"}`))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, errorCode(t, w))
		})
	}
}

func TestHandler_AdvanceRound(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("AdvanceRound", mock.Anything, "t1", matchModel.RoundQuarterfinal).
			Return(&model.Advancement{Advanced: true, CurrentRound: matchModel.RoundSemifinal}, nil)

		w := do(setupRouter(svc, nil), http.MethodPost, "/tournament/t1/advance?round=quarterfinal", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"advanced":true`)
	})

	t.Run("invalid round", func(t *testing.T) {
		svc := new(mockService)
		svc.On("AdvanceRound", mock.Anything, "t1", matchModel.Round("")).Return(nil, matchModel.ErrInvalidRound)

		w := do(setupRouter(svc, nil), http.MethodPost, "/tournament/t1/advance", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", errorCode(t, w))
	})
}

func TestHandler_ResetTournament(t *testing.T) {
	svc := new(mockService)
	svc.On("Reset", mock.Anything).Return(&model.ResetResponse{
		Message:      "Tournament reset successfully, goal leaderboard cleared",
		DeletedCount: 0,
	}, nil)

	w := do(setupRouter(svc, nil), http.MethodPost, "/tournament/reset", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted_count":0`)
}

func TestHandler_GoalLeaders(t *testing.T) {
	leaders := []leaderboardModel.Entry{{PlayerName: "Victor Osimhen", Goals: 3}}

	t.Run("explicit tournament", func(t *testing.T) {
		svc := new(mockService)
		lb := new(mockLeaderboard)
		lb.On("GoalLeaders", mock.Anything, "t1", 5).Return(leaders, nil)

		w := do(setupRouter(svc, lb), http.MethodGet, "/tournament/goal-leaders?tournament_id=t1&limit=5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Victor Osimhen")
		svc.AssertNotCalled(t, "GetCurrent", mock.Anything)
	})

	t.Run("falls back to active tournament", func(t *testing.T) {
		svc := new(mockService)
		lb := new(mockLeaderboard)
		svc.On("GetCurrent", mock.Anything).Return(bracketFixture("active"), nil)
		lb.On("GoalLeaders", mock.Anything, "active", 0).Return(leaders, nil)

		w := do(setupRouter(svc, lb), http.MethodGet, "/tournament/goal-leaders", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		lb.AssertExpectations(t)
	})

	t.Run("no active tournament", func(t *testing.T) {
		svc := new(mockService)
		lb := new(mockLeaderboard)
		svc.On("GetCurrent", mock.Anything).Return(nil, nil)

		w := do(setupRouter(svc, lb), http.MethodGet, "/tournament/goal-leaders", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
		lb.AssertNotCalled(t, "GoalLeaders", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad limit", func(t *testing.T) {
		w := do(setupRouter(new(mockService), new(mockLeaderboard)), http.MethodGet, "/tournament/goal-leaders?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_RebuildLeaderboard(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		lb := new(mockLeaderboard)
		svc.On("GetBracket", mock.Anything, "t1").Return(bracketFixture("t1"), nil)
		lb.On("Rebuild", mock.Anything, "t1").Return(int64(4), nil)

		w := do(setupRouter(svc, lb), http.MethodPost, "/tournament/t1/goal-leaders/rebuild", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"tournament_id":"t1","entries":4}`, w.Body.String())
	})

	t.Run("unknown tournament", func(t *testing.T) {
		svc := new(mockService)
		lb := new(mockLeaderboard)
		svc.On("GetBracket", mock.Anything, "nope").Return(nil, model.ErrTournamentNotFound)

		w := do(setupRouter(svc, lb), http.MethodPost, "/tournament/nope/goal-leaders/rebuild", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		lb.AssertNotCalled(t, "Rebuild", mock.Anything, mock.Anything)
	})

	t.Run("reset tournament", func(t *testing.T) {
		svc := new(mockService)
		lb := new(mockLeaderboard)
		svc.On("GetBracket", mock.Anything, "t1").Return(bracketFixture("t1"), nil)
		lb.On("Rebuild", mock.Anything, "t1").Return(int64(0), leaderboardModel.ErrTournamentReset)

		w := do(setupRouter(svc, lb), http.MethodPost, "/tournament/t1/goal-leaders/rebuild", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "TOURNAMENT_RESET", errorCode(t, w))
	})
}
