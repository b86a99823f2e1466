package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound_Next(t *testing.T) {
	assert.Equal(t, RoundSemifinal, RoundQuarterfinal.Next())
	assert.Equal(t, RoundFinal, RoundSemifinal.Next())
	assert.Equal(t, RoundCompleted, RoundFinal.Next())
	assert.Equal(t, RoundCompleted, RoundCompleted.Next())
}

func TestRound_MatchCount(t *testing.T) {
	assert.Equal(t, 4, RoundQuarterfinal.MatchCount())
	assert.Equal(t, 2, RoundSemifinal.MatchCount())
	assert.Equal(t, 1, RoundFinal.MatchCount())
	assert.Equal(t, 0, RoundCompleted.MatchCount())
	assert.False(t, RoundCompleted.Valid())
	assert.False(t, Round("group").Valid())
}

func TestMode_Valid(t *testing.T) {
	assert.True(t, ModeSimulated.Valid())
	assert.True(t, ModePlayed.Valid())
	assert.False(t, Mode("friendly").Valid())
	assert.False(t, Mode("").Valid())
}

func TestMatch_Winner(t *testing.T) {
	base := Match{TeamAID: "a", TeamAName: "Ghana", TeamBID: "b", TeamBName: "Mali", Status: StatusCompleted}
	penaltyB := "b"
	stranger := "z"

	tests := []struct {
		name     string
		mutate   func(m *Match)
		wantID   string
		wantName string
		wantOK   bool
	}{
		{name: "team A higher", mutate: func(m *Match) { m.ScoreA, m.ScoreB = 3, 1 }, wantID: "a", wantName: "Ghana", wantOK: true},
		{name: "team B higher", mutate: func(m *Match) { m.ScoreA, m.ScoreB = 0, 2 }, wantID: "b", wantName: "Mali", wantOK: true},
		{
			name:     "tie decided on penalties",
			mutate:   func(m *Match) { m.ScoreA, m.ScoreB = 2, 2; m.PenaltyWinnerID = &penaltyB },
			wantID:   "b",
			wantName: "Mali",
			wantOK:   true,
		},
		{name: "tie without shoot-out", mutate: func(m *Match) { m.ScoreA, m.ScoreB = 1, 1 }},
		{name: "penalty winner not in match", mutate: func(m *Match) { m.PenaltyWinnerID = &stranger }},
		{name: "not completed", mutate: func(m *Match) { m.Status = StatusScheduled; m.ScoreA = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			tt.mutate(&m)
			id, name, ok := m.Winner()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantName, name)
		})
	}
}
