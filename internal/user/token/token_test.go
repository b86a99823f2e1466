package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/nations_league/internal/user/model"
)

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	raw, err := m.Issue("u1", model.RoleAdmin)
	require.NoError(t, err)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestManager_IssueSetsExpiry(t *testing.T) {
	fixed := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	m := NewManager("secret", 7*24*time.Hour)
	m.now = func() time.Time { return fixed }

	raw, err := m.Issue("u1", model.RoleRepresentative)
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(fixed.Unix()), claims["iat"])
	assert.Equal(t, float64(fixed.Add(7*24*time.Hour).Unix()), claims["exp"])
	assert.Equal(t, "HS256", parsed.Header["alg"])
}

func TestManager_Parse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	t.Run("empty", func(t *testing.T) {
		_, err := m.Parse("")
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		raw, err := NewManager("other", time.Hour).Issue("u1", model.RoleAdmin)
		require.NoError(t, err)

		_, err = m.Parse(raw)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewManager("secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		raw, err := expired.Issue("u1", model.RoleAdmin)
		require.NoError(t, err)

		_, err = m.Parse(raw)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "u1",
			"role":    "visitor",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = m.Parse(raw)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("none algorithm rejected", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"user_id": "u1",
			"role":    "admin",
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Parse(raw)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})
}
