// Package token issues and verifies HS256 access tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/festy23/nations_league/internal/user/model"
)

const (
	claimUserID = "user_id"
	claimRole   = "role"
)

// Manager signs and parses tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a token manager.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the user carrying user_id, role, exp and iat.
func (m *Manager) Issue(userID string, role model.Role) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		claimUserID: userID,
		claimRole:   string(role),
		"exp":       now.Add(m.ttl).Unix(),
		"iat":       now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and returns the token's claims.
func (m *Manager) Parse(raw string) (*model.Claims, error) {
	if raw == "" {
		return nil, model.ErrInvalidToken
	}

	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.Join(model.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}
	userID, _ := claims[claimUserID].(string)
	role, _ := claims[claimRole].(string)
	if userID == "" || !model.Role(role).Valid() {
		return nil, model.ErrInvalidToken
	}

	return &model.Claims{UserID: userID, Role: model.Role(role)}, nil
}
