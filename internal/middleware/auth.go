package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/apierror"
	userModel "github.com/festy23/nations_league/internal/user/model"
)

const (
	contextKeyUserID = "user_id"
	contextKeyRole   = "role"
)

// Authenticator verifies a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*userModel.Claims, error)
}

// Authenticate rejects requests without a valid bearer token and stores
// the caller's identity in the context.
func Authenticate(auth Authenticator, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, raw, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			apierror.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			if !errors.Is(err, userModel.ErrInvalidToken) {
				logger.Errorw("failed to authenticate request", "path", c.Request.URL.Path, "error", err)
				apierror.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
				return
			}
			apierror.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			return
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyRole, claims.Role)
		c.Next()
	}
}

// RequireRole allows only callers with one of the given roles. It must run after Authenticate.
func RequireRole(roles ...userModel.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok {
			apierror.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		apierror.Abort(c, http.StatusForbidden, "FORBIDDEN", string(roles[0])+" access required")
	}
}

// UserIDFromContext returns the authenticated user id.
func UserIDFromContext(c *gin.Context) (string, bool) {
	id := c.GetString(contextKeyUserID)
	return id, id != ""
}

// RoleFromContext returns the authenticated user's role.
func RoleFromContext(c *gin.Context) (userModel.Role, bool) {
	v, ok := c.Get(contextKeyRole)
	if !ok {
		return "", false
	}
	role, ok := v.(userModel.Role)
	return role, ok
}

