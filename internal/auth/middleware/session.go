package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/visithercegovina/tours-backend/internal/api/httpx"
	"github.com/visithercegovina/tours-backend/internal/auth"
	"github.com/visithercegovina/tours-backend/internal/users/domain"
)

// TokenVerifier is the slice of auth.Identity the guards need.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (uid, email string, err error)
}

// UserGetter loads the caller's profile for role checks.
type UserGetter interface {
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
}

// RequireSession validates the session token and binds the verified identity
// to the request. The token is read from the Authorization header, falling
// back to the authToken field of the JSON body, which is where the legacy
// client carries it.
func RequireSession(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httpx.Abort(c, httpx.Unauthenticated("Auth token required"))
			return
		}

		uid, email, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			httpx.Abort(c, httpx.Unauthenticated("Invalid auth token"))
			return
		}

		c.Set(auth.CtxUID, uid)
		c.Set(auth.CtxEmail, email)

		c.Next()
	}
}

// RequireAdmin gates a route on the caller's stored role. It must run after
// RequireSession.
func RequireAdmin(users UserGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := auth.CallerFrom(c)
		if caller.UID == "" {
			httpx.Abort(c, httpx.Unauthenticated("Auth token required"))
			return
		}

		user, err := users.GetByUID(c.Request.Context(), caller.UID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				httpx.Abort(c, httpx.Forbidden("Admin role required"))
				return
			}
			httpx.Abort(c, err)
			return
		}

		if !user.IsAdmin() {
			httpx.Abort(c, httpx.Forbidden("Admin role required"))
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	bearer := c.GetHeader("Authorization")
	if strings.HasPrefix(bearer, "Bearer ") && len(bearer) > 7 {
		return bearer[7:]
	}
	return tokenFromBody(c)
}

// tokenFromBody peeks at the JSON body for the legacy authToken field and
// restores the body so handlers can still bind it.
func tokenFromBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}

	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var probe struct {
		AuthToken string `json:"authToken"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}

	return strings.TrimSpace(probe.AuthToken)
}
