package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/visithercegovina/tours-backend/internal/api/httpx"
	"github.com/visithercegovina/tours-backend/internal/auth"
	"github.com/visithercegovina/tours-backend/internal/users/domain"
)

// UserCreator persists the profile document that accompanies a new identity.
type UserCreator interface {
	Create(ctx context.Context, user *domain.User) error
}

type Handler struct {
	identity       auth.Identity
	users          UserCreator
	seedAdminEmail string
}

func NewHandler(identity auth.Identity, users UserCreator, seedAdminEmail string) *Handler {
	return &Handler{
		identity:       identity,
		users:          users,
		seedAdminEmail: seedAdminEmail,
	}
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, httpx.Invalid("invalid body"))
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		httpx.Fail(c, httpx.Invalid("email and password are required"))
		return
	}

	ctx := c.Request.Context()

	uid, err := h.identity.CreateUser(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			httpx.Fail(c, httpx.Conflict("Email is already in use"))
			return
		}
		// Weak passwords and malformed emails come back from the
		// provider's policy, not from local validation.
		httpx.Fail(c, httpx.Invalid(err.Error()))
		return
	}

	user := &domain.User{
		UID:    uid,
		Email:  email,
		Role:   domain.RoleForEmail(email, h.seedAdminEmail),
		Status: domain.StatusActive,
	}
	if err := h.users.Create(ctx, user); err != nil {
		httpx.Fail(c, err)
		return
	}

	token, err := h.identity.MintToken(ctx, uid)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, registerResp{Success: true, Token: token, UID: uid})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, httpx.Invalid("invalid body"))
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		httpx.Fail(c, httpx.Invalid("email and password are required"))
		return
	}

	ctx := c.Request.Context()

	uid, verifiedEmail, err := h.identity.VerifyPassword(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			httpx.Fail(c, httpx.Unauthenticated("Login failed"))
			return
		}
		httpx.Fail(c, err)
		return
	}

	token, err := h.identity.MintToken(ctx, uid)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	log.Printf("[auth] login uid=%s", uid)
	c.JSON(http.StatusOK, loginResp{Success: true, Token: token, UID: uid, Email: verifiedEmail})
}
