package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visithercegovina/tours-backend/internal/api/httpx"
	"github.com/visithercegovina/tours-backend/internal/users/domain"
)

// UserStore is the slice of the user repository the public user endpoints
// need.
type UserStore interface {
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
}

type Handler struct {
	users UserStore
}

func NewHandler(users UserStore) *Handler {
	return &Handler{users: users}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.users.ListActive(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	uid := c.Param("uid")

	user, err := h.users.GetByUID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httpx.Fail(c, httpx.NotFound("User not found"))
			return
		}
		httpx.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
