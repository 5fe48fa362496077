package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visithercegovina/tours-backend/internal/admin/service"
	"github.com/visithercegovina/tours-backend/internal/api/httpx"
	usersdomain "github.com/visithercegovina/tours-backend/internal/users/domain"
)

type Handler struct {
	admin *service.AdminService
}

func NewHandler(admin *service.AdminService) *Handler {
	return &Handler{admin: admin}
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.admin.Aggregate(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) reconcile(c *gin.Context) {
	report, err := h.admin.Reconcile(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) promote(c *gin.Context) {
	uid := c.Param("uid")

	if err := h.admin.Promote(c.Request.Context(), uid); err != nil {
		if errors.Is(err, usersdomain.ErrUserNotFound) {
			httpx.Fail(c, httpx.NotFound("User not found"))
			return
		}
		httpx.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
