package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visithercegovina/tours-backend/internal/api/httpx"
	"github.com/visithercegovina/tours-backend/internal/auth"
	"github.com/visithercegovina/tours-backend/internal/tours/domain"
	"github.com/visithercegovina/tours-backend/internal/tours/service"
)

type Handler struct {
	tours *service.TourService
}

func NewHandler(tours *service.TourService) *Handler {
	return &Handler{tours: tours}
}

func (h *Handler) list(c *gin.Context) {
	tours, err := h.tours.ListActive(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

func (h *Handler) listByOwner(c *gin.Context) {
	tours, err := h.tours.ListByOwner(c.Request.Context(), c.Param("userId"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, httpx.Invalid("invalid body"))
		return
	}

	id, err := h.tours.Create(c.Request.Context(), auth.CallerFrom(c), req.Tour)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, createResp{Success: true, ID: id})
}

func (h *Handler) patch(c *gin.Context) {
	var req patchReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Tour == nil {
		httpx.Fail(c, httpx.Invalid("invalid body"))
		return
	}

	err := h.tours.Patch(c.Request.Context(), auth.CallerFrom(c), c.Param("id"), req.Tour)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, successResp{Success: true})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.tours.Delete(c.Request.Context(), auth.CallerFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, successResp{Success: true})
}

func (h *Handler) incrementVisitors(c *gin.Context) {
	err := h.tours.IncrementVisitors(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, successResp{Success: true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTourNotFound):
		httpx.Fail(c, httpx.NotFound("Tour not found"))
	case errors.Is(err, domain.ErrNotOwner):
		httpx.Fail(c, httpx.Forbidden("Only the owner or an admin may modify this tour"))
	case errors.Is(err, domain.ErrTitleRequired):
		httpx.Fail(c, httpx.Invalid("title is required"))
	default:
		httpx.Fail(c, err)
	}
}
