package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visithercegovina/tours-backend/internal/api/httpx"
	"github.com/visithercegovina/tours-backend/internal/auth"
	"github.com/visithercegovina/tours-backend/internal/reviews/domain"
	"github.com/visithercegovina/tours-backend/internal/reviews/service"
	toursdomain "github.com/visithercegovina/tours-backend/internal/tours/domain"
)

type addReq struct {
	Review struct {
		TourID  string `json:"tourId"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	} `json:"review"`
}

type successResp struct {
	Success bool `json:"success"`
}

type Handler struct {
	reviews *service.ReviewService
}

func NewHandler(reviews *service.ReviewService) *Handler {
	return &Handler{reviews: reviews}
}

func (h *Handler) listByTour(c *gin.Context) {
	items, err := h.reviews.ListByTour(c.Request.Context(), c.Param("tourId"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) add(c *gin.Context) {
	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, httpx.Invalid("invalid body"))
		return
	}

	caller := auth.CallerFrom(c)
	err := h.reviews.Add(c.Request.Context(), caller, req.Review.TourID, req.Review.Rating, req.Review.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyReviewed):
			httpx.Fail(c, httpx.Conflict("You have already reviewed this tour"))
		case errors.Is(err, domain.ErrInvalidRating), errors.Is(err, domain.ErrTourIDRequired):
			httpx.Fail(c, httpx.Invalid(err.Error()))
		case errors.Is(err, toursdomain.ErrTourNotFound):
			httpx.Fail(c, httpx.NotFound("Tour not found"))
		default:
			httpx.Fail(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, successResp{Success: true})
}
