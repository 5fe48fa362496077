package http

import (
	"github.com/gin-gonic/gin"

	"github.com/visithercegovina/tours-backend/internal/auth/middleware"
	"github.com/visithercegovina/tours-backend/internal/reviews/service"
)

// Register mounts the review routes on /reviews. Listing is public,
// submission requires a session.
func Register(rg *gin.RouterGroup, reviews *service.ReviewService, verifier middleware.TokenVerifier) {
	h := NewHandler(reviews)

	rg.GET("/tour/:tourId", h.listByTour)
	rg.POST("", middleware.RequireSession(verifier), h.add)
}
