package http

import (
	"github.com/gin-gonic/gin"

	"github.com/visithercegovina/tours-backend/internal/auth/middleware"
	"github.com/visithercegovina/tours-backend/internal/tours/service"
)

// Register mounts the tour routes on /tours. Listing, per-owner listing and
// the visitor counter are public; mutations require a session.
func Register(rg *gin.RouterGroup, tours *service.TourService, verifier middleware.TokenVerifier) {
	h := NewHandler(tours)
	guarded := middleware.RequireSession(verifier)

	rg.GET("", h.list)
	rg.GET("/user/:userId", h.listByOwner)
	rg.PUT("/:id/visitors", h.incrementVisitors)

	rg.POST("", guarded, h.create)
	rg.PUT("/:id", guarded, h.patch)
	rg.DELETE("/:id", guarded, h.delete)
}
