package http

import (
	"github.com/gin-gonic/gin"

	"github.com/visithercegovina/tours-backend/internal/admin/service"
	"github.com/visithercegovina/tours-backend/internal/auth/middleware"
)

// Register mounts the admin surface on /admin. Every route requires a valid
// session and the admin role.
func Register(rg *gin.RouterGroup, admin *service.AdminService, verifier middleware.TokenVerifier, users middleware.UserGetter) {
	h := NewHandler(admin)

	rg.Use(middleware.RequireSession(verifier), middleware.RequireAdmin(users))

	rg.GET("/stats", h.stats)
	rg.POST("/reconcile", h.reconcile)
	rg.PUT("/users/:uid/role", h.promote)
}
