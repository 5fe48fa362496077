package http

import (
	"github.com/gin-gonic/gin"

	"github.com/visithercegovina/tours-backend/internal/auth"
)

// Register mounts the auth routes on /auth.
func Register(rg *gin.RouterGroup, identity auth.Identity, users UserCreator, seedAdminEmail string) {
	h := NewHandler(identity, users, seedAdminEmail)

	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
}
