package http

import "github.com/gin-gonic/gin"

// Register mounts the public user routes on /users.
func Register(rg *gin.RouterGroup, users UserStore) {
	h := NewHandler(users)

	rg.GET("", h.list)
	rg.GET("/:uid", h.get)
}
