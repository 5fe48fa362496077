package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUID   = "firebase_uid"
	CtxEmail = "email"
)

// Caller is the verified identity bound to a request by the session guard.
type Caller struct {
	UID   string
	Email string
}

// CallerFrom extracts the verified caller from the Gin context. UID is empty
// when no session guard ran on the route.
func CallerFrom(c *gin.Context) Caller {
	return Caller{
		UID:   strings.TrimSpace(c.GetString(CtxUID)),
		Email: strings.TrimSpace(c.GetString(CtxEmail)),
	}
}
