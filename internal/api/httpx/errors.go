package httpx

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an API-visible failure with a fixed HTTP status. Handlers return
// these from services untouched; anything else is treated as internal.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string { return e.Msg }

// The legacy proxy collapsed bad input, bad credentials and conflicts into
// 400, and the client only checks response.ok. Kept as-is for wire
// compatibility.
func Invalid(msg string) *Error         { return &Error{Status: http.StatusBadRequest, Msg: msg} }
func Unauthenticated(msg string) *Error { return &Error{Status: http.StatusBadRequest, Msg: msg} }
func Conflict(msg string) *Error        { return &Error{Status: http.StatusBadRequest, Msg: msg} }
func Forbidden(msg string) *Error       { return &Error{Status: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) *Error        { return &Error{Status: http.StatusNotFound, Msg: msg} }

// Fail writes the error-shaped response for err and logs internal failures.
// Every error body is {"error": message}.
func Fail(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Msg})
		return
	}

	log.Printf("[http] internal error: method=%s path=%s err=%v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// Abort is Fail for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
