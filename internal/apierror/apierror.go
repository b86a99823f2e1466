// Package apierror writes the JSON error envelope shared by every endpoint:
//
//	{"error": {"code": "NOT_FOUND", "message": "match not found"}}
package apierror

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Detail is the body of the envelope.
type Detail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is the JSON error envelope.
type Response struct {
	Error Detail `json:"error"`
}

func envelope(code, message string) Response {
	return Response{Error: Detail{Code: code, Message: message}}
}

// Write sends the envelope with status.
func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, envelope(code, message))
}

// Abort sends the envelope and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, envelope(code, message))
}

// NotFound sends a 404 NOT_FOUND.
func NotFound(c *gin.Context, message string) {
	Write(c, http.StatusNotFound, "NOT_FOUND", message)
}

// Internal sends a 500 without leaking the cause; log it first.
func Internal(c *gin.Context) {
	Write(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
