package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// APIError writes an error body and aborts the handler chain.
func APIError(c *gin.Context, code int, message string, details interface{}) {
	c.AbortWithStatusJSON(code, ErrorBody{
		Error:   message,
		Details: details,
	})
}

// Message writes a plain {"message": ...} body.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
