package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const runIDHeader = "X-Run-ID"

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, errorResponse{
		Error:   errType,
		Message: message,
	})
}

// runID returns the caller-supplied correlation ID, minting one when the
// header is absent so every audit outcome is attributable to a run.
func runID(c *gin.Context) string {
	if id := c.GetHeader(runIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}
