package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestID stamps every response with an X-Request-ID, reusing the caller's
// value when present. Adapted from the teacher's middleware.RequestID(),
// stripped of the tenant/user context keys this single-bot surface has no
// host for.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
