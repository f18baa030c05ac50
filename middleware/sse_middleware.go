package middleware

import (
	"github.com/gin-gonic/gin"
)

// SSEMiddleware sets the event-stream headers on routes that stream
// production events. Events are written and flushed by the handler itself,
// which is the only writer on the connection.
func SSEMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

		c.Next()
	}
}
