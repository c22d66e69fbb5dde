package middleware

import (
	"github.com/gin-gonic/gin"

	"carsub/internal/shared/id"
)

const RequestIDHeader = "x-request-id"

// RequestID ensures every request carries a request identifier, generating
// one when the caller did not send any, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = id.MustGenerate(21)
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request identifier set by RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}
