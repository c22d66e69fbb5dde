package middleware

import (
	"errors"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"carsub/internal/shared/logger"
	"carsub/internal/shared/utils"
)

// Recovery turns panics into 500 responses and logs them.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if checkBrokenConnection(recovered) {
			logger.Error("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		logger.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", GetRequestID(c),
			"error", recovered)

		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		c.Abort()
	})
}

// checkBrokenConnection reports whether the panic was caused by the client
// going away, in which case there is no response to write.
func checkBrokenConnection(recovered interface{}) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	var netErr *net.OpError
	if !errors.As(err, &netErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(netErr.Err, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
