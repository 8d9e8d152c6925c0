package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/cycle-nutrition/server/internal/utils"
)

// InjectTrace assigns every request a trace id, available downstream via
// the context and echoed to the client in the X-Trace-Id header.
func InjectTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := utils.GenerateTraceId()
		c.Set(utils.TraceIdKey.String(), traceId)
		c.Header("X-Trace-Id", traceId)
		c.Next()
	}
}
