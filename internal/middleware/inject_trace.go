package middleware

import (
	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/utils"
)

const traceHeader = "X-Trace-Id"

// InjectTrace tags every request with a trace id that is echoed in the response and all log lines.
func InjectTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := utils.GenerateTraceId()
		c.Set(utils.TraceIdKey.String(), traceId)
		c.Header(traceHeader, traceId)
		c.Next()
	}
}
