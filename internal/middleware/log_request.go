package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fitness-tracker/internal/utils"
)

// LogRequest logs every request once it has been handled.
func LogRequest() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		traceId, _ := ctx.Value(utils.TraceIdKey.String()).(string)
		entry := log.WithFields(log.Fields{
			"traceId":  traceId,
			"service":  utils.ExtractServiceName(),
			"status":   ctx.Writer.Status(),
			"latency":  time.Since(start).String(),
			"clientIp": ctx.ClientIP(),
		})

		level := "info"
		if ctx.Writer.Status() >= 500 {
			level = "error"
		}
		utils.LogEntry(entry, level, "Request handled: "+ctx.Request.Method+" "+ctx.Request.URL.Path)
	}
}
