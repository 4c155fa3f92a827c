package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/managers"
	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

// RateLimit rejects clients exceeding the limiter's window with 429, keyed by client IP.
func RateLimit(limiter managers.RateLimitMgr) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := limiter.Allow(c, c.ClientIP())
		if err != nil {
			utils.LogMessageWithFieldsAndError(c, "warn", "Rate limiter unavailable, letting request pass", err)
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
			utils.WriteAndLogError(c, schemas.TooManyRequests, http.StatusTooManyRequests, nil)
			return
		}

		c.Next()
	}
}

func retryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}
