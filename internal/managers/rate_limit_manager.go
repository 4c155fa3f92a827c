package managers

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimitMgr decides whether another request of a client fits into the current window.
// retryAfter is only meaningful when the request is not allowed.
type RateLimitMgr interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// NewRateLimitManager returns a Redis backed sliding window when a client is given,
// otherwise an in-process limiter per key.
func NewRateLimitManager(name string, window time.Duration, max int, client *redis.Client) RateLimitMgr {
	log.Infof("Initializing rate limiter %s: %d requests per %s", name, max, window)
	if client != nil {
		return &RedisRateLimiter{client: client, name: name, window: window, max: max, now: time.Now}
	}
	return NewMemoryRateLimiter(window, max, time.Now)
}

// NewRedisClient connects to the Redis instance behind the given URL.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

// RedisRateLimiter keeps the timestamps of the accepted requests of a key in a sorted set,
// which makes the window exact and shared between server instances.
type RedisRateLimiter struct {
	client *redis.Client
	name   string
	window time.Duration
	max    int
	now    func() time.Time
}

// Allow fails open: if Redis cannot be reached the request is let through and the error returned.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := rl.now()
	setKey := "ratelimit:" + rl.name + ":" + key
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + uuid.NewString()

	pipe := rl.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, setKey, "-inf", strconv.FormatInt(now.Add(-rl.window).UnixMicro(), 10))
	count := pipe.ZCard(ctx, setKey)
	pipe.ZAdd(ctx, setKey, redis.Z{Score: float64(now.UnixMicro()), Member: member})
	pipe.PExpire(ctx, setKey, rl.window)
	oldest := pipe.ZRangeWithScores(ctx, setKey, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, 0, fmt.Errorf("rate limit %s: %w", rl.name, err)
	}

	if count.Val() < int64(rl.max) {
		return true, 0, nil
	}

	// Rejected requests do not occupy the window.
	if err := rl.client.ZRem(ctx, setKey, member).Err(); err != nil {
		log.WithError(err).Warn("Error removing rejected request from rate limit window")
	}

	retryAfter := rl.window
	if scores := oldest.Val(); len(scores) > 0 {
		oldestAt := time.UnixMicro(int64(scores[0].Score))
		retryAfter = oldestAt.Add(rl.window).Sub(now)
	}
	return false, retryAfter, nil
}

// MemoryRateLimiter approximates the window with a token bucket per key that refills
// max tokens per window.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	window   time.Duration
	now      func() time.Time
	calls    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// cleanupEvery is the number of calls between two sweeps of idle visitors.
const cleanupEvery = 1000

// NewMemoryRateLimiter creates an in-process limiter allowing max requests per window and key.
func NewMemoryRateLimiter(window time.Duration, max int, now func() time.Time) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(max)),
		burst:    max,
		window:   window,
		now:      now,
	}
}

// Allow consumes one token of the key if available.
func (rl *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := rl.now()
	limiter := rl.getLimiter(key, now)

	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, rl.window, nil
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

func (rl *MemoryRateLimiter) getLimiter(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.calls++
	if rl.calls%cleanupEvery == 0 {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.window {
				delete(rl.visitors, k)
			}
		}
	}

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter
}
