package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns default rate limiting settings.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// Idle clients are dropped during insertion once the table grows past
// the prune threshold, so long-running servers do not accumulate one
// bucket per IP forever.
const (
	limiterPruneSize = 4096
	limiterIdleTTL   = 10 * time.Minute
)

// limiter is a token bucket for a single client.
type limiter struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64
	stamp    time.Time
	lastSeen time.Time
}

func newLimiter(rate float64, burst int) *limiter {
	now := time.Now()
	return &limiter{
		tokens:   float64(burst),
		capacity: float64(burst),
		rate:     rate,
		stamp:    now,
		lastSeen: now,
	}
}

// take spends one token. When the bucket is empty it reports how long
// the client should wait before the next token becomes available.
func (l *limiter) take() (ok bool, remaining int, wait time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.tokens += now.Sub(l.stamp).Seconds() * l.rate
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
	l.stamp = now
	l.lastSeen = now

	if l.tokens >= 1 {
		l.tokens--
		return true, int(l.tokens), 0
	}
	if l.rate <= 0 {
		return false, 0, time.Second
	}
	return false, 0, time.Duration((1 - l.tokens) / l.rate * float64(time.Second))
}

func (l *limiter) idleSince(cutoff time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSeen.Before(cutoff)
}

// limiterTable maps client keys to their buckets.
type limiterTable struct {
	mu      sync.Mutex
	cfg     RateLimitConfig
	clients map[string]*limiter
}

func newLimiterTable(cfg RateLimitConfig) *limiterTable {
	return &limiterTable{
		cfg:     cfg,
		clients: make(map[string]*limiter),
	}
}

func (t *limiterTable) client(key string) *limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	if l, ok := t.clients[key]; ok {
		return l
	}
	if len(t.clients) >= limiterPruneSize {
		t.prune()
	}
	l := newLimiter(t.cfg.RequestsPerSecond, t.cfg.BurstSize)
	t.clients[key] = l
	return l
}

// prune runs with the table lock held.
func (t *limiterTable) prune() {
	cutoff := time.Now().Add(-limiterIdleTTL)
	for key, l := range t.clients {
		if l.idleSince(cutoff) {
			delete(t.clients, key)
		}
	}
}

// RateLimit throttles clients with a per-key token bucket. Requests
// are keyed by authenticated user when known, falling back to the
// caller's IP for unauthenticated traffic.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	table := newLimiterTable(cfg)
	limitHeader := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if userID, ok := c.Get("user_id").(string); ok && userID != "" {
				key = userID + ":" + key
			}

			ok, remaining, wait := table.client(key).take()
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limitHeader)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				secs := int(math.Ceil(wait.Seconds()))
				if secs < 1 {
					secs = 1
				}
				h.Set("Retry-After", strconv.Itoa(secs))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
