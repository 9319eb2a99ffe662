package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"salelog/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const purgeInterval = 5 * time.Minute

type window struct {
	count int
	end   time.Time
}

// windowLimiter counts requests per key in fixed windows.
type windowLimiter struct {
	name   string
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

func newWindowLimiter(name string, limit int, period time.Duration) *windowLimiter {
	return &windowLimiter{
		name:    name,
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// allow records one hit for key. When the key is over its limit it returns
// false and the time its window resets.
func (l *windowLimiter) allow(key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.end) {
		w = &window{end: now.Add(l.period)}
		l.windows[key] = w
	}
	w.count++
	return w.count <= l.limit, w.end
}

// purge drops windows that have already ended.
func (l *windowLimiter) purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	purged := 0
	for key, w := range l.windows {
		if now.After(w.end) {
			delete(l.windows, key)
			purged++
		}
	}
	return purged
}

func (l *windowLimiter) janitor() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for range ticker.C {
		if n := l.purge(); n > 0 {
			log.Debug().Str("limiter", l.name).Int("purged", n).Msg("rate limiter entries purged")
		}
	}
}

func (l *windowLimiter) handler(msg string) gin.HandlerFunc {
	go l.janitor()
	return func(c *gin.Context) {
		ok, reset := l.allow(c.ClientIP())
		if !ok {
			retry := int(time.Until(reset).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newWindowLimiter("login", 20, time.Minute).handler("too many login attempts, retry in a minute")
}

// RateLimiter limits every client IP to limit requests per window.
func RateLimiter(limit int, period time.Duration) gin.HandlerFunc {
	return newWindowLimiter("api", limit, period).handler("too many requests")
}
