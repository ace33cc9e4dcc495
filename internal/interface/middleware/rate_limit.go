package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard/pkg/response"
)

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// routePath prefers the matched route pattern so /jobs/1 and /jobs/2 share a bucket.
func routePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc names the counter a request is charged to.
type KeyFunc func(c *gin.Context) string

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + ipFromCtx(c) }
}

func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + routePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID charges authenticated callers by user id and everyone else by
// IP. It must run after Auth.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			return "rl:user:" + uid
		}
		return "rl:user:anon:ip:" + ipFromCtx(c)
	}
}

// AllowFunc returns true for requests that skip the limiter.
type AllowFunc func(*gin.Context) bool

// Rule is one fixed-window budget.
type Rule struct {
	Max    int
	Window time.Duration
	Key    KeyFunc
	Allow  AllowFunc
}

func (r Rule) enabled() bool { return r.Max > 0 && r.Window > 0 && r.Key != nil }

// hitScript counts a hit and returns {count, pttl} in one round trip.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// Limiter enforces Rules against Redis counters. A nil client makes every
// rule a pass-through, and Redis errors fail open.
type Limiter struct {
	rdb    *redis.Client
	logger *logrus.Logger
}

func NewLimiter(rdb *redis.Client, logger *logrus.Logger) *Limiter {
	return &Limiter{rdb: rdb, logger: logger}
}

func (l *Limiter) hit(c *gin.Context, key string, window time.Duration) (count int, reset time.Duration, err error) {
	res, err := hitScript.Run(c.Request.Context(), l.rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) == 2 && res[1] > 0 {
		reset = time.Duration(res[1]) * time.Millisecond
	}
	return int(res[0]), reset, nil
}

// Limit returns middleware enforcing rule. It sets the X-RateLimit-* headers
// and answers 429 with Retry-After once the budget is spent.
func (l *Limiter) Limit(rule Rule) gin.HandlerFunc {
	if l == nil || l.rdb == nil || !rule.enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if isPreflight(c) || (rule.Allow != nil && rule.Allow(c)) {
			c.Next()
			return
		}
		key := rule.Key(c)
		count, reset, err := l.hit(c, key, rule.Window)
		if err != nil {
			if l.logger != nil {
				l.logger.WithError(err).WithField("key", key).Warn("rate limit check failed")
			}
			c.Next()
			return
		}

		resetSec := int((reset + time.Second - 1) / time.Second)
		remaining := max(rule.Max-count, 0)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > rule.Max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, please try again later", nil)
			return
		}
		c.Next()
	}
}
