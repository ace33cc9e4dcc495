package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jobboard/internal/interface/middleware"
)

// authAttempts is the per-IP budget for credential endpoints in one window.
const authAttempts = 10

// Limits builds the rate limiters shared by the modules. A nil Limiter
// turns every one of them into a pass-through.
type Limits struct {
	Limiter *middleware.Limiter
	Max     int
	Window  time.Duration
}

func (l Limits) window() time.Duration {
	if l.Window <= 0 {
		return time.Minute
	}
	return l.Window
}

// PerUser limits mutations by caller. Mount after middleware.Auth.
func (l Limits) PerUser() gin.HandlerFunc {
	return l.Limiter.Limit(middleware.Rule{Max: l.Max, Window: l.window(), Key: middleware.KeyByUserID()})
}

// PerIPAndPath limits unauthenticated endpoints that are worth guessing at.
func (l Limits) PerIPAndPath(max int) gin.HandlerFunc {
	return l.Limiter.Limit(middleware.Rule{
		Max:    max,
		Window: l.window(),
		Key:    middleware.KeyByIPAndPath(),
		Allow:  middleware.AllowPrivateIP(),
	})
}
