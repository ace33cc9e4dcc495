package router

import (
	"github.com/oksasatya/jobboard/internal/container"
	handlers "github.com/oksasatya/jobboard/internal/interface/http"
	"github.com/oksasatya/jobboard/internal/interface/middleware"
	"github.com/oksasatya/jobboard/internal/router/modules"
)

// InitModules builds the handlers from c and adds every feature module to r.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	var limits modules.Limits
	if c.Cfg.RateLimitEnabled && c.Redis != nil {
		limits = modules.Limits{
			Limiter: middleware.NewLimiter(c.Redis, c.Logger),
			Max:     c.Cfg.RateLimitMax,
			Window:  c.Cfg.RateLimitWindow,
		}
	}

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Users, c.Logger), c.JWT, limits))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.Users, c.Logger), c.JWT, limits))
	r.Add(modules.NewJobModule(handlers.NewJobHandler(c.Jobs, c.Users, c.Logger), c.JWT, limits))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(c.Posts, c.Users, c.Logger), c.JWT, limits))

	if c.Metrics != nil {
		r.AddRoot(modules.NewMetricsModule(c.Metrics))
	}
}
