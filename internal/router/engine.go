package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jobboard/internal/container"
	"github.com/oksasatya/jobboard/internal/interface/middleware"
	"github.com/oksasatya/jobboard/pkg/response"
	"github.com/oksasatya/jobboard/pkg/validation"
)

// NewEngine builds the gin engine with global middleware and every module.
func NewEngine(c *container.Container) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	if origins := c.Cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if c.Metrics != nil {
		r.Use(c.Metrics.Middleware())
	}
	if c.Cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(c.Logger))
	}
	r.NoRoute(func(ctx *gin.Context) {
		response.Error(ctx, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})

	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
