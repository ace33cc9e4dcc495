package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/jobboard/internal/interface/http"
	"github.com/oksasatya/jobboard/internal/interface/middleware"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

type JobModule struct {
	Handler *handlers.JobHandler
	JWT     *helpers.JWTManager
	Limits  Limits
}

func NewJobModule(h *handlers.JobHandler, jwt *helpers.JWTManager, limits Limits) *JobModule {
	return &JobModule{Handler: h, JWT: jwt, Limits: limits}
}

func (m *JobModule) Register(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	jobs.GET("", m.Handler.List)
	jobs.GET("/:id", m.Handler.Get)

	auth := jobs.Group("", middleware.Auth(m.JWT), m.Limits.PerUser())
	{
		auth.POST("", m.Handler.Create)
		auth.GET("/user/posted", m.Handler.Posted)
		auth.POST("/:id/apply", m.Handler.Apply)
		auth.PATCH("/:id/status", m.Handler.UpdateStatus)
		auth.PATCH("/:id/applicants/:userId", m.Handler.UpdateApplicationStatus)
	}
}
