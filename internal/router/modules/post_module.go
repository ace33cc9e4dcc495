package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/jobboard/internal/interface/http"
	"github.com/oksasatya/jobboard/internal/interface/middleware"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
	Limits  Limits
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager, limits Limits) *PostModule {
	return &PostModule{Handler: h, JWT: jwt, Limits: limits}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	posts.GET("", m.Handler.List)
	posts.GET("/user/:userId", m.Handler.ByUser)

	auth := posts.Group("", middleware.Auth(m.JWT), m.Limits.PerUser())
	{
		auth.POST("", m.Handler.Create)
		auth.POST("/:id/like", m.Handler.Like)
		auth.POST("/:id/comment", m.Handler.Comment)
	}
}
