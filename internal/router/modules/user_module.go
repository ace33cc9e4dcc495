package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/jobboard/internal/interface/http"
	"github.com/oksasatya/jobboard/internal/interface/middleware"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Limits  Limits
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, limits Limits) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Limits: limits}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("/profile/:id", m.Handler.GetProfile)
	users.GET("/search", m.Handler.Search)
	users.GET("/discover", m.Handler.Discover)
	users.POST("/connect-wallet", m.Limits.PerIPAndPath(authAttempts), m.Handler.ConnectWallet)

	auth := users.Group("", middleware.Auth(m.JWT), m.Limits.PerUser())
	{
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/image", m.Handler.UploadImage)
	}
}
