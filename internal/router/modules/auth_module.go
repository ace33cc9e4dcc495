package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/jobboard/internal/interface/http"
	"github.com/oksasatya/jobboard/internal/interface/middleware"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

// AuthModule
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Limits  Limits
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, limits Limits) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", m.Limits.PerIPAndPath(authAttempts), m.Handler.Register)
	auth.POST("/login", m.Limits.PerIPAndPath(authAttempts), m.Handler.Login)
	auth.GET("/me", middleware.Auth(m.JWT), m.Handler.Me)
}
