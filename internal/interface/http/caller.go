package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard/internal/application"
	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/interface/middleware"
)

// caller loads the authenticated user. On failure the response is already
// written and ok is false.
func caller(c *gin.Context, users *application.UserService, logger *logrus.Logger) (*entity.User, bool) {
	u, err := users.Me(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		respondError(c, logger, err)
		return nil, false
	}
	return u, true
}
