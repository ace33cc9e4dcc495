package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jobboard/pkg/helpers"
	"github.com/oksasatya/jobboard/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth requires an "Authorization: Bearer <token>" header and sets the
// caller's user id under CtxUserIDKey. Nothing is looked up server side.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := helpers.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "No token, authorization denied", nil)
			return
		}
		uid, err := jwt.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Token is not valid", nil)
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}
