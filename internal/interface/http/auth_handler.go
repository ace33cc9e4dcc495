package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard/internal/application"
	"github.com/oksasatya/jobboard/pkg/response"
)

type AuthHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(users *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Users.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Created(c, "User registered successfully", gin.H{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user":      res.User,
	})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, "Login successful", gin.H{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user":      res.User,
	})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": u})
}
