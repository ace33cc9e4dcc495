package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message   string            `json:"message"`
	Code      string            `json:"code"`
	Errors    map[string]string `json:"errors,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

// JSON writes a flat success body. A zero status means 200.
func JSON(ctx *gin.Context, status int, body gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, body)
}

// Created writes a 201 with message plus the extra fields.
func Created(ctx *gin.Context, message string, extra gin.H) {
	JSON(ctx, http.StatusCreated, withMessage(message, extra))
}

// OK writes a 200 with message plus the extra fields.
func OK(ctx *gin.Context, message string, extra gin.H) {
	JSON(ctx, http.StatusOK, withMessage(message, extra))
}

// Error aborts the chain and writes an ErrorBody. A zero status means 400.
func Error(ctx *gin.Context, status int, code, message string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{
		Message:   message,
		Code:      code,
		Errors:    details,
		RequestID: ctx.GetString("request_id"),
	})
}

func withMessage(message string, extra gin.H) gin.H {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	return body
}
