package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jobboard/pkg/response"
)

// Health GET /api/health
func Health(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"message": "Server is running", "status": "OK"})
}
