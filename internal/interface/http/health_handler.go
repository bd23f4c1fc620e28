package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-article-cms/pkg/response"
)

// Health GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
}

// NotFound is installed as the engine's NoRoute handler.
func NotFound(c *gin.Context) {
	response.Error(c, http.StatusNotFound, "Route not found", nil)
}
