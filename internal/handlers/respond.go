package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobdeck/jobdeck/internal/apperr"
)

// respondError maps the error taxonomy to HTTP statuses.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func currentUserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}
