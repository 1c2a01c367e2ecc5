package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/middleware"
)

type HealthController struct {
	Ping middleware.Pinger
}

func NewHealthController(ping middleware.Pinger) *HealthController {
	return &HealthController{Ping: ping}
}

// GET /health is a liveness probe; it stays 200 while the database is down.
func (ctrl *HealthController) Health(c *gin.Context) {
	database := "up"
	if ctrl.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := ctrl.Ping(ctx); err != nil {
			database = "down"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "database": database})
}
