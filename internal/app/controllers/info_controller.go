package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hogwarts/internal/app/models/dto"
)

// HealthChecker reports whether the persistence backend is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}

// InfoController serves runtime information about this instance
type InfoController struct {
	port   int
	health HealthChecker
}

// NewInfoController creates a new InfoController
func NewInfoController(port int, health HealthChecker) *InfoController {
	return &InfoController{port: port, health: health}
}

// GetPort
// @Summary Port this instance listens on
// @Tags info
// @Produce json
// @Success 200 {integer} int
// @Router /port [get]
func (c *InfoController) GetPort(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.port)
}

// Health
// @Summary Liveness and database reachability
// @Tags info
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *InfoController) Health(ctx *gin.Context) {
	if c.health == nil {
		ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
		return
	}

	if err := c.health.Ping(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Database: c.health.Name()})
		return
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: c.health.Name()})
}
