package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SystemHandler serves liveness and build information
type SystemHandler struct {
	BaseHandler
	appName string
	version string
	started time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(appName, version string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		appName:     appName,
		version:     version,
		started:     time.Now(),
	}
}

// RegisterRoutes mounts the health endpoint
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"app":     h.appName,
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
