package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jubilee-retail/backoffice/internal/application/report"
	"go.uber.org/zap"
)

// DashboardHandler serves the back-office landing page aggregates
type DashboardHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *report.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{BaseHandler: NewBaseHandler(logger), dashboardService: dashboardService}
}

// RegisterRoutes mounts the dashboard endpoints
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/summary", h.Summary)
}

// Summary returns the dashboard aggregates for a date range. Without
// bounds the window is the last 30 days.
func (h *DashboardHandler) Summary(c *gin.Context) {
	dateRange, err := report.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	dashboard, err := h.dashboardService.Build(c.Request.Context(), dateRange)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dashboard)
}
