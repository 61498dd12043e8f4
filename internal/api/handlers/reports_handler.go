package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/services"
)

// ReportHandler serves the dashboard and analytics views
type ReportHandler struct {
	reports *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes registers the handler's routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/reports", h.Report)
	rg.POST("/reports/snapshots", RequireCapability(domain.CapCaptureSnapshots), h.CaptureSnapshot)
}

// Me returns the caller's capabilities
func (h *ReportHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":      CurrentUser(c),
		"capabilities": CallerCapabilities(c),
	})
}

// Dashboard returns the landing page aggregates
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Report returns the analytics view. months defaults to six.
func (h *ReportHandler) Report(c *gin.Context) {
	months := 0
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(c, invalidRequest("months must be a positive integer"))
			return
		}
		months = n
	}

	report, err := h.reports.Report(c.Request.Context(), months)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CaptureSnapshot records the current progress as a trend point
func (h *ReportHandler) CaptureSnapshot(c *gin.Context) {
	snap, err := h.reports.CaptureSnapshot(c.Request.Context(), CurrentUser(c))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}
