package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hoardify/services/report"
	"hoardify/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the dashboard, reports and exports.
type ReportHandler struct {
	Reports report.ReportService
}

func NewReportHandler(rs report.ReportService) *ReportHandler {
	return &ReportHandler{Reports: rs}
}

func (h *ReportHandler) DashboardHandler(c *gin.Context) {
	stats, err := h.Reports.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load dashboard", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// MonthlyRevenueHandler handles GET /api/admin/reports/revenue?months=12.
func (h *ReportHandler) MonthlyRevenueHandler(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "12"))
	if months < 1 || months > 60 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameter", "months must be between 1 and 60")
		return
	}
	series, err := h.Reports.MonthlyRevenue(c.Request.Context(), months)
	if err != nil {
		respondError(c, "Failed to load revenue", err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *ReportHandler) CategoryBreakdownHandler(c *gin.Context) {
	counts, err := h.Reports.CategoryBreakdown(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load category report", err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// ActivityHandler handles GET /api/admin/reports/activity?limit=&entity=&entityId=.
func (h *ReportHandler) ActivityHandler(c *gin.Context) {
	if entity, id := c.Query("entity"), c.Query("entityId"); entity != "" && id != "" {
		recs, err := h.Reports.EntityHistory(c.Request.Context(), entity, id)
		if err != nil {
			respondError(c, "Failed to load activity", err)
			return
		}
		c.JSON(http.StatusOK, recs)
		return
	}
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	recs, err := h.Reports.Activity(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "Failed to load activity", err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// ActivityCountsHandler handles GET /api/admin/reports/activity/counts?days=30.
func (h *ReportHandler) ActivityCountsHandler(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 {
		days = 30
	}
	counts, err := h.Reports.ActivityCounts(c.Request.Context(), time.Now().AddDate(0, 0, -days))
	if err != nil {
		respondError(c, "Failed to load activity counts", err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// ExportHandler handles GET /api/admin/reports/export/:dataset?format=csv|xlsx|pdf.
func (h *ReportHandler) ExportHandler(c *gin.Context) {
	format := report.Format(c.DefaultQuery("format", string(report.FormatCSV)))
	doc, err := h.Reports.Export(c.Request.Context(), report.Dataset(c.Param("dataset")), format)
	if err != nil {
		respondError(c, "Failed to export", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
