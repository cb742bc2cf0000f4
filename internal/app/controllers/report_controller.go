package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/app/services"
	"github.com/educompact/school-records/internal/middleware"
)

// ReportController handles the dashboard aggregation and export endpoints
type ReportController struct {
	reportService services.ReportService
	exportService services.ExportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService, exportService services.ExportService) *ReportController {
	return &ReportController{
		reportService: reportService,
		exportService: exportService,
	}
}

// GetReports returns the dashboard aggregation
// @Summary Get dashboard report
// @Description Returns record counts, per-class and per-type breakdowns and recent admissions
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ReportResponse "Report generated successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [get]
func (c *ReportController) GetReports(ctx *gin.Context) {
	report, err := c.reportService.Dashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// ExportReport renders a filtered export
// @Summary Export records
// @Description Exports students or staff matching the filters as JSON or CSV
// @Tags reports
// @Accept json
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param type query string false "students or staff" default(students)
// @Param format query string false "json or excel (CSV)" default(json)
// @Param class query string false "Class filter, 'all' disables it"
// @Param status query string false "Status filter, 'all' disables it"
// @Param staffType query string false "Staff type filter, 'all' disables it"
// @Param nationality query string false "Nationality substring filter"
// @Param dateFrom query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param dateTo query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.ExportResponse "Export generated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid export parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/export [get]
func (c *ReportController) ExportReport(ctx *gin.Context) {
	var query dto.ExportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid export parameters", Details: err.Error()})
		return
	}

	result, err := c.exportService.Export(ctx, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if result.Format == services.ExportFormatCSV {
		ctx.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
		ctx.Data(http.StatusOK, "text/csv; charset=utf-8", result.Content)
		return
	}

	ctx.JSON(http.StatusOK, result.Payload)
}
