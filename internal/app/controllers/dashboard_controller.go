package controllers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/app/services"
	"github.com/edupro/talentdesk/internal/middleware"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
	"github.com/edupro/talentdesk/internal/pkg/docgen"
)

// DashboardController serves admin counters and report exports
type DashboardController struct {
	dashboardService *services.DashboardService
	reportService    *services.ReportService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService, reportService *services.ReportService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		reportService:    reportService,
	}
}

// Counts returns headline entity counts and revenue
// @Summary Dashboard counters
// @Description Without a month filter the counters cover all time. With month=MM-YYYY they cover that month only.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month filter (MM-YYYY)"
// @Success 200 {object} dto.APIResponse{data=dto.DashboardCounts} "Counters"
// @Failure 400 {object} dto.ErrorResponse "Bad month format"
// @Router /dashboard/counts [get]
func (c *DashboardController) Counts(ctx *gin.Context) {
	counts, err := c.dashboardService.Counts(ctx, ctx.Query("month"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(counts, ""))
}

func (c *DashboardController) reportTable(ctx *gin.Context, name string) (docgen.Table, error) {
	switch name {
	case "students":
		return c.reportService.StudentsTable(ctx)
	case "assignments":
		filter := repositories.AssignmentFilter{
			ItemType: models.ItemType(ctx.Query("itemType")),
			Status:   models.AssignmentStatus(ctx.Query("status")),
		}
		return c.reportService.AssignmentsTable(ctx, filter)
	case "payroll":
		return c.reportService.PayrollTable(ctx, ctx.Query("month"))
	default:
		return docgen.Table{}, apperrors.NewBadRequestError("unknown report: " + name)
	}
}

// ExportReport streams a report as XLSX or PDF
// @Summary Export a report
// @Tags dashboard
// @Produce application/octet-stream
// @Security BearerAuth
// @Param name path string true "Report name" Enums(students, assignments, payroll)
// @Param format query string false "Export format" Enums(xlsx, pdf) default(xlsx)
// @Param month query string false "Month filter for the payroll report (MM-YYYY)"
// @Param itemType query string false "Item type filter for the assignments report"
// @Param status query string false "Status filter for the assignments report"
// @Success 200 {file} binary "Report file"
// @Failure 400 {object} dto.ErrorResponse "Unknown report or format"
// @Router /dashboard/reports/{name} [get]
func (c *DashboardController) ExportReport(ctx *gin.Context) {
	name := strings.ToLower(ctx.Param("name"))
	table, err := c.reportTable(ctx, name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var buf bytes.Buffer
	switch ctx.DefaultQuery("format", "xlsx") {
	case "xlsx":
		if err := docgen.WriteXLSX(&buf, table); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
		ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	case "pdf":
		if err := docgen.WriteTablePDF(&buf, table); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="`+name+`.pdf"`)
		ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
	default:
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("format must be xlsx or pdf"))
	}
}
