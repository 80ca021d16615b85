package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getSummaryUseCase        *dashboard.GetSummaryUseCase
	getMonthlySummaryUseCase *dashboard.GetMonthlySummaryUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getSummaryUseCase *dashboard.GetSummaryUseCase,
	getMonthlySummaryUseCase *dashboard.GetMonthlySummaryUseCase,
) *DashboardController {
	return &DashboardController{
		getSummaryUseCase:        getSummaryUseCase,
		getMonthlySummaryUseCase: getMonthlySummaryUseCase,
	}
}

// GetSummary handles GET /dashboard requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{UserID: userID})
	if err != nil {
		c.handleDashboardError(ctx, "get_dashboard_summary", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.ToDashboardSummaryResponse(output.Summary)))
}

// GetMonthlySummary handles GET /dashboard/monthly requests.
// Both year and month query parameters are required.
func (c *DashboardController) GetMonthlySummary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil {
		badRequest(ctx, "year must be between 1900 and 9999", string(domainerror.ErrCodeInvalidYear))
		return
	}
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil {
		badRequest(ctx, "month must be between 1 and 12", string(domainerror.ErrCodeInvalidMonth))
		return
	}

	output, err := c.getMonthlySummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetMonthlySummaryInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		c.handleDashboardError(ctx, "get_monthly_summary", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.ToMonthlySummaryResponse(output.Period, output.Totals)))
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, operation string, err error) {
	if handleStorageError(ctx, operation, err) {
		return
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		ctx.JSON(getStatusCodeForReportError(reportErr.Code), dto.Error(reportErr.Message, string(reportErr.Code)))
		return
	}

	internalError(ctx, operation, err)
}
