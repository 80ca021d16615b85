package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/report"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ReportController handles report endpoints.
type ReportController struct {
	monthlyUseCase       *report.GetMonthlyReportUseCase
	yearlyMonthlyUseCase *report.GetYearlyMonthlyReportUseCase
	yearlyUseCase        *report.GetYearlyReportUseCase
	categoryUseCase      *report.GetCategoryReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	monthlyUseCase *report.GetMonthlyReportUseCase,
	yearlyMonthlyUseCase *report.GetYearlyMonthlyReportUseCase,
	yearlyUseCase *report.GetYearlyReportUseCase,
	categoryUseCase *report.GetCategoryReportUseCase,
) *ReportController {
	return &ReportController{
		monthlyUseCase:       monthlyUseCase,
		yearlyMonthlyUseCase: yearlyMonthlyUseCase,
		yearlyUseCase:        yearlyUseCase,
		categoryUseCase:      categoryUseCase,
	}
}

// GetMonthly handles GET /reports/monthly requests.
// Without a month it returns all twelve months of the year plus a summary.
func (c *ReportController) GetMonthly(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	year, ok := parseYearQuery(ctx)
	if !ok {
		return
	}

	rawMonth := ctx.Query("month")
	if rawMonth == "" {
		output, err := c.yearlyMonthlyUseCase.Execute(ctx.Request.Context(), report.GetYearlyMonthlyReportInput{
			UserID: userID,
			Year:   year,
		})
		if err != nil {
			c.handleReportError(ctx, "get_yearly_monthly_report", err)
			return
		}
		ctx.JSON(http.StatusOK, dto.OK("", dto.ToYearlyMonthlyReportResponse(output.Year, output.Months, output.Summary)))
		return
	}

	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		badRequest(ctx, "month must be between 1 and 12", string(domainerror.ErrCodeInvalidMonth))
		return
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), report.GetMonthlyReportInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		c.handleReportError(ctx, "get_monthly_report", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.ToMonthlyReportResponse(output.Report)))
}

// GetYearly handles GET /reports/yearly requests.
func (c *ReportController) GetYearly(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	year, ok := parseYearQuery(ctx)
	if !ok {
		return
	}

	output, err := c.yearlyUseCase.Execute(ctx.Request.Context(), report.GetYearlyReportInput{
		UserID: userID,
		Year:   year,
	})
	if err != nil {
		c.handleReportError(ctx, "get_yearly_report", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.ToYearlyReportResponse(output.Report)))
}

// GetCategory handles GET /reports/category requests.
func (c *ReportController) GetCategory(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	startDate, err := dto.ParseOptionalDate(ctx.Query("start_date"))
	if err != nil {
		badRequest(ctx, "start_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidDateFormat))
		return
	}
	endDate, err := dto.ParseOptionalDate(ctx.Query("end_date"))
	if err != nil {
		badRequest(ctx, "end_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidDateFormat))
		return
	}

	output, err := c.categoryUseCase.Execute(ctx.Request.Context(), report.GetCategoryReportInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleReportError(ctx, "get_category_report", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.ToCategoryReportResponse(output.Period, output.Rows)))
}

// parseYearQuery reads the optional year parameter; zero means the current year.
func parseYearQuery(ctx *gin.Context) (int, bool) {
	raw := ctx.Query("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year == 0 {
		badRequest(ctx, "year must be between 1900 and 9999", string(domainerror.ErrCodeInvalidYear))
		return 0, false
	}
	return year, true
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, operation string, err error) {
	if handleStorageError(ctx, operation, err) {
		return
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		if reportErr.Code == domainerror.ErrCodeReportInternalError {
			internalError(ctx, operation, err)
			return
		}
		ctx.JSON(getStatusCodeForReportError(reportErr.Code), dto.Error(reportErr.Message, string(reportErr.Code)))
		return
	}

	internalError(ctx, operation, err)
}

// getStatusCodeForReportError maps report error codes to HTTP status codes.
func getStatusCodeForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidYear,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidDateRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
