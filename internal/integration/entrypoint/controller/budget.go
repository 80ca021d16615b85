package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	listUseCase   *budget.ListBudgetsUseCase
	getUseCase    *budget.GetBudgetUseCase
	createUseCase *budget.CreateBudgetUseCase
	updateUseCase *budget.UpdateBudgetUseCase
	deleteUseCase *budget.DeleteBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	listUseCase *budget.ListBudgetsUseCase,
	getUseCase *budget.GetBudgetUseCase,
	createUseCase *budget.CreateBudgetUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
) *BudgetController {
	return &BudgetController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{UserID: userID})
	if err != nil {
		c.handleBudgetError(ctx, "list_budgets", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.ToBudgetResponses(output.Budgets)))
}

// Get handles GET /budgets/:id requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	budgetID, ok := parseIDParam(ctx, "budget", string(domainerror.ErrCodeBudgetNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), budget.GetBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	})
	if err != nil {
		c.handleBudgetError(ctx, "get_budget", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.ToBudgetResponse(output.Budget)))
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "category_id, amount, period, start_date and end_date are required", string(domainerror.ErrCodeMissingBudgetFields))
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		badRequest(ctx, "Invalid category_id format", string(domainerror.ErrCodeMissingBudgetFields))
		return
	}
	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		badRequest(ctx, "start_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidBudgetDateFmt))
		return
	}
	endDate, err := dto.ParseDate(req.EndDate)
	if err != nil {
		badRequest(ctx, "end_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidBudgetDateFmt))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), budget.CreateBudgetInput{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     *req.Amount,
		Period:     entity.BudgetPeriod(req.Period),
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		c.handleBudgetError(ctx, "create_budget", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OK("Budget created successfully", dto.ToBudgetResponse(output.Budget)))
}

// Update handles PUT /budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	budgetID, ok := parseIDParam(ctx, "budget", string(domainerror.ErrCodeBudgetNotFound))
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingBudgetFields))
		return
	}

	input := budget.UpdateBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
		Amount:   req.Amount,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			badRequest(ctx, "Invalid category_id format", string(domainerror.ErrCodeMissingBudgetFields))
			return
		}
		input.CategoryID = &categoryID
	}
	if req.Period != nil {
		period := entity.BudgetPeriod(*req.Period)
		input.Period = &period
	}
	if req.StartDate != nil {
		startDate, err := dto.ParseDate(*req.StartDate)
		if err != nil {
			badRequest(ctx, "start_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidBudgetDateFmt))
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := dto.ParseDate(*req.EndDate)
		if err != nil {
			badRequest(ctx, "end_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidBudgetDateFmt))
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, "update_budget", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Budget updated successfully", dto.ToBudgetResponse(output.Budget)))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	budgetID, ok := parseIDParam(ctx, "budget", string(domainerror.ErrCodeBudgetNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	})
	if err != nil {
		c.handleBudgetError(ctx, "delete_budget", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Budget deleted successfully", nil))
}

// handleBudgetError handles budget errors and returns appropriate HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, operation string, err error) {
	if handleStorageError(ctx, operation, err) {
		return
	}

	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(c.getStatusCodeForBudgetError(budgetErr.Code), dto.Error(budgetErr.Message, string(budgetErr.Code)))
		return
	}

	internalError(ctx, operation, err)
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func (c *BudgetController) getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingBudgetFields,
		domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeInvalidBudgetPeriod,
		domainerror.ErrCodeInvalidBudgetDates,
		domainerror.ErrCodeInvalidBudgetDateFmt:
		return http.StatusBadRequest
	case domainerror.ErrCodeBudgetNotFound,
		domainerror.ErrCodeBudgetCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBudgetOverlap:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
