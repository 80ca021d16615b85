package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase       *category.ListCategoriesUseCase
	createUseCase     *category.CreateCategoryUseCase
	updateUseCase     *category.UpdateCategoryUseCase
	deleteUseCase     *category.DeleteCategoryUseCase
	initializeUseCase *category.InitializeCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
	initializeUseCase *category.InitializeCategoriesUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		initializeUseCase: initializeUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := category.ListCategoriesInput{UserID: userID}
	if categoryType := ctx.Query("type"); categoryType != "" {
		t := entity.CategoryType(categoryType)
		input.Type = &t
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, "list_categories", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.ToCategoryResponses(output.Categories)))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "name and type are required", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		UserID: userID,
		Name:   req.Name,
		Type:   entity.CategoryType(req.Type),
	})
	if err != nil {
		c.handleCategoryError(ctx, "create_category", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OK("Category created successfully", dto.ToCategoryResponse(output.Category)))
}

// Initialize handles POST /categories/initialize requests.
func (c *CategoryController) Initialize(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.initializeUseCase.Execute(ctx.Request.Context(), category.InitializeCategoriesInput{UserID: userID})
	if err != nil {
		c.handleCategoryError(ctx, "initialize_categories", err)
		return
	}

	status, message := http.StatusOK, "Categories already initialized"
	if output.Created {
		status, message = http.StatusCreated, "Default categories created"
	}
	ctx.JSON(status, dto.OK(message, dto.InitializeCategoriesResponse{
		Created:    output.Created,
		Categories: dto.ToCategoryResponses(output.Categories),
	}))
}

// Update handles PUT /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(ctx, "category", string(domainerror.ErrCodeCategoryNotFound))
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	input := category.UpdateCategoryInput{
		CategoryID: categoryID,
		UserID:     userID,
		Name:       req.Name,
	}
	if req.Type != nil {
		t := entity.CategoryType(*req.Type)
		input.Type = &t
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, "update_category", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Category updated successfully", dto.ToCategoryResponse(output.Category)))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(ctx, "category", string(domainerror.ErrCodeCategoryNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		CategoryID: categoryID,
		UserID:     userID,
	})
	if err != nil {
		c.handleCategoryError(ctx, "delete_category", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Category deleted successfully", nil))
}

// handleCategoryError handles category errors and returns appropriate HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, operation string, err error) {
	if handleStorageError(ctx, operation, err) {
		return
	}

	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(c.getStatusCodeForCategoryError(catErr.Code), dto.Error(catErr.Message, string(catErr.Code)))
		return
	}

	internalError(ctx, operation, err)
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func (c *CategoryController) getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedCategory:
		return http.StatusForbidden
	case domainerror.ErrCodeCategoryNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeMissingCategoryFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
