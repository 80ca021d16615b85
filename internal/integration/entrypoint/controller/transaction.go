package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/transaction"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// multipartOverhead is the slack allowed on top of the receipt size for form framing.
const multipartOverhead = 1 << 20

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase          *transaction.ListTransactionsUseCase
	getUseCase           *transaction.GetTransactionUseCase
	createUseCase        *transaction.CreateTransactionUseCase
	updateUseCase        *transaction.UpdateTransactionUseCase
	deleteUseCase        *transaction.DeleteTransactionUseCase
	uploadReceiptUseCase *transaction.UploadReceiptUseCase
	getReceiptUseCase    *transaction.GetReceiptUseCase
	maxReceiptBytes      int64
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	uploadReceiptUseCase *transaction.UploadReceiptUseCase,
	getReceiptUseCase *transaction.GetReceiptUseCase,
	maxReceiptBytes int64,
) *TransactionController {
	return &TransactionController{
		listUseCase:          listUseCase,
		getUseCase:           getUseCase,
		createUseCase:        createUseCase,
		updateUseCase:        updateUseCase,
		deleteUseCase:        deleteUseCase,
		uploadReceiptUseCase: uploadReceiptUseCase,
		getReceiptUseCase:    getReceiptUseCase,
		maxReceiptBytes:      maxReceiptBytes,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{UserID: userID}

	if t := ctx.Query("type"); t != "" {
		txnType := entity.TransactionType(t)
		input.Type = &txnType
	}
	if raw := ctx.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			badRequest(ctx, "Invalid category_id format", string(domainerror.ErrCodeInvalidTransactionFilter))
			return
		}
		input.CategoryID = &categoryID
	}

	var err error
	if input.StartDate, err = dto.ParseOptionalDate(ctx.Query("start_date")); err != nil {
		badRequest(ctx, "start_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionFilter))
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(ctx.Query("end_date")); err != nil {
		badRequest(ctx, "end_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionFilter))
		return
	}
	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			badRequest(ctx, "limit must be a positive integer", string(domainerror.ErrCodeInvalidTransactionFilter))
			return
		}
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, "list_transactions", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.TransactionListResponse{
		Transactions: dto.ToTransactionResponses(output.Transactions),
		Totals:       dto.ToTotalsResponse(output.Totals),
	}))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, "get_transaction", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.ToTransactionResponse(output.Transaction)))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "type, category_id, amount and transaction_date are required", string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		badRequest(ctx, "Invalid category_id format", string(domainerror.ErrCodeMissingTransactionFields))
		return
	}
	date, err := dto.ParseDate(req.TransactionDate)
	if err != nil {
		badRequest(ctx, "transaction_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        entity.TransactionType(req.Type),
		Amount:      *req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		c.handleTransactionError(ctx, "create_transaction", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OK("Transaction created successfully", dto.ToTransactionResponse(output.Transaction)))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Amount:        req.Amount,
		Description:   req.Description,
	}
	if req.Type != nil {
		t := entity.TransactionType(*req.Type)
		input.Type = &t
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			badRequest(ctx, "Invalid category_id format", string(domainerror.ErrCodeMissingTransactionFields))
			return
		}
		input.CategoryID = &categoryID
	}
	if req.TransactionDate != nil {
		date, err := dto.ParseDate(*req.TransactionDate)
		if err != nil {
			badRequest(ctx, "transaction_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate))
			return
		}
		input.Date = &date
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, "update_transaction", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Transaction updated successfully", dto.ToTransactionResponse(output.Transaction)))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, "delete_transaction", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Transaction deleted successfully", nil))
}

// UploadReceipt handles POST /transactions/:id/receipt multipart uploads.
func (c *TransactionController) UploadReceipt(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxReceiptBytes+multipartOverhead)

	header, err := ctx.FormFile("receipt")
	if err != nil {
		badRequest(ctx, "A receipt file is required in the 'receipt' field", string(domainerror.ErrCodeInvalidReceipt))
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(ctx, "Could not read the uploaded receipt", string(domainerror.ErrCodeInvalidReceipt))
		return
	}
	defer file.Close()

	_, err = c.uploadReceiptUseCase.Execute(ctx.Request.Context(), transaction.UploadReceiptInput{
		TransactionID: transactionID,
		UserID:        userID,
		Filename:      header.Filename,
		Size:          header.Size,
		Content:       file,
	})
	if err != nil {
		c.handleTransactionError(ctx, "upload_receipt", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Receipt uploaded successfully", dto.ReceiptResponse{
		TransactionID: transactionID.String(),
		HasReceipt:    true,
	}))
}

// GetReceipt handles GET /transactions/:id/receipt by streaming the stored file.
func (c *TransactionController) GetReceipt(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	output, err := c.getReceiptUseCase.Execute(ctx.Request.Context(), transaction.GetReceiptInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, "get_receipt", err)
		return
	}

	ctx.FileAttachment(output.FilePath, output.Filename)
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, operation string, err error) {
	if handleStorageError(ctx, operation, err) {
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(c.getStatusCodeForTransactionError(txnErr.Code), dto.Error(txnErr.Message, string(txnErr.Code)))
		return
	}

	internalError(ctx, operation, err)
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeReceiptNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeTransactionTypeImmutable,
		domainerror.ErrCodeInvalidReceipt,
		domainerror.ErrCodeInvalidTransactionFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
