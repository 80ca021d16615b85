package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// handleStorageError answers retryable storage failures with 503 and reports
// whether err was one.
func handleStorageError(ctx *gin.Context, operation string, err error) bool {
	var storageErr *domainerror.StorageError
	if !errors.As(err, &storageErr) {
		return false
	}

	slog.Warn("Retryable storage failure",
		"operation", operation,
		"code", storageErr.Code,
		"user_id", userIDForLog(ctx),
		"error", err,
	)
	ctx.Header("Retry-After", strconv.Itoa(int(domainerror.DefaultRetryAfter.Seconds())))
	ctx.JSON(http.StatusServiceUnavailable, dto.Error(
		"The service is busy, please retry",
		string(storageErr.Code),
	))
	return true
}

// internalError logs err and answers with a generic 500.
func internalError(ctx *gin.Context, operation string, err error) {
	slog.Error("Request failed",
		"operation", operation,
		"user_id", userIDForLog(ctx),
		"path", ctx.Request.URL.Path,
		"query", ctx.Request.URL.RawQuery,
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.Error("An internal error occurred", ""))
}

func badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.Error(message, code))
}

// requireUserID returns the authenticated user or answers 401.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Error(
			"User not authenticated",
			string(domainerror.ErrCodeMissingToken),
		))
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses the :id path parameter or answers 400 with code.
func parseIDParam(ctx *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid "+name+" ID format", code)
		return uuid.Nil, false
	}
	return id, true
}

func userIDForLog(ctx *gin.Context) string {
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		return userID.String()
	}
	return ""
}
