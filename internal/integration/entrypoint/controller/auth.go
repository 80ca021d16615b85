// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	registerUseCase       *auth.RegisterUserUseCase
	loginUseCase          *auth.LoginUserUseCase
	refreshTokenUseCase   *auth.RefreshTokenUseCase
	logoutUseCase         *auth.LogoutUserUseCase
	forgotPasswordUseCase *auth.ForgotPasswordUseCase
	resetPasswordUseCase  *auth.ResetPasswordUseCase
	profileUseCase        *auth.GetProfileUseCase
	checkEmailUseCase     *auth.CheckEmailUseCase
	googleURLUseCase      *auth.GoogleAuthURLUseCase
	googleCallbackUseCase *auth.GoogleCallbackUseCase
	frontendURL           string
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	refreshTokenUseCase *auth.RefreshTokenUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
	forgotPasswordUseCase *auth.ForgotPasswordUseCase,
	resetPasswordUseCase *auth.ResetPasswordUseCase,
	profileUseCase *auth.GetProfileUseCase,
	checkEmailUseCase *auth.CheckEmailUseCase,
	googleURLUseCase *auth.GoogleAuthURLUseCase,
	googleCallbackUseCase *auth.GoogleCallbackUseCase,
	frontendURL string,
) *AuthController {
	return &AuthController{
		registerUseCase:       registerUseCase,
		loginUseCase:          loginUseCase,
		refreshTokenUseCase:   refreshTokenUseCase,
		logoutUseCase:         logoutUseCase,
		forgotPasswordUseCase: forgotPasswordUseCase,
		resetPasswordUseCase:  resetPasswordUseCase,
		profileUseCase:        profileUseCase,
		checkEmailUseCase:     checkEmailUseCase,
		googleURLUseCase:      googleURLUseCase,
		googleCallbackUseCase: googleCallbackUseCase,
		frontendURL:           strings.TrimRight(frontendURL, "/"),
	}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "full_name, email and password are required", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, "register", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OK(
		"User registered successfully",
		dto.NewAuthResponse(output.AccessToken, output.RefreshToken, output.User),
	))
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "email and password are required", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		c.handleAuthError(ctx, "login", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(
		"Login successful",
		dto.NewAuthResponse(output.AccessToken, output.RefreshToken, output.User),
	))
}

// RefreshToken handles POST /auth/refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "refresh_token is required", string(domainerror.ErrCodeMissingToken))
		return
	}

	output, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), auth.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		c.handleAuthError(ctx, "refresh_token", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Token refreshed", dto.TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		TokenType:    "Bearer",
	}))
}

// Logout handles POST /auth/logout requests.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	// Logout succeeds even without a body.
	_ = ctx.ShouldBindJSON(&req)

	input := auth.LogoutUserInput{RefreshToken: req.RefreshToken}
	if claims, ok := middleware.GetClaimsFromContext(ctx); ok {
		input.AccessToken = claims
	}

	output, _ := c.logoutUseCase.Execute(ctx.Request.Context(), input)

	ctx.JSON(http.StatusOK, dto.OK(output.Message, nil))
}

// Profile handles GET /auth/profile requests.
func (c *AuthController) Profile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.profileUseCase.Execute(ctx.Request.Context(), auth.GetProfileInput{UserID: userID})
	if err != nil {
		c.handleAuthError(ctx, "get_profile", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.ToUserResponse(output.User)))
}

// CheckEmail handles GET /auth/check-email requests.
func (c *AuthController) CheckEmail(ctx *gin.Context) {
	email := ctx.Query("email")

	output, err := c.checkEmailUseCase.Execute(ctx.Request.Context(), auth.CheckEmailInput{Email: email})
	if err != nil {
		c.handleAuthError(ctx, "check_email", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("", dto.CheckEmailResponse{
		Email:  auth.NormalizeEmail(email),
		Exists: output.Exists,
	}))
}

// ForgotPassword handles POST /auth/forgot-password requests.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "email is required", string(domainerror.ErrCodeInvalidEmail))
		return
	}

	output, err := c.forgotPasswordUseCase.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{
		Email: req.Email,
	})
	if err != nil {
		c.handleAuthError(ctx, "forgot_password", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(output.Message, nil))
}

// ResetPassword handles POST /auth/reset-password requests.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "token and new_password are required", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.resetPasswordUseCase.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		c.handleAuthError(ctx, "reset_password", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(output.Message, nil))
}

// GoogleLogin handles GET /auth/google by redirecting to the consent screen.
func (c *AuthController) GoogleLogin(ctx *gin.Context) {
	output, err := c.googleURLUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleAuthError(ctx, "google_login", err)
		return
	}

	ctx.Redirect(http.StatusTemporaryRedirect, output.URL)
}

// GoogleCallback handles GET /auth/google/callback and hands the tokens to the frontend.
func (c *AuthController) GoogleCallback(ctx *gin.Context) {
	output, err := c.googleCallbackUseCase.Execute(ctx.Request.Context(), auth.GoogleCallbackInput{
		Code:  ctx.Query("code"),
		State: ctx.Query("state"),
	})
	if err != nil {
		logAuthFailure(ctx, "google_callback", err)
		ctx.Redirect(http.StatusFound, c.frontendURL+"/login?error=oauth_failed")
		return
	}

	query := url.Values{}
	query.Set("token", output.AccessToken)
	query.Set("refresh", output.RefreshToken)
	query.Set("auth", "success")
	ctx.Redirect(http.StatusFound, c.frontendURL+"/?"+query.Encode())
}

// handleAuthError handles authentication errors and returns appropriate HTTP responses.
func (c *AuthController) handleAuthError(ctx *gin.Context, operation string, err error) {
	if handleStorageError(ctx, operation, err) {
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		statusCode := c.getStatusCodeForAuthError(authErr.Code)
		if statusCode == http.StatusInternalServerError {
			internalError(ctx, operation, err)
			return
		}
		ctx.JSON(statusCode, dto.Error(authErr.Message, string(authErr.Code)))
		return
	}

	internalError(ctx, operation, err)
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func (c *AuthController) getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidResetToken,
		domainerror.ErrCodeExpiredResetToken,
		domainerror.ErrCodeInvalidOAuthState:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken,
		domainerror.ErrCodeOAuthFailed:
		return http.StatusUnauthorized
	case domainerror.ErrCodeInactiveAccount:
		return http.StatusForbidden
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeOAuthUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logAuthFailure(ctx *gin.Context, operation string, err error) {
	code := ""
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		code = string(authErr.Code)
	}
	slog.Warn("OAuth login failed",
		"operation", operation,
		"code", code,
		"client_ip", ctx.ClientIP(),
		"error", err,
	)
}
