package auth

import (
	"context"
	"log/slog"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
	AccessToken  *adapter.TokenClaims
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase ends a session by revoking both tokens.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute performs the logout. Failures are logged and never surfaced so logout always succeeds.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if input.RefreshToken != "" {
		if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
			slog.Warn("Failed to invalidate refresh token on logout", "error", err)
		}
	}

	if input.AccessToken != nil {
		if err := uc.tokenService.RevokeAccessToken(ctx, input.AccessToken); err != nil {
			slog.Warn("Failed to revoke access token on logout", "error", err, "userID", input.AccessToken.UserID)
		}
	}

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
