package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetProfileInput represents the input for loading the caller's profile.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileOutput represents the output of loading the caller's profile.
type GetProfileOutput struct {
	User *entity.User
}

// GetProfileUseCase loads the authenticated user.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute loads the profile.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &GetProfileOutput{User: user}, nil
}

// CheckEmailInput represents the input for the email availability check.
type CheckEmailInput struct {
	Email string
}

// CheckEmailOutput reports whether the email is already registered.
type CheckEmailOutput struct {
	Exists bool
}

// CheckEmailUseCase tells the signup form whether an email is taken.
type CheckEmailUseCase struct {
	userRepo adapter.UserRepository
}

// NewCheckEmailUseCase creates a new CheckEmailUseCase instance.
func NewCheckEmailUseCase(userRepo adapter.UserRepository) *CheckEmailUseCase {
	return &CheckEmailUseCase{userRepo: userRepo}
}

// Execute performs the check.
func (uc *CheckEmailUseCase) Execute(ctx context.Context, input CheckEmailInput) (*CheckEmailOutput, error) {
	email := NormalizeEmail(input.Email)
	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	return &CheckEmailOutput{Exists: exists}, nil
}
