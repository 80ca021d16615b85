package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// OAuthStateTTL bounds how long a consent redirect stays valid.
const OAuthStateTTL = 10 * time.Minute

// GoogleAuthURLOutput carries the consent URL to redirect to.
type GoogleAuthURLOutput struct {
	URL string
}

// GoogleAuthURLUseCase starts the Google OAuth flow.
type GoogleAuthURLUseCase struct {
	provider   adapter.OAuthProvider
	stateStore adapter.OAuthStateStore
}

// NewGoogleAuthURLUseCase creates a new GoogleAuthURLUseCase instance.
func NewGoogleAuthURLUseCase(provider adapter.OAuthProvider, stateStore adapter.OAuthStateStore) *GoogleAuthURLUseCase {
	return &GoogleAuthURLUseCase{
		provider:   provider,
		stateStore: stateStore,
	}
}

// Execute generates and stores a state value and returns the consent URL.
func (uc *GoogleAuthURLUseCase) Execute(ctx context.Context) (*GoogleAuthURLOutput, error) {
	if uc.provider == nil {
		return nil, oauthUnavailableError(nil)
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate oauth state: %w", err)
	}
	state := hex.EncodeToString(buf)

	if err := uc.stateStore.Save(ctx, state, OAuthStateTTL); err != nil {
		return nil, fmt.Errorf("failed to store oauth state: %w", err)
	}

	return &GoogleAuthURLOutput{URL: uc.provider.AuthCodeURL(state)}, nil
}

// GoogleCallbackInput represents the query of the OAuth redirect.
type GoogleCallbackInput struct {
	Code  string
	State string
}

// GoogleCallbackOutput represents a completed Google sign in.
type GoogleCallbackOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
	Created      bool
}

// GoogleCallbackUseCase finishes the Google OAuth flow and signs the user in.
type GoogleCallbackUseCase struct {
	provider     adapter.OAuthProvider
	stateStore   adapter.OAuthStateStore
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewGoogleCallbackUseCase creates a new GoogleCallbackUseCase instance.
func NewGoogleCallbackUseCase(
	provider adapter.OAuthProvider,
	stateStore adapter.OAuthStateStore,
	userRepo adapter.UserRepository,
	tokenService adapter.TokenService,
) *GoogleCallbackUseCase {
	return &GoogleCallbackUseCase{
		provider:     provider,
		stateStore:   stateStore,
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute resolves the Google identity to a local user: by google id, then by
// email (linking the account), otherwise by creating a new user.
func (uc *GoogleCallbackUseCase) Execute(ctx context.Context, input GoogleCallbackInput) (*GoogleCallbackOutput, error) {
	if uc.provider == nil {
		return nil, oauthUnavailableError(nil)
	}
	if input.Code == "" || input.State == "" {
		return nil, invalidStateError()
	}

	ok, err := uc.stateStore.Consume(ctx, input.State)
	if err != nil {
		return nil, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	if !ok {
		return nil, invalidStateError()
	}

	profile, err := uc.provider.FetchProfile(ctx, input.Code)
	if err != nil {
		if errors.Is(err, domainerror.ErrOAuthUnavailable) {
			return nil, oauthUnavailableError(err)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeOAuthFailed,
			"google authentication failed",
			err,
		)
	}
	if profile.ID == "" || profile.Email == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeOAuthFailed,
			"google profile is missing id or email",
			nil,
		)
	}

	user, created, err := uc.resolveUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInactiveAccount,
			"account is inactive",
			domainerror.ErrInactiveAccount,
		)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &GoogleCallbackOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
		Created:      created,
	}, nil
}

func (uc *GoogleCallbackUseCase) resolveUser(ctx context.Context, profile *adapter.GoogleProfile) (*entity.User, bool, error) {
	now := time.Now()

	user, err := uc.userRepo.FindByGoogleID(ctx, profile.ID)
	if err == nil {
		user.RecordLogin(now)
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, false, fmt.Errorf("failed to record login: %w", err)
		}
		return user, false, nil
	}
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to find user by google id: %w", err)
	}

	email := NormalizeEmail(profile.Email)

	user, err = uc.userRepo.FindByEmail(ctx, email)
	if err == nil {
		user.LinkGoogle(profile.ID, profile.Picture)
		user.RecordLogin(now)
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, false, fmt.Errorf("failed to link google account: %w", err)
		}
		return user, false, nil
	}
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to find user by email: %w", err)
	}

	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = email
	}
	user = entity.NewGoogleUser(email, name, profile.ID, profile.Picture)
	user.RecordLogin(now)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create google user: %w", err)
	}
	return user, true, nil
}

func invalidStateError() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidOAuthState,
		"invalid oauth state",
		domainerror.ErrInvalidOAuthState,
	)
}

func oauthUnavailableError(err error) error {
	if err == nil {
		err = domainerror.ErrOAuthUnavailable
	}
	return domainerror.NewAuthError(
		domainerror.ErrCodeOAuthUnavailable,
		"google sign in is not available",
		err,
	)
}
