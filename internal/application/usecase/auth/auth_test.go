package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestRegisterUserUseCase_Validation(t *testing.T) {
	existing := entity.NewUser("taken@example.com", "Taken", "hashed:password123")

	tests := []struct {
		name  string
		input RegisterUserInput
		want  domainerror.AuthErrorCode
	}{
		{"missing name", RegisterUserInput{Email: "a@example.com", Password: "password123"}, domainerror.ErrCodeMissingFields},
		{"blank name", RegisterUserInput{FullName: "   ", Email: "a@example.com", Password: "password123"}, domainerror.ErrCodeMissingFields},
		{"missing password", RegisterUserInput{FullName: "Ana", Email: "a@example.com"}, domainerror.ErrCodeMissingFields},
		{"bad email", RegisterUserInput{FullName: "Ana", Email: "not-an-email", Password: "password123"}, domainerror.ErrCodeInvalidEmail},
		{"short password", RegisterUserInput{FullName: "Ana", Email: "a@example.com", Password: "short"}, domainerror.ErrCodeWeakPassword},
		{"duplicate email", RegisterUserInput{FullName: "Ana", Email: "TAKEN@example.com", Password: "password123"}, domainerror.ErrCodeEmailExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepository(existing)
			uc := NewRegisterUserUseCase(repo, fakePasswordService{}, newFakeTokenService(), nil, "http://app.test")

			_, err := uc.Execute(context.Background(), tt.input)
			if got := authCode(t, err); got != tt.want {
				t.Errorf("code = %s, want %s", got, tt.want)
			}
			if repo.created != 0 {
				t.Errorf("created = %d, want 0", repo.created)
			}
		})
	}
}

func TestRegisterUserUseCase_Success(t *testing.T) {
	repo := newFakeUserRepository()
	tokens := newFakeTokenService()
	emails := &fakeEmailService{}
	uc := NewRegisterUserUseCase(repo, fakePasswordService{}, tokens, emails, "http://app.test")

	out, err := uc.Execute(context.Background(), RegisterUserInput{
		FullName: " Ana Souza ",
		Email:    " Ana@Example.COM ",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.User.Email != "ana@example.com" {
		t.Errorf("email = %q, want lowercased", out.User.Email)
	}
	if out.User.FullName != "Ana Souza" {
		t.Errorf("full name = %q", out.User.FullName)
	}
	if out.User.PasswordHash != "hashed:password123" {
		t.Errorf("password was not hashed: %q", out.User.PasswordHash)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Error("expected a token pair")
	}
	if len(emails.welcomes) != 1 || emails.welcomes[0].UserEmail != "ana@example.com" || emails.welcomes[0].AppURL != "http://app.test" {
		t.Errorf("welcome emails = %+v", emails.welcomes)
	}
}

func TestLoginUserUseCase_InvalidCredentials(t *testing.T) {
	local := entity.NewUser("ana@example.com", "Ana", "hashed:password123")
	googleOnly := entity.NewGoogleUser("gabi@example.com", "Gabi", "g-1", "")

	tests := []struct {
		name  string
		input LoginUserInput
	}{
		{"unknown email", LoginUserInput{Email: "nobody@example.com", Password: "password123"}},
		{"wrong password", LoginUserInput{Email: "ana@example.com", Password: "password124"}},
		{"google only account", LoginUserInput{Email: "gabi@example.com", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepository(local, googleOnly)
			tokens := newFakeTokenService()
			uc := NewLoginUserUseCase(repo, fakePasswordService{}, tokens)

			_, err := uc.Execute(context.Background(), tt.input)
			if got := authCode(t, err); got != domainerror.ErrCodeInvalidCredentials {
				t.Errorf("code = %s, want %s", got, domainerror.ErrCodeInvalidCredentials)
			}
			if tokens.issued != 0 {
				t.Error("tokens must not be issued")
			}
		})
	}
}

func TestLoginUserUseCase_InactiveAccount(t *testing.T) {
	user := entity.NewUser("ana@example.com", "Ana", "hashed:password123")
	user.IsActive = false
	uc := NewLoginUserUseCase(newFakeUserRepository(user), fakePasswordService{}, newFakeTokenService())

	_, err := uc.Execute(context.Background(), LoginUserInput{Email: "ana@example.com", Password: "password123"})
	if got := authCode(t, err); got != domainerror.ErrCodeInactiveAccount {
		t.Errorf("code = %s, want %s", got, domainerror.ErrCodeInactiveAccount)
	}
}

func TestLoginUserUseCase_Success(t *testing.T) {
	user := entity.NewUser("ana@example.com", "Ana", "hashed:password123")
	repo := newFakeUserRepository(user)
	tokens := newFakeTokenService()
	uc := NewLoginUserUseCase(repo, fakePasswordService{}, tokens)

	out, err := uc.Execute(context.Background(), LoginUserInput{
		Email:      "ANA@example.com",
		Password:   "password123",
		RememberMe: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.User.LastLogin == nil {
		t.Error("expected last login to be recorded")
	}
	if repo.updated != 1 {
		t.Errorf("updated = %d, want 1", repo.updated)
	}
	if !tokens.rememberMe {
		t.Error("remember me was not passed to the token service")
	}
}

func TestRefreshTokenUseCase_RotatesToken(t *testing.T) {
	user := entity.NewUser("ana@example.com", "Ana", "hashed:password123")
	tokens := newFakeTokenService()
	pair, _ := tokens.GenerateTokenPair(context.Background(), user.ID, user.Email, false)
	uc := NewRefreshTokenUseCase(newFakeUserRepository(user), tokens)

	out, err := uc.Execute(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RefreshToken == pair.RefreshToken {
		t.Error("expected a new refresh token")
	}

	_, err = uc.Execute(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
	if got := authCode(t, err); got != domainerror.ErrCodeInvalidToken {
		t.Errorf("reuse code = %s, want %s", got, domainerror.ErrCodeInvalidToken)
	}
}

func TestRefreshTokenUseCase_MalformedToken(t *testing.T) {
	uc := NewRefreshTokenUseCase(newFakeUserRepository(), newFakeTokenService())

	_, err := uc.Execute(context.Background(), RefreshTokenInput{RefreshToken: "garbage"})
	if got := authCode(t, err); got != domainerror.ErrCodeInvalidToken {
		t.Errorf("code = %s, want %s", got, domainerror.ErrCodeInvalidToken)
	}
}

func TestLogoutUserUseCase_RevokesBothTokens(t *testing.T) {
	tokens := newFakeTokenService()
	uc := NewLogoutUserUseCase(tokens)

	out, err := uc.Execute(context.Background(), LogoutUserInput{
		RefreshToken: "refresh-1",
		AccessToken:  &adapter.TokenClaims{ID: "jti-1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Message != "Successfully logged out" {
		t.Errorf("message = %q", out.Message)
	}
	if len(tokens.invalidated) != 1 || len(tokens.revoked) != 1 || tokens.revoked[0] != "jti-1" {
		t.Errorf("invalidated = %v, revoked = %v", tokens.invalidated, tokens.revoked)
	}

	if _, err := uc.Execute(context.Background(), LogoutUserInput{}); err != nil {
		t.Errorf("logout without a session must succeed: %v", err)
	}
}

func TestForgotPasswordUseCase(t *testing.T) {
	user := entity.NewUser("ana@example.com", "Ana", "hashed:password123")

	t.Run("known email queues reset", func(t *testing.T) {
		resets := newFakeResetTokenService()
		emails := &fakeEmailService{}
		uc := NewForgotPasswordUseCase(newFakeUserRepository(user), resets, emails, "http://app.test")

		out, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "Ana@example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Message != forgotPasswordMessage {
			t.Errorf("message = %q", out.Message)
		}
		if len(emails.resets) != 1 {
			t.Fatalf("reset emails = %d, want 1", len(emails.resets))
		}
		if !strings.HasPrefix(emails.resets[0].ResetURL, "http://app.test/reset-password?token=reset+") {
			t.Errorf("reset url = %q", emails.resets[0].ResetURL)
		}
	})

	t.Run("unknown email answers the same", func(t *testing.T) {
		resets := newFakeResetTokenService()
		emails := &fakeEmailService{}
		uc := NewForgotPasswordUseCase(newFakeUserRepository(user), resets, emails, "http://app.test")

		out, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "nobody@example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Message != forgotPasswordMessage {
			t.Errorf("message = %q", out.Message)
		}
		if len(emails.resets) != 0 || len(resets.tokens) != 0 {
			t.Error("no token or email expected for an unknown address")
		}
	})

	t.Run("malformed email", func(t *testing.T) {
		uc := NewForgotPasswordUseCase(newFakeUserRepository(), newFakeResetTokenService(), nil, "")
		_, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "nope"})
		if got := authCode(t, err); got != domainerror.ErrCodeInvalidEmail {
			t.Errorf("code = %s, want %s", got, domainerror.ErrCodeInvalidEmail)
		}
	})
}

func TestResetPasswordUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates sessions", func(t *testing.T) {
		user := entity.NewUser("ana@example.com", "Ana", "hashed:password123")
		resets := newFakeResetTokenService()
		tokens := newFakeTokenService()
		session, _ := tokens.GenerateTokenPair(ctx, user.ID, user.Email, false)
		token, _ := resets.GenerateResetToken(ctx, user.ID, user.Email)
		uc := NewResetPasswordUseCase(newFakeUserRepository(user), fakePasswordService{}, resets, tokens)

		out, err := uc.Execute(ctx, ResetPasswordInput{Token: token.Token, NewPassword: "brandnew99"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Message != "Password has been successfully reset" {
			t.Errorf("message = %q", out.Message)
		}
		if user.PasswordHash != "hashed:brandnew99" {
			t.Errorf("password hash = %q", user.PasswordHash)
		}
		if len(resets.invalidated) != 1 {
			t.Error("reset token was not invalidated")
		}
		if valid, _ := tokens.IsRefreshTokenValid(ctx, session.RefreshToken); valid {
			t.Error("existing refresh tokens must be invalidated")
		}

		_, err = uc.Execute(ctx, ResetPasswordInput{Token: token.Token, NewPassword: "brandnew99"})
		if got := authCode(t, err); got != domainerror.ErrCodeInvalidResetToken {
			t.Errorf("reuse code = %s, want %s", got, domainerror.ErrCodeInvalidResetToken)
		}
	})

	t.Run("weak password checked first", func(t *testing.T) {
		uc := NewResetPasswordUseCase(newFakeUserRepository(), fakePasswordService{}, newFakeResetTokenService(), nil)
		_, err := uc.Execute(ctx, ResetPasswordInput{Token: "unknown", NewPassword: "short"})
		if got := authCode(t, err); got != domainerror.ErrCodeWeakPassword {
			t.Errorf("code = %s, want %s", got, domainerror.ErrCodeWeakPassword)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		user := entity.NewUser("ana@example.com", "Ana", "hashed:password123")
		resets := newFakeResetTokenService()
		token, _ := resets.GenerateResetToken(ctx, user.ID, user.Email)
		token.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		uc := NewResetPasswordUseCase(newFakeUserRepository(user), fakePasswordService{}, resets, nil)

		_, err := uc.Execute(ctx, ResetPasswordInput{Token: token.Token, NewPassword: "brandnew99"})
		if got := authCode(t, err); got != domainerror.ErrCodeExpiredResetToken {
			t.Errorf("code = %s, want %s", got, domainerror.ErrCodeExpiredResetToken)
		}
		if user.PasswordHash != "hashed:password123" {
			t.Error("password must not change")
		}
	})
}

func TestGoogleAuthURLUseCase_StoresState(t *testing.T) {
	states := newFakeStateStore()
	uc := NewGoogleAuthURLUseCase(&fakeOAuthProvider{}, states)

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(states.states) != 1 {
		t.Fatalf("stored states = %d, want 1", len(states.states))
	}
	for state, ttl := range states.states {
		if len(state) != 32 {
			t.Errorf("state length = %d, want 32 hex chars", len(state))
		}
		if ttl != OAuthStateTTL {
			t.Errorf("ttl = %v, want %v", ttl, OAuthStateTTL)
		}
		if !strings.HasSuffix(out.URL, "state="+state) {
			t.Errorf("url %q does not carry the state", out.URL)
		}
	}
}

func TestGoogleAuthURLUseCase_NotConfigured(t *testing.T) {
	uc := NewGoogleAuthURLUseCase(nil, newFakeStateStore())
	_, err := uc.Execute(context.Background())
	if got := authCode(t, err); got != domainerror.ErrCodeOAuthUnavailable {
		t.Errorf("code = %s, want %s", got, domainerror.ErrCodeOAuthUnavailable)
	}
}

func TestGoogleCallbackUseCase(t *testing.T) {
	ctx := context.Background()
	profile := &adapter.GoogleProfile{ID: "g-42", Email: "Ana@Example.com", Name: "Ana", Picture: "http://pic.test/a.png"}

	newUseCase := func(repo *fakeUserRepository, provider adapter.OAuthProvider) (*GoogleCallbackUseCase, *fakeStateStore) {
		states := newFakeStateStore()
		_ = states.Save(ctx, "state-1", OAuthStateTTL)
		return NewGoogleCallbackUseCase(provider, states, repo, newFakeTokenService()), states
	}

	t.Run("creates a new user", func(t *testing.T) {
		repo := newFakeUserRepository()
		uc, states := newUseCase(repo, &fakeOAuthProvider{profile: profile})

		out, err := uc.Execute(ctx, GoogleCallbackInput{Code: "code", State: "state-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Created || repo.created != 1 {
			t.Errorf("created = %v (%d)", out.Created, repo.created)
		}
		if out.User.Email != "ana@example.com" || out.User.GoogleID == nil || *out.User.GoogleID != "g-42" {
			t.Errorf("user = %+v", out.User)
		}
		if out.User.HasPassword() {
			t.Error("google users have no password")
		}
		if len(states.states) != 0 {
			t.Error("state must be consumed")
		}
	})

	t.Run("links an existing email account", func(t *testing.T) {
		existing := entity.NewUser("ana@example.com", "Ana", "hashed:password123")
		repo := newFakeUserRepository(existing)
		uc, _ := newUseCase(repo, &fakeOAuthProvider{profile: profile})

		out, err := uc.Execute(ctx, GoogleCallbackInput{Code: "code", State: "state-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Created || repo.created != 0 {
			t.Error("expected no new user")
		}
		if out.User.ID != existing.ID || existing.GoogleID == nil || *existing.GoogleID != "g-42" {
			t.Errorf("account was not linked: %+v", existing)
		}
		if existing.ProfilePicture != profile.Picture {
			t.Errorf("picture = %q", existing.ProfilePicture)
		}
	})

	t.Run("signs in a linked account", func(t *testing.T) {
		linked := entity.NewGoogleUser("other@example.com", "Other", "g-42", "")
		repo := newFakeUserRepository(linked)
		uc, _ := newUseCase(repo, &fakeOAuthProvider{profile: profile})

		out, err := uc.Execute(ctx, GoogleCallbackInput{Code: "code", State: "state-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.ID != linked.ID || linked.LastLogin == nil {
			t.Errorf("expected linked user with login recorded, got %+v", out.User)
		}
	})

	t.Run("unknown state", func(t *testing.T) {
		repo := newFakeUserRepository()
		uc, _ := newUseCase(repo, &fakeOAuthProvider{profile: profile})

		_, err := uc.Execute(ctx, GoogleCallbackInput{Code: "code", State: "forged"})
		if got := authCode(t, err); got != domainerror.ErrCodeInvalidOAuthState {
			t.Errorf("code = %s, want %s", got, domainerror.ErrCodeInvalidOAuthState)
		}
		if repo.created != 0 {
			t.Error("no user expected")
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		uc, _ := newUseCase(newFakeUserRepository(), &fakeOAuthProvider{err: errors.New("exchange failed")})
		_, err := uc.Execute(ctx, GoogleCallbackInput{Code: "code", State: "state-1"})
		if got := authCode(t, err); got != domainerror.ErrCodeOAuthFailed {
			t.Errorf("code = %s, want %s", got, domainerror.ErrCodeOAuthFailed)
		}
	})

	t.Run("provider unavailable", func(t *testing.T) {
		uc, _ := newUseCase(newFakeUserRepository(), &fakeOAuthProvider{err: domainerror.ErrOAuthUnavailable})
		_, err := uc.Execute(ctx, GoogleCallbackInput{Code: "code", State: "state-1"})
		if got := authCode(t, err); got != domainerror.ErrCodeOAuthUnavailable {
			t.Errorf("code = %s, want %s", got, domainerror.ErrCodeOAuthUnavailable)
		}
	})
}
