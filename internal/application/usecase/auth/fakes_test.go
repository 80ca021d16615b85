package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fakeUserRepository struct {
	users   map[uuid.UUID]*entity.User
	created int
	updated int
}

func newFakeUserRepository(users ...*entity.User) *fakeUserRepository {
	r := &fakeUserRepository{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	r.created++
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) FindByGoogleID(_ context.Context, googleID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) Update(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	r.updated++
	return nil
}

func (r *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

// fakePasswordService hashes by prefixing, which is enough to tell hashes from plaintext.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type fakeTokenService struct {
	issued      int
	refresh     map[string]uuid.UUID
	invalidated []string
	revoked     []string
	allRevoked  []uuid.UUID
	rememberMe  bool
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{refresh: map[string]uuid.UUID{}}
}

func (s *fakeTokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, _ string, rememberMe bool) (*adapter.TokenPair, error) {
	s.issued++
	s.rememberMe = rememberMe
	refresh := "refresh-" + uuid.NewString()
	s.refresh[refresh] = userID
	return &adapter.TokenPair{AccessToken: "access-" + uuid.NewString(), RefreshToken: refresh}, nil
}

func (s *fakeTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if !strings.HasPrefix(token, "access-") {
		return nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{ID: token}, nil
}

func (s *fakeTokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	userID, ok := s.refresh[token]
	if !ok && !strings.HasPrefix(token, "refresh-") {
		return nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{ID: token, UserID: userID}, nil
}

func (s *fakeTokenService) RevokeAccessToken(_ context.Context, claims *adapter.TokenClaims) error {
	s.revoked = append(s.revoked, claims.ID)
	return nil
}

func (s *fakeTokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	delete(s.refresh, token)
	s.invalidated = append(s.invalidated, token)
	return nil
}

func (s *fakeTokenService) InvalidateAllRefreshTokens(_ context.Context, userID uuid.UUID) error {
	for token, owner := range s.refresh {
		if owner == userID {
			delete(s.refresh, token)
		}
	}
	s.allRevoked = append(s.allRevoked, userID)
	return nil
}

func (s *fakeTokenService) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	_, ok := s.refresh[token]
	return ok, nil
}

type fakeEmailService struct {
	resets   []adapter.QueuePasswordResetInput
	welcomes []adapter.QueueWelcomeInput
}

func (s *fakeEmailService) QueuePasswordResetEmail(_ context.Context, input adapter.QueuePasswordResetInput) error {
	s.resets = append(s.resets, input)
	return nil
}

func (s *fakeEmailService) QueueWelcomeEmail(_ context.Context, input adapter.QueueWelcomeInput) error {
	s.welcomes = append(s.welcomes, input)
	return nil
}

type fakeResetTokenService struct {
	tokens      map[string]*adapter.PasswordResetToken
	invalidated []string
}

func newFakeResetTokenService() *fakeResetTokenService {
	return &fakeResetTokenService{tokens: map[string]*adapter.PasswordResetToken{}}
}

func (s *fakeResetTokenService) GenerateResetToken(_ context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	token := &adapter.PasswordResetToken{
		Token:     "reset " + uuid.NewString(),
		UserID:    userID,
		Email:     email,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	s.tokens[token.Token] = token
	return token, nil
}

func (s *fakeResetTokenService) ValidateResetToken(_ context.Context, token string) (*adapter.PasswordResetToken, error) {
	if t, ok := s.tokens[token]; ok {
		return t, nil
	}
	return nil, domainerror.ErrInvalidResetToken
}

func (s *fakeResetTokenService) InvalidateResetToken(_ context.Context, token string) error {
	delete(s.tokens, token)
	s.invalidated = append(s.invalidated, token)
	return nil
}

type fakeOAuthProvider struct {
	profile *adapter.GoogleProfile
	err     error
}

func (p *fakeOAuthProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (p *fakeOAuthProvider) FetchProfile(_ context.Context, code string) (*adapter.GoogleProfile, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.profile, nil
}

type fakeStateStore struct {
	states map[string]time.Duration
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{states: map[string]time.Duration{}}
}

func (s *fakeStateStore) Save(_ context.Context, state string, ttl time.Duration) error {
	s.states[state] = ttl
	return nil
}

func (s *fakeStateStore) Consume(_ context.Context, state string) (bool, error) {
	if _, ok := s.states[state]; !ok {
		return false, nil
	}
	delete(s.states, state)
	return true, nil
}

func authCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	return authErr.Code
}
