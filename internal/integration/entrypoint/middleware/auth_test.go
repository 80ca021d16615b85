package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

type stubTokenService struct {
	adapter.TokenService
	claims *adapter.TokenClaims
}

func (s *stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	m := NewAuthMiddleware(&stubTokenService{claims: &adapter.TokenClaims{UserID: userID, Email: "a@example.com"}})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			var gotUserID uuid.UUID
			r.GET("/me", m.Authenticate(), func(c *gin.Context) {
				gotUserID, _ = GetUserIDFromContext(c)
				c.Status(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotUserID != userID {
				t.Errorf("user id = %s, want %s", gotUserID, userID)
			}
		})
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(&stubTokenService{claims: &adapter.TokenClaims{ID: "jti-1", UserID: uuid.New()}})

	r := gin.New()
	var hasClaims bool
	r.POST("/logout", m.OptionalAuthenticate(), func(c *gin.Context) {
		_, hasClaims = GetClaimsFromContext(c)
		c.Status(http.StatusOK)
	})

	for header, want := range map[string]bool{"": false, "Bearer bad": false, "Bearer good": true} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%q: status = %d", header, rec.Code)
		}
		if hasClaims != want {
			t.Errorf("%q: claims present = %v, want %v", header, hasClaims, want)
		}
	}
}
