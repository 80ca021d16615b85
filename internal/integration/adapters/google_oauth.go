package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GoogleOAuthConfig holds the OAuth client registration.
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Endpoint and APIBaseURL point the provider at a Google-compatible
	// server. Zero values use Google.
	Endpoint   oauth2.Endpoint
	APIBaseURL string
}

// googleOAuthProvider implements adapter.OAuthProvider against Google.
type googleOAuthProvider struct {
	config     *oauth2.Config
	apiBaseURL string
	breaker    *gobreaker.CircuitBreaker
}

// NewGoogleOAuthProvider creates a provider. Code exchange and profile lookup
// run behind a circuit breaker so a Google outage fails fast.
func NewGoogleOAuthProvider(cfg GoogleOAuthConfig) adapter.OAuthProvider {
	endpoint := cfg.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}

	return &googleOAuthProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes: []string{
				googleoauth2.OpenIDScope,
				googleoauth2.UserinfoEmailScope,
				googleoauth2.UserinfoProfileScope,
			},
		},
		apiBaseURL: cfg.APIBaseURL,
		breaker:    newGoogleBreaker(),
	}
}

func newGoogleBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "google-oauth",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// AuthCodeURL builds the consent URL carrying state.
func (p *googleOAuthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// FetchProfile exchanges the authorization code and loads the userinfo profile.
func (p *googleOAuthProvider) FetchProfile(ctx context.Context, code string) (*adapter.GoogleProfile, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		token, err := p.config.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
		}

		opts := []option.ClientOption{option.WithTokenSource(p.config.TokenSource(ctx, token))}
		if p.apiBaseURL != "" {
			opts = append(opts, option.WithEndpoint(p.apiBaseURL))
		}

		svc, err := googleoauth2.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create google oauth2 service: %w", err)
		}

		info, err := svc.Userinfo.Get().Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch google userinfo: %w", err)
		}
		return info, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.Join(domainerror.ErrOAuthUnavailable, err)
		}
		return nil, err
	}

	info := result.(*googleoauth2.Userinfo)
	return &adapter.GoogleProfile{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
