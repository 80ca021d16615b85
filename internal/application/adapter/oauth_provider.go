package adapter

import (
	"context"
	"time"
)

// GoogleProfile is the subset of the Google userinfo response the app uses.
type GoogleProfile struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// OAuthProvider runs the authorization code flow against Google.
type OAuthProvider interface {
	// AuthCodeURL builds the consent URL carrying state.
	AuthCodeURL(state string) string

	// FetchProfile exchanges the authorization code and loads the user's profile.
	FetchProfile(ctx context.Context, code string) (*GoogleProfile, error)
}

// OAuthStateStore keeps one-time OAuth state values.
type OAuthStateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error

	// Consume deletes the state and reports whether it existed.
	Consume(ctx context.Context, state string) (bool, error)
}
