// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user of the Expense Tracker.
type User struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	PasswordHash   string // Empty for accounts created through Google
	ProfilePicture string
	GoogleID       *string
	IsActive       bool
	LastLogin      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser creates a new active User with a local password.
func NewUser(email, fullName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewGoogleUser creates a new active User authenticated through Google.
func NewGoogleUser(email, fullName, googleID, picture string) *User {
	user := NewUser(email, fullName, "")
	user.GoogleID = &googleID
	user.ProfilePicture = picture
	return user
}

// HasPassword reports whether the user can log in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// LinkGoogle attaches a Google identity to an existing account.
func (u *User) LinkGoogle(googleID, picture string) {
	u.GoogleID = &googleID
	if picture != "" {
		u.ProfilePicture = picture
	}
	u.UpdatedAt = time.Now().UTC()
}

// RecordLogin stamps the last successful login.
func (u *User) RecordLogin(at time.Time) {
	at = at.UTC()
	u.LastLogin = &at
	u.UpdatedAt = at
}
