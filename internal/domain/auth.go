// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateUsername indicates that the username is already taken.
var ErrDuplicateUsername = errors.New("username already taken")

// User represents a registered user in the system. PasswordHash holds a
// salted bcrypt hash, never a plaintext secret.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session represents per-client session state keyed by an opaque token.
// UserID is nil while the client is anonymous.
type Session struct {
	Token     string
	UserID    *int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Authenticated reports whether the session carries an identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != nil
}

// UserRepository defines the port for user persistence operations.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	// Create inserts a user; ErrDuplicateUsername when the name is taken.
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, token string, userID *int64, expiresAt time.Time) (*Session, error)
	GetByToken(ctx context.Context, token string) (*Session, error)
	// SetUser replaces the identity carried by the session. A missing token
	// is a no-op, not an error.
	SetUser(ctx context.Context, token string, userID *int64) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
