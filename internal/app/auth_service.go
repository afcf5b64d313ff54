// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"

	"lotto/internal/domain"
)

var (
	// ErrUnknownUser indicates that no user exists with the given username.
	// Handlers must surface it with the same outward message as
	// ErrBadPassword to avoid user enumeration.
	ErrUnknownUser = errors.New("incorrect username")
	// ErrBadPassword indicates that the password did not match.
	ErrBadPassword = errors.New("incorrect password")
	// ErrEmptyCredentials indicates a missing username or password.
	ErrEmptyCredentials = errors.New("username and password are required")
)

// AuthService verifies credentials and registers users.
type AuthService struct {
	users domain.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Authenticate verifies a username/password pair against the user store.
// Credential failures come back as ErrUnknownUser or ErrBadPassword; a
// store error aborts the attempt and propagates unchanged.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("auth: lookup %q: %w", username, err)
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrBadPassword
	}
	return user, nil
}

// Signup hashes the password and creates the user. The new user is not
// logged in; an explicit login is required afterwards.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	return s.users.Create(ctx, username, hash)
}

// EnsureUser fetches a user by username, provisioning one with an unusable
// password hash when absent. Used for SSO identities, which never log in
// with a password.
func (s *AuthService) EnsureUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	user, err = s.users.Create(ctx, username, "")
	if errors.Is(err, domain.ErrDuplicateUsername) {
		// Lost the provisioning race; the row exists now.
		return s.users.GetByUsername(ctx, username)
	}
	return user, err
}
