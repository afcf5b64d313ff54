package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"lotto/internal/domain"
)

// DefaultSessionTTL is the session lifetime used when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// SessionService mediates the session token lifecycle and exposes the
// authenticated identity carried by a session. Sessions move between two
// states: Anonymous (no identity) and Authenticated (UserID resolves to an
// existing user).
type SessionService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	ttl      time.Duration
}

// NewSessionService creates a session service with the given session
// lifetime. A non-positive ttl falls back to DefaultSessionTTL.
func NewSessionService(users domain.UserRepository, sessions domain.SessionRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{users: users, sessions: sessions, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Resolve maps an incoming token to session state and the user it carries.
// A missing, unknown, or expired token yields a fresh anonymous session
// under a new token. A session whose user no longer exists is downgraded
// to anonymous. A store error propagates; callers must answer with a
// server error, never fall back to anonymous silently.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Session, *domain.User, error) {
	if token != "" {
		sess, err := s.sessions.GetByToken(ctx, token)
		if err != nil {
			return nil, nil, fmt.Errorf("session: resolve: %w", err)
		}
		if sess != nil && time.Now().Before(sess.ExpiresAt) {
			if sess.UserID == nil {
				return sess, nil, nil
			}
			user, err := s.users.GetByID(ctx, *sess.UserID)
			if err != nil {
				return nil, nil, fmt.Errorf("session: resolve user: %w", err)
			}
			if user == nil {
				// The identity no longer deserializes; drop it but keep
				// the session itself.
				if err := s.sessions.SetUser(ctx, sess.Token, nil); err != nil {
					return nil, nil, fmt.Errorf("session: detach user: %w", err)
				}
				sess.UserID = nil
				return sess, nil, nil
			}
			return sess, user, nil
		}
	}
	return s.startAnonymous(ctx)
}

// Attach binds an authenticated identity to a fresh session token and
// retires the previous token. Returns the new token for the cookie.
func (s *SessionService) Attach(ctx context.Context, oldToken string, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if _, err := s.sessions.Create(ctx, token, &userID, time.Now().Add(s.ttl)); err != nil {
		return "", fmt.Errorf("session: attach: %w", err)
	}
	if oldToken != "" {
		_ = s.sessions.Delete(ctx, oldToken)
	}
	return token, nil
}

// Clear removes the identity from the session, leaving it anonymous. The
// session row persists under the same token until expiry. Clearing an
// unknown or already-anonymous token is a no-op.
func (s *SessionService) Clear(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.SetUser(ctx, token, nil)
}

// PurgeExpired deletes expired session rows.
func (s *SessionService) PurgeExpired(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

func (s *SessionService) startAnonymous(ctx context.Context) (*domain.Session, *domain.User, error) {
	token, err := generateToken()
	if err != nil {
		return nil, nil, err
	}
	sess, err := s.sessions.Create(ctx, token, nil, time.Now().Add(s.ttl))
	if err != nil {
		return nil, nil, fmt.Errorf("session: create: %w", err)
	}
	return sess, nil, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
