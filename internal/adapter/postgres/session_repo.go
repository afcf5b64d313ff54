package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lotto/internal/domain"
)

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new session row. userID may be nil for an anonymous
// session.
func (r *SessionRepo) Create(ctx context.Context, token string, userID *int64, expiresAt time.Time) (*domain.Session, error) {
	now := time.Now()
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)",
		token, nullableID(userID), expiresAt, now,
	)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: token, UserID: userID, ExpiresAt: expiresAt, CreatedAt: now}, nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var (
		s      domain.Session
		userID sql.NullInt64
	)
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &userID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		s.UserID = &userID.Int64
	}
	return &s, nil
}

// SetUser replaces the identity carried by the session. Updating an
// unknown token affects no rows and is not an error.
func (r *SessionRepo) SetUser(ctx context.Context, token string, userID *int64) error {
	_, err := r.db.sql.ExecContext(ctx,
		"UPDATE sessions SET user_id = $1 WHERE token = $2",
		nullableID(userID), token,
	)
	return err
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now())
	return err
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
