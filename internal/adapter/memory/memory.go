// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"lotto/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu          sync.Mutex
	users       []*domain.User
	sessions    map[string]*domain.Session
	submissions []domain.Submission

	userIDCounter int64
	subIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SubmissionRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, domain.ErrDuplicateUsername
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// RemoveUser deletes a user record. Test hook for simulating an identity
// that no longer deserializes.
func (db *DB) RemoveUser(id int64) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, u := range db.users {
		if u.ID == id {
			db.users = append(db.users[:i], db.users[i+1:]...)
			return
		}
	}
}

// --- SubmissionRepository ---

// AddSubmission stores a submission record.
func (db *DB) AddSubmission(ctx context.Context, userID int64, numbers string, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.subIDCounter++
	db.submissions = append(db.submissions, domain.Submission{
		ID:        db.subIDCounter,
		UserID:    userID,
		Numbers:   numbers,
		CreatedAt: createdAt.UTC(),
	})
	return db.subIDCounter, nil
}

// ListRecentSubmissions lists the user's most recent submissions.
func (db *DB) ListRecentSubmissions(ctx context.Context, userID int64, limit int) ([]domain.Submission, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Submission
	for i := len(db.submissions) - 1; i >= 0 && len(result) < limit; i-- {
		if db.submissions[i].UserID == userID {
			result = append(result, db.submissions[i])
		}
	}
	return result, nil
}

// SubmissionCount reports the total number of stored submissions. Test
// hook for asserting that rejected requests wrote nothing.
func (db *DB) SubmissionCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.submissions)
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, token string, userID *int64, expiresAt time.Time) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s := &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	r.db.sessions[token] = s
	return s, nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// SetUser replaces the identity carried by the session. Unknown tokens are
// a no-op.
func (r *SessionRepo) SetUser(ctx context.Context, token string, userID *int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		s.UserID = userID
	}
	return nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
