package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"lotto/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, username, passwordHash string) (*domain.User, error)
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, token string, userID *int64, expiresAt time.Time) (*domain.Session, error)
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	setUserFn       func(ctx context.Context, token string, userID *int64) error
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, token string, userID *int64, expiresAt time.Time) (*domain.Session, error) {
	if m.createFn != nil {
		return m.createFn(ctx, token, userID, expiresAt)
	}
	return &domain.Session{Token: token, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) SetUser(ctx context.Context, token string, userID *int64) error {
	if m.setUserFn != nil {
		return m.setUserFn(ctx, token, userID)
	}
	return nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	ctx := context.Background()
	password := "secret1"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username != "alice" {
				t.Errorf("expected lookup of alice, got %s", username)
			}
			return &domain.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil
		},
	}

	svc := NewAuthService(users)
	user, err := svc.Authenticate(ctx, "alice", password)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 1 {
		t.Errorf("expected user 1, got %d", user.ID)
	}
}

func TestAuthService_Authenticate_UnknownUser(t *testing.T) {
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, nil
		},
	}

	svc := NewAuthService(users)
	_, err := svc.Authenticate(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrUnknownUser) {
		t.Errorf("expected ErrUnknownUser, got %v", err)
	}
}

func TestAuthService_Authenticate_BadPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.DefaultCost)

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil
		},
	}

	svc := NewAuthService(users)
	_, err := svc.Authenticate(context.Background(), "alice", "wrongpass")
	if !errors.Is(err, ErrBadPassword) {
		t.Errorf("expected ErrBadPassword, got %v", err)
	}
}

func TestAuthService_Authenticate_StoreError(t *testing.T) {
	storeErr := errors.New("connection lost")
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, storeErr
		},
	}

	svc := NewAuthService(users)
	_, err := svc.Authenticate(context.Background(), "alice", "secret1")
	if !errors.Is(err, storeErr) {
		t.Errorf("expected the store error to propagate, got %v", err)
	}
	if errors.Is(err, ErrUnknownUser) || errors.Is(err, ErrBadPassword) {
		t.Error("store error must not look like a credential failure")
	}
}

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	var storedHash string
	users := &mockUserRepo{
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			storedHash = passwordHash
			return &domain.User{ID: 1, Username: username, PasswordHash: passwordHash}, nil
		},
	}

	svc := NewAuthService(users)
	if _, err := svc.Signup(context.Background(), "alice", "secret1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if storedHash == "" || storedHash == "secret1" {
		t.Fatal("plaintext must never reach the store")
	}
	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("secret1")) != nil {
		t.Error("stored hash does not verify the original password")
	}
}

func TestAuthService_Signup_EmptyCredentials(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{})
	if _, err := svc.Signup(context.Background(), "", "secret1"); !errors.Is(err, ErrEmptyCredentials) {
		t.Errorf("expected ErrEmptyCredentials, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), "alice", ""); !errors.Is(err, ErrEmptyCredentials) {
		t.Errorf("expected ErrEmptyCredentials, got %v", err)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			return nil, domain.ErrDuplicateUsername
		},
	}

	svc := NewAuthService(users)
	_, err := svc.Signup(context.Background(), "alice", "secret1")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthService_EnsureUser_ProvisionRace(t *testing.T) {
	calls := 0
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return nil, nil
			}
			return &domain.User{ID: 7, Username: username}, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			return nil, domain.ErrDuplicateUsername
		},
	}

	svc := NewAuthService(users)
	user, err := svc.EnsureUser(context.Background(), "sso@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 7 {
		t.Errorf("expected the raced row back, got user %d", user.ID)
	}
}
