package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"lotto/internal/domain"
)

func TestUserCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	db := New()

	u, err := db.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := db.GetByUsername(ctx, "alice")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("GetByUsername = %+v, %v", got, err)
	}

	got, err = db.GetByID(ctx, u.ID)
	if err != nil || got == nil || got.Username != "alice" {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}

	if missing, _ := db.GetByUsername(ctx, "bob"); missing != nil {
		t.Error("expected nil for unknown username")
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	db := New()

	if _, err := db.Create(ctx, "alice", "hash"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.Create(ctx, "alice", "other"); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}

	count, _ := db.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := New().NewSessionRepo()

	id := int64(1)
	if _, err := repo.Create(ctx, "tok", &id, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create: %v", err)
	}

	s, err := repo.GetByToken(ctx, "tok")
	if err != nil || !s.Authenticated() {
		t.Fatalf("expected authenticated session, got %+v, %v", s, err)
	}

	if err := repo.SetUser(ctx, "tok", nil); err != nil {
		t.Fatalf("set user: %v", err)
	}
	s, _ = repo.GetByToken(ctx, "tok")
	if s.Authenticated() {
		t.Error("identity should be cleared")
	}

	// Unknown tokens are a no-op, not an error.
	if err := repo.SetUser(ctx, "missing", nil); err != nil {
		t.Errorf("SetUser on missing token: %v", err)
	}

	if err := repo.Delete(ctx, "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s, _ := repo.GetByToken(ctx, "tok"); s != nil {
		t.Error("expected nil after delete")
	}
}

func TestDeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := New().NewSessionRepo()

	_, _ = repo.Create(ctx, "live", nil, time.Now().Add(time.Hour))
	_, _ = repo.Create(ctx, "dead", nil, time.Now().Add(-time.Hour))

	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if s, _ := repo.GetByToken(ctx, "dead"); s != nil {
		t.Error("expired session should be gone")
	}
	if s, _ := repo.GetByToken(ctx, "live"); s == nil {
		t.Error("live session should survive")
	}
}

func TestSubmissions(t *testing.T) {
	ctx := context.Background()
	db := New()

	for _, numbers := range []string{"1,2,3", "4,5,6"} {
		if _, err := db.AddSubmission(ctx, 1, numbers, time.Now()); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	_, _ = db.AddSubmission(ctx, 2, "7,8,9", time.Now())

	subs, err := db.ListRecentSubmissions(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions for user 1, got %d", len(subs))
	}
	// Most recent first.
	if subs[0].Numbers != "4,5,6" || subs[1].Numbers != "1,2,3" {
		t.Errorf("unexpected order: %+v", subs)
	}

	if db.SubmissionCount() != 3 {
		t.Errorf("expected 3 total rows, got %d", db.SubmissionCount())
	}
}
