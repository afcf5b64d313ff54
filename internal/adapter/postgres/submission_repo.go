package postgres

import (
	"context"
	"time"

	"lotto/internal/domain"
)

// SubmissionRepo implements submission persistence on the user_buy table.
type SubmissionRepo struct {
	db *DB
}

// NewSubmissionRepo wraps a DB as a SubmissionRepository.
func NewSubmissionRepo(db *DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// AddSubmission inserts a submission row and returns its id.
func (r *SubmissionRepo) AddSubmission(ctx context.Context, userID int64, numbers string, createdAt time.Time) (int64, error) {
	var id int64
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO user_buy (user_id, numbers, created_at) VALUES ($1, $2, $3) RETURNING id",
		userID, numbers, createdAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListRecentSubmissions returns the user's most recent submissions.
func (r *SubmissionRepo) ListRecentSubmissions(ctx context.Context, userID int64, limit int) ([]domain.Submission, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, user_id, numbers, created_at FROM user_buy WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Submission, 0, limit)
	for rows.Next() {
		var sub domain.Submission
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Numbers, &sub.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
