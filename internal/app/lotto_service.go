package app

import (
	"context"
	"errors"
	"time"

	"lotto/internal/domain"
)

// LottoService encapsulates number-submission use cases.
type LottoService struct {
	subs domain.SubmissionRepository
}

// NewLottoService creates a LottoService backed by the given repository.
func NewLottoService(subs domain.SubmissionRepository) *LottoService {
	return &LottoService{subs: subs}
}

// Submit stores an ordered number sequence for the user. Callers must have
// established an authenticated identity first.
func (s *LottoService) Submit(ctx context.Context, userID int64, numbers []int) (int64, error) {
	if len(numbers) == 0 {
		return 0, errors.New("numbers must not be empty")
	}
	return s.subs.AddSubmission(ctx, userID, domain.JoinNumbers(numbers), time.Now())
}

// RecentByUser returns the user's most recent submissions up to limit.
func (s *LottoService) RecentByUser(ctx context.Context, userID int64, limit int) ([]domain.Submission, error) {
	return s.subs.ListRecentSubmissions(ctx, userID, limit)
}
