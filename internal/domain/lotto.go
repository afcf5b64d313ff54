package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Submission is a user-owned record of a submitted lottery number sequence.
// Numbers holds the ordered sequence as a comma-joined string ("1,2,3").
type Submission struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Numbers   string    `json:"numbers"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmissionRepository is the port for submission persistence.
type SubmissionRepository interface {
	AddSubmission(ctx context.Context, userID int64, numbers string, createdAt time.Time) (int64, error)
	ListRecentSubmissions(ctx context.Context, userID int64, limit int) ([]Submission, error)
}

// JoinNumbers serializes an ordered integer sequence to its stored form.
func JoinNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// ParseNumbers parses a stored numbers string back into the ordered
// sequence it was built from. JoinNumbers and ParseNumbers round-trip
// exactly.
func ParseNumbers(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty numbers string")
	}
	parts := strings.Split(s, ",")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", p, err)
		}
		nums[i] = n
	}
	return nums, nil
}
