package usage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a store that derives counts from persisted analysis
// rows.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Counts(ctx context.Context, userID string, dayStart, monthStart time.Time) (int, int, error) {
	var daily, monthly int
	err := s.DB.QueryRowContext(ctx, `
SELECT COUNT(*) FILTER (WHERE created_at >= $2),
       COUNT(*) FILTER (WHERE created_at >= $3)
FROM call_analyses
WHERE user_id = $1`,
		userID, dayStart, monthStart).Scan(&daily, &monthly)
	if err != nil {
		return 0, 0, fmt.Errorf("count analyses: %w", err)
	}
	return daily, monthly, nil
}

// Reset deletes the user's analysis rows, which zeroes the derived counts.
// Only reachable through the dev routes.
func (s *pgStore) Reset(ctx context.Context, userID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM call_analyses WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("reset analyses: %w", err)
	}
	return nil
}
