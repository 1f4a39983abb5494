package usage

import (
	"context"
	"time"

	"agentiq-backend/internal/history"
)

// localStore derives counts from the local history mirror. It is the fallback
// when no database is configured: the mirror caps how much history it keeps,
// so counts are floors, which errs in the user's favor.
type localStore struct {
	cache *history.Cache
}

// NewLocalStore constructs a store over the history cache.
func NewLocalStore(cache *history.Cache) *localStore {
	return &localStore{cache: cache}
}

func (s *localStore) Counts(ctx context.Context, userID string, dayStart, monthStart time.Time) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	return s.cache.CountSince(userID, dayStart), s.cache.CountSince(userID, monthStart), nil
}

// Reset drops the user's mirrored records, which zeroes the derived counts.
func (s *localStore) Reset(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.cache.Clear(userID)
}
