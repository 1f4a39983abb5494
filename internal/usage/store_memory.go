package usage

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu     sync.Mutex
	events map[string][]time.Time
}

// NewMemoryStore constructs an in-memory store for tests and local runs
// without a database. Tests seed it through Record.
func NewMemoryStore() *memoryStore {
	return &memoryStore{events: map[string][]time.Time{}}
}

// Record notes one persisted analysis for the user at the given time.
func (s *memoryStore) Record(userID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[userID] = append(s.events[userID], at)
}

func (s *memoryStore) Counts(ctx context.Context, userID string, dayStart, monthStart time.Time) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var daily, monthly int
	for _, at := range s.events[userID] {
		if !at.Before(dayStart) {
			daily++
		}
		if !at.Before(monthStart) {
			monthly++
		}
	}
	return daily, monthly, nil
}

func (s *memoryStore) Reset(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, userID)
	return nil
}
