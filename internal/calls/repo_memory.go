package calls

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores call analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]CallAnalysis
	byUser map[string][]CallAnalysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]CallAnalysis),
		byUser: make(map[string][]CallAnalysis),
	}
}

// Create stores the call analysis.
func (r *MemoryRepo) Create(ctx context.Context, call CallAnalysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[call.ID] = call
	r.byUser[call.UserID] = append(r.byUser[call.UserID], call)
	return nil
}

// GetByID returns one of the user's call analyses.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, callID string) (CallAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return CallAnalysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	call, ok := r.byID[callID]
	if !ok || call.UserID != userID {
		return CallAnalysis{}, ErrNotFound
	}
	return call, nil
}

// ListByUser returns the user's call analyses, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]CallAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := append([]CallAnalysis(nil), r.byUser[userID]...)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if offset >= len(records) {
		return nil, nil
	}
	records = records[offset:]
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
