package calls

import "context"

// Repo defines persistence operations for call analyses.
type Repo interface {
	Create(ctx context.Context, call CallAnalysis) error
	GetByID(ctx context.Context, userID, callID string) (CallAnalysis, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]CallAnalysis, error)
}
