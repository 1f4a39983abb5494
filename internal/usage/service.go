package usage

import (
	"context"
	"time"

	"agentiq-backend/internal/shared/telemetry"
)

// store answers how many analyses a user has on record inside the given
// windows. Counts are always derived from persisted analysis records, never
// kept as separate counters, so an analysis that failed to persist does not
// consume quota.
type store interface {
	Counts(ctx context.Context, userID string, dayStart, monthStart time.Time) (daily, monthly int, err error)
	Reset(ctx context.Context, userID string) error
}

// Service tracks per-user analysis quotas. Reads fail open: if the store is
// unavailable the user gets their full quota rather than a lockout, matching
// the treatment of quota bookkeeping as advisory.
type Service struct {
	store        store
	dailyLimit   int
	monthlyLimit int

	now func() time.Time
}

// NewService constructs a quota service with the given limits.
func NewService(st store, dailyLimit, monthlyLimit int) *Service {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	if monthlyLimit <= 0 {
		monthlyLimit = DefaultMonthlyLimit
	}
	return &Service{store: st, dailyLimit: dailyLimit, monthlyLimit: monthlyLimit, now: time.Now}
}

// Stats returns the current quota snapshot. Store errors are logged and
// reported as zero usage. Guests are not tracked and always see a full quota.
func (s *Service) Stats(ctx context.Context, userID string) Stats {
	now := s.now()
	stats := Stats{
		DailyLimit:       s.dailyLimit,
		MonthlyLimit:     s.monthlyLimit,
		RemainingDaily:   s.dailyLimit,
		RemainingMonthly: s.monthlyLimit,
		DailyResetsAt:    dayEnd(now),
		MonthlyResetsAt:  monthEnd(now),
	}
	if isGuest(userID) {
		return stats
	}

	daily, monthly, err := s.store.Counts(ctx, userID, dayStart(now), monthStart(now))
	if err != nil {
		telemetry.Warn("usage read failed, allowing request", map[string]any{"err": err.Error(), "userId": userID})
		return stats
	}

	stats.DailyCount = daily
	stats.MonthlyCount = monthly
	stats.RemainingDaily = clampZero(s.dailyLimit - daily)
	stats.RemainingMonthly = clampZero(s.monthlyLimit - monthly)
	stats.IsLimitReached = daily >= s.dailyLimit || monthly >= s.monthlyLimit
	return stats
}

// CheckLimit returns ErrLimitReached when either window is exhausted.
func (s *Service) CheckLimit(ctx context.Context, userID string) (Stats, error) {
	stats := s.Stats(ctx, userID)
	if stats.IsLimitReached {
		return stats, ErrLimitReached
	}
	return stats, nil
}

// Reset clears the records the counts derive from. Dev tooling only.
func (s *Service) Reset(ctx context.Context, userID string) error {
	if isGuest(userID) {
		return nil
	}
	return s.store.Reset(ctx, userID)
}

func isGuest(userID string) bool {
	return userID == "" || userID == "guest"
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
