package usage

import "time"

// Stats is a user's quota snapshot for the current day and calendar month.
type Stats struct {
	DailyCount       int       `json:"dailyCount"`
	MonthlyCount     int       `json:"monthlyCount"`
	DailyLimit       int       `json:"dailyLimit"`
	MonthlyLimit     int       `json:"monthlyLimit"`
	RemainingDaily   int       `json:"remainingDaily"`
	RemainingMonthly int       `json:"remainingMonthly"`
	IsLimitReached   bool      `json:"isLimitReached"`
	DailyResetsAt    time.Time `json:"dailyResetsAt"`
	MonthlyResetsAt  time.Time `json:"monthlyResetsAt"`
}

// dayStart is midnight of now's day, in now's location.
func dayStart(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// monthStart is the first instant of now's calendar month.
func monthStart(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
}

// dayEnd is midnight after now, in now's location.
func dayEnd(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// monthEnd is the first instant of the next calendar month, so a quota that
// fills on January 31st frees up on February 1st, not thirty days later.
func monthEnd(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m+1, 1, 0, 0, 0, 0, now.Location())
}
