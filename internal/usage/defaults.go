package usage

// Free-plan analysis quota, overridable via DAILY_LIMIT / MONTHLY_LIMIT in
// configuration.
const (
	DefaultDailyLimit   = 5
	DefaultMonthlyLimit = 15
)
