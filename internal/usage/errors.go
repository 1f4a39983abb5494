package usage

import "errors"

// ErrLimitReached indicates the user exhausted the daily or monthly quota.
var ErrLimitReached = errors.New("limit reached")
