package ratelimiter

import "time"

// Policy is the admission rule applied to one identifier.
type Policy struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultPolicy admits one request per second.
var DefaultPolicy = Policy{MaxRequests: 1, Window: time.Second}

// Record is the fixed-window state kept per identifier.
type Record struct {
	Count     int       `json:"count"`
	ResetTime time.Time `json:"reset_time"`
}

// Expired reports whether the window represented by the record has ended.
func (r *Record) Expired(now time.Time) bool {
	return !now.Before(r.ResetTime)
}

// Result is the outcome of a Check call. RetryAfter is in whole seconds
// and is only set when the request was rejected.
type Result struct {
	Allowed    bool
	RetryAfter int
}
