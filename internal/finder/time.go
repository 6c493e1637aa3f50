package finder

import "time"

// TimeProvider provides the current time, for dependency injection.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider implements TimeProvider using time.Now.
type RealTimeProvider struct{}

// Now returns the current time.
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
