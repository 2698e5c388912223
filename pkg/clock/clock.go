// Package clock abstracts timers so debounce windows can be driven
// deterministically in tests.
package clock

import "time"

type Timer interface {
	// Stop prevents the timer from firing and reports whether it was
	// still pending.
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// Real returns the wall clock.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
