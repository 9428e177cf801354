// Package clock abstracts wall-clock reads so time-dependent logic can be
// driven deterministically in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock. Local time is deliberate: routine
// blocks are scheduled by the user's weekday.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
