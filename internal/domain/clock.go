package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests and tools can freeze time
// via SetClock. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Today returns the current UTC date in the YYYY-MM-DD form used as a
// briefing date key.
func Today() string {
	return clock.Now().UTC().Format("2006-01-02")
}
