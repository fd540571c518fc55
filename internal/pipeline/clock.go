package pipeline

import "github.com/jonboulle/clockwork"

// clock stamps settlements so tests can freeze time via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the settlement time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
