package report

import (
	"math"
	"time"
)

// DefaultCounterDuration is how long a counter takes to reach its value.
const DefaultCounterDuration = 800 * time.Millisecond

// Counter eases a displayed number from From to To. It is cosmetic and never
// feeds back into a tally.
type Counter struct {
	From     int
	To       int
	Duration time.Duration
}

// NewCounter counts up from zero over the default duration.
func NewCounter(to int) Counter {
	return Counter{To: to, Duration: DefaultCounterDuration}
}

// easeOutCubic maps progress p in [0,1] onto [0,1].
func easeOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

// At returns the value to display after elapsed. Once elapsed reaches
// Duration the exact target is returned.
func (c Counter) At(elapsed time.Duration) int {
	if c.Duration <= 0 || elapsed >= c.Duration {
		return c.To
	}
	if elapsed <= 0 {
		return c.From
	}
	p := easeOutCubic(float64(elapsed) / float64(c.Duration))
	return c.From + int(math.Round(float64(c.To-c.From)*p))
}

// Frames samples the counter n times, evenly spaced, the last sample
// being the target.
func (c Counter) Frames(n int) []int {
	if n <= 0 {
		return []int{c.To}
	}
	frames := make([]int, n)
	for i := range frames {
		elapsed := time.Duration(float64(c.Duration) * float64(i+1) / float64(n))
		frames[i] = c.At(elapsed)
	}
	frames[n-1] = c.To
	return frames
}
