package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter_At(t *testing.T) {
	c := Counter{From: 0, To: 42, Duration: time.Second}

	assert.Equal(t, 0, c.At(0))
	assert.Equal(t, 42, c.At(time.Second))
	assert.Equal(t, 42, c.At(5*time.Second))

	// ease-out runs ahead of linear at the midpoint
	mid := c.At(500 * time.Millisecond)
	assert.Greater(t, mid, 21)
	assert.Less(t, mid, 42)
}

func TestCounter_Monotonic(t *testing.T) {
	c := Counter{From: 3, To: 17, Duration: 100 * time.Millisecond}
	prev := c.From
	for ms := 0; ms <= 120; ms += 5 {
		v := c.At(time.Duration(ms) * time.Millisecond)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
	assert.Equal(t, 17, prev)
}

func TestCounter_Frames(t *testing.T) {
	for _, to := range []int{0, 1, 7, 1000} {
		frames := NewCounter(to).Frames(30)
		assert.Len(t, frames, 30)
		assert.Equal(t, to, frames[len(frames)-1])
	}

	assert.Equal(t, []int{5}, Counter{To: 5}.Frames(0))
	assert.Equal(t, 9, Counter{To: 9}.At(0), "zero duration jumps to the target")
}
