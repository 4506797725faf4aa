package output

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sambabib/version-autopsy/pkg/report"
)

const animationFrames = 24

// AnimateSummary counts the summary chips up from zero on a single
// terminal line, then leaves the exact totals in place. A cancelled context
// skips straight to the final frame.
func AnimateSummary(ctx context.Context, w io.Writer, s report.Summary, d time.Duration) error {
	chips := s.Chips()
	counters := make([]report.Counter, len(chips))
	for i, c := range chips {
		counters[i] = report.Counter{To: c.Count, Duration: d}
	}

	frame := func(elapsed time.Duration) error {
		line := fmt.Sprintf("\rAnalyzed %d packages:", report.Counter{To: s.Total, Duration: d}.At(elapsed))
		for i, c := range chips {
			line += fmt.Sprintf("  %s %d %s", c.Icon, counters[i].At(elapsed), c.Label)
		}
		_, err := io.WriteString(w, line)
		return err
	}

	if d > 0 {
		step := d / animationFrames
		ticker := time.NewTicker(max(step, time.Millisecond))
		defer ticker.Stop()

	frames:
		for i := 1; i < animationFrames; i++ {
			select {
			case <-ctx.Done():
				break frames
			case <-ticker.C:
			}
			if err := frame(time.Duration(i) * step); err != nil {
				return err
			}
		}
	}
	if err := frame(d); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
