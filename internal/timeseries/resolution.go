package timeseries

import (
	"fmt"
	"time"
)

// Resolution returns the dominant sampling interval of the series: the most
// frequent signed difference between consecutive timestamps. A cached value
// set via SetResolution takes precedence.
//
// The mode is used deliberately instead of a mean or median: telemetry data
// contains occasional large outage gaps that would corrupt an average, while
// the most common inter-sample gap is the best proxy for the intended rate.
func (s *Series) Resolution() (time.Duration, error) {
	if s.resolution != 0 {
		return s.resolution, nil
	}
	return s.detectResolution()
}

// SetResolution overrides auto-detection with an explicit interval. A zero
// duration clears the override so the next query re-detects.
func (s *Series) SetResolution(resolution time.Duration) {
	s.resolution = resolution
}

// detectResolution tallies the frequency of each distinct interval between
// consecutive timestamps, in existing order, and returns the most frequent
// one. Differencing starts from the second element; ties are broken by the
// first-encountered interval.
func (s *Series) detectResolution() (time.Duration, error) {
	dates, err := s.Dates()
	if err != nil {
		return 0, err
	}
	if len(dates) < 2 {
		return 0, fmt.Errorf("%w: %d timestamps", ErrResolutionUndetermined, len(dates))
	}

	counts := make(map[time.Duration]int)
	order := make([]time.Duration, 0)
	for i := 1; i < len(dates); i++ {
		diff := dates[i].Sub(dates[i-1])
		if _, seen := counts[diff]; !seen {
			order = append(order, diff)
		}
		counts[diff]++
	}

	best := order[0]
	for _, diff := range order[1:] {
		if counts[diff] > counts[best] {
			best = diff
		}
	}
	return best, nil
}
