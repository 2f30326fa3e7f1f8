package utils

import "time"

// HTTP handler timeouts
const (
	// DefaultRequestTimeout is the default timeout for HTTP requests
	DefaultRequestTimeout = 30 * time.Second
)

// Alignment limits
const (
	// DefaultMaxPoints caps the number of input points per alignment request
	DefaultMaxPoints = 100000

	// DefaultDownsampleThreshold is the target point count when a response
	// is downsampled for charting
	DefaultDownsampleThreshold = 1000
)
