package models

// SeriesResponse returns a processed series along with its metadata
type SeriesResponse struct {
	Series     SeriesPayload           `json:"series"`
	Resolution string                  `json:"resolution,omitempty"` // Sample spacing as a Go duration string
	Keys       []string                `json:"keys"`                 // Value field names, timestamp excluded
	NumPoints  int                     `json:"num_points"`
	Start      string                  `json:"start,omitempty"`
	End        string                  `json:"end,omitempty"`
	Summary    map[string]FieldSummary `json:"summary,omitempty"`    // Per-field statistics
}

// FieldSummary carries the statistics computed per value field of a
// processed series
type FieldSummary struct {
	Mean         float64 `json:"mean"`          // Arithmetic mean over all samples
	WeightedMean float64 `json:"weighted_mean"` // Recency-weighted mean, later samples weigh more
	Trend        float64 `json:"trend"`         // Least-squares slope per grid step
	LastScaled   float64 `json:"last_scaled"`   // Final value min-max scaled into the observed range
}

// ResolutionResponse returns the detected sample spacing
type ResolutionResponse struct {
	Resolution string  `json:"resolution"`
	Seconds    float64 `json:"seconds"`
}

// DateRangeResponse returns a generated timestamp sequence
type DateRangeResponse struct {
	Dates     []string `json:"dates"`
	NumPoints int      `json:"num_points"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
