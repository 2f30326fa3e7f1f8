package models

// SeriesPayload is the wire form of a time series. Exactly one of Rows or
// Columns must be set: Rows carries a list of records each holding a
// timestamp plus value fields, Columns carries parallel field slices keyed
// by field name.
type SeriesPayload struct {
	Rows    []map[string]interface{} `json:"rows,omitempty"`
	Columns map[string][]interface{} `json:"columns,omitempty"`
}

// SeriesOptions carries the per-request parsing overrides applied to a
// payload before any operation runs
type SeriesOptions struct {
	TimeField string `json:"time_field,omitempty"` // Timestamp field name, defaults to server configuration
	Layout    string `json:"layout,omitempty"`     // Go reference layout for string timestamps
	Timezone  string `json:"timezone,omitempty"`   // IANA zone applied to epoch timestamps
}

// AlignRequest asks for a series to be aligned onto a regular grid
type AlignRequest struct {
	Series     SeriesPayload `json:"series"`
	Options    SeriesOptions `json:"options,omitempty"`
	Resolution string        `json:"resolution,omitempty"` // Target spacing (Go duration, e.g. "30s"); auto-detected when empty
	Start      string        `json:"start,omitempty"`      // Grid start timestamp, defaults to first sample
	End        string        `json:"end,omitempty"`        // Grid end timestamp, defaults to last sample
	Downsample string        `json:"downsample,omitempty"` // Optional reducer: avg, lttb, minmax
	MaxOutput  int           `json:"max_output,omitempty"` // Target point count when downsampling
}

// MergeRequest asks for value fields of Other to be aligned onto Base's
// grid and appended to it
type MergeRequest struct {
	Base    SeriesPayload `json:"base"`
	Other   SeriesPayload `json:"other"`
	Options SeriesOptions `json:"options,omitempty"`
	Keys    []string      `json:"keys,omitempty"` // Fields to take from Other; all non-timestamp fields when empty
}

// ResolutionRequest asks for the dominant sample spacing of a series
type ResolutionRequest struct {
	Series  SeriesPayload `json:"series"`
	Options SeriesOptions `json:"options,omitempty"`
}

// DateRangeRequest asks for a regular sequence of timestamps
type DateRangeRequest struct {
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	NumPoints    int    `json:"num_points,omitempty"`
	Resolution   string `json:"resolution,omitempty"`
	ExcludeStart bool   `json:"exclude_start,omitempty"`
	Layout       string `json:"layout,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
}

// ExportRequest asks for a series rendered for transfer, optionally aligned
// first and optionally compressed
type ExportRequest struct {
	Series     SeriesPayload `json:"series"`
	Options    SeriesOptions `json:"options,omitempty"`
	Resolution string        `json:"resolution,omitempty"` // Align before export when set
	Shape      string        `json:"shape,omitempty"`      // rows or columns, defaults to rows
	Compress   bool          `json:"compress,omitempty"`   // Snappy-compress the response body
}
