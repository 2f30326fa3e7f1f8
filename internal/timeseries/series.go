// Package timeseries resamples irregularly sampled, multi-shaped time-stamped
// data onto a regular time grid. A Series accepts either a column-oriented
// mapping of field name to value slice or a row-oriented slice of records,
// detects the dominant sampling interval, and aligns the data to an exact
// arithmetic grid with linear interpolation for gaps and boundary-value
// repetition past the ends.
//
// The package is purely in-memory and single-threaded; it performs no I/O.
package timeseries

import (
	"fmt"
	"sort"
	"time"
)

// DefaultTimeField is the timestamp field name used when none is configured.
const DefaultTimeField = "date_time"

// DefaultLayout is the timestamp layout used when rendering dates as strings
// and no explicit layout is configured.
const DefaultLayout = "2006-01-02 15:04:05"

// Record is one row of a series: field name to value.
type Record = map[string]interface{}

// Columns is the column-oriented form: field name to index-aligned values.
type Columns = map[string][]interface{}

// Shape identifies which of the two data representations a Series holds.
type Shape string

const (
	// ShapeColumns is a mapping of field name to value slice.
	ShapeColumns Shape = "columns"
	// ShapeRows is a slice of records sharing the same key set.
	ShapeRows Shape = "rows"
)

// Series holds time-stamped data in one of the two supported shapes. The
// shape is detected at construction and preserved by every mutating
// operation; internal translation may use the other shape as scratch space
// but never changes the observable shape.
type Series struct {
	shape   Shape
	rows    []Record // active when shape == ShapeRows
	columns Columns  // active when shape == ShapeColumns

	timeField string
	layout    string
	loc       *time.Location

	keys       []string // value field names, timestamp excluded
	resolution time.Duration
}

// Option configures a Series at construction time.
type Option func(*Series)

// WithTimeField sets the timestamp field name (default "date_time").
func WithTimeField(name string) Option {
	return func(s *Series) { s.timeField = name }
}

// WithLayout sets the layout used to parse string timestamps.
func WithLayout(layout string) Option {
	return func(s *Series) { s.layout = layout }
}

// WithLocation sets the zone used to localize epoch timestamps and to
// resolve "now" (default: the host's local zone).
func WithLocation(loc *time.Location) Option {
	return func(s *Series) { s.loc = loc }
}

// New builds a Series from raw input data. The input must be either a
// Columns mapping containing the timestamp field or a []Record sequence;
// anything else fails with ErrUnsupportedShape. Ownership of the input is
// taken over: callers must not assume it remains unmodified.
func New(data interface{}, opts ...Option) (*Series, error) {
	s := &Series{
		timeField: DefaultTimeField,
		loc:       time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}

	shape, err := detectShape(data, s.timeField)
	if err != nil {
		return nil, err
	}
	s.shape = shape
	switch shape {
	case ShapeColumns:
		s.columns = data.(Columns)
	case ShapeRows:
		s.rows = data.([]Record)
	}
	s.recomputeMetadata()

	if err := s.parseDates(); err != nil {
		return nil, err
	}
	return s, nil
}

// recomputeMetadata re-derives the value field names from the data. It is
// invoked explicitly after every structural mutation. Field order is
// alphabetical: Go maps carry no encounter order, so a sorted order is the
// deterministic equivalent.
func (s *Series) recomputeMetadata() {
	keys := make([]string, 0)
	switch s.shape {
	case ShapeColumns:
		for key := range s.columns {
			if key != s.timeField {
				keys = append(keys, key)
			}
		}
	case ShapeRows:
		if len(s.rows) > 0 {
			for key := range s.rows[0] {
				if key != s.timeField {
					keys = append(keys, key)
				}
			}
		}
	}
	sort.Strings(keys)
	s.keys = keys
}

// Shape returns the active representation of the series.
func (s *Series) Shape() Shape {
	return s.shape
}

// Keys returns the value field names, timestamp field excluded.
func (s *Series) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// TimeField returns the name of the timestamp field.
func (s *Series) TimeField() string {
	return s.timeField
}

// Len returns the number of time points in the series.
func (s *Series) Len() int {
	if s.shape == ShapeColumns {
		return len(s.columns[s.timeField])
	}
	return len(s.rows)
}

// Values extracts one field as an ordered slice.
func (s *Series) Values(key string) ([]interface{}, error) {
	switch s.shape {
	case ShapeColumns:
		col, ok := s.columns[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		return col, nil
	default:
		if len(s.rows) == 0 {
			return nil, nil
		}
		if _, ok := s.rows[0][key]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		out := make([]interface{}, len(s.rows))
		for i, rec := range s.rows {
			out[i] = rec[key]
		}
		return out, nil
	}
}

// Dates returns the parsed timestamp column.
func (s *Series) Dates() ([]time.Time, error) {
	raw, err := s.Values(s.timeField)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(raw))
	for i, v := range raw {
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrUnsupportedTimestampType, i, v)
		}
		out[i] = t
	}
	return out, nil
}

// StartDate returns the first timestamp of the series.
func (s *Series) StartDate() (time.Time, error) {
	dates, err := s.Dates()
	if err != nil {
		return time.Time{}, err
	}
	if len(dates) == 0 {
		return time.Time{}, fmt.Errorf("%w: series is empty", ErrResolutionUndetermined)
	}
	return dates[0], nil
}

// EndDate returns the last timestamp of the series.
func (s *Series) EndDate() (time.Time, error) {
	dates, err := s.Dates()
	if err != nil {
		return time.Time{}, err
	}
	if len(dates) == 0 {
		return time.Time{}, fmt.Errorf("%w: series is empty", ErrResolutionUndetermined)
	}
	return dates[len(dates)-1], nil
}

// Clone returns a deep copy of the series. The copy shares no data with the
// original.
func (s *Series) Clone() *Series {
	out := &Series{
		shape:      s.shape,
		timeField:  s.timeField,
		layout:     s.layout,
		loc:        s.loc,
		resolution: s.resolution,
		keys:       append([]string(nil), s.keys...),
	}
	switch s.shape {
	case ShapeColumns:
		cols := make(Columns, len(s.columns))
		for key, vals := range s.columns {
			cols[key] = append([]interface{}(nil), vals...)
		}
		out.columns = cols
	case ShapeRows:
		rows := make([]Record, len(s.rows))
		for i, rec := range s.rows {
			rows[i] = cloneRecord(rec)
		}
		out.rows = rows
	}
	return out
}

// setRows replaces the series data with the given records, translating back
// into the active shape if necessary, and recomputes the metadata.
func (s *Series) setRows(rows []Record) {
	if s.shape == ShapeColumns {
		s.columns = rowsToColumns(rows, s.allFields())
		s.rows = nil
	} else {
		s.rows = rows
		s.columns = nil
	}
	s.recomputeMetadata()
}

// allFields returns the timestamp field followed by the value fields.
func (s *Series) allFields() []string {
	fields := make([]string, 0, len(s.keys)+1)
	fields = append(fields, s.timeField)
	fields = append(fields, s.keys...)
	return fields
}

func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for key, val := range rec {
		out[key] = val
	}
	return out
}
