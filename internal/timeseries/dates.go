package timeseries

import (
	"fmt"
	"time"

	"github.com/tsalign/tsalign/internal/utils"
)

// DefaultRangeResolution is the grid step used by CreateDateRange when none
// is supplied.
const DefaultRangeResolution = 5 * time.Minute

// parseDates coerces the timestamp column into time.Time values. Numeric
// elements are interpreted as POSIX epoch seconds and localized to the
// series zone; strings require a parse layout. The element type is inferred
// from the first element only; mixed columns are not supported.
func (s *Series) parseDates() error {
	raw, err := s.Values(s.timeField)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}

	switch raw[0].(type) {
	case time.Time:
		// already parsed
		return nil
	case string:
		if s.layout == "" {
			return fmt.Errorf("%w: timestamp column holds strings", ErrMissingLayout)
		}
		converted := make([]interface{}, len(raw))
		for i, v := range raw {
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: element %d is %T, expected string", ErrUnsupportedTimestampType, i, v)
			}
			t, err := time.ParseInLocation(s.layout, str, s.loc)
			if err != nil {
				return fmt.Errorf("parse timestamp %q with layout %q: %w", str, s.layout, err)
			}
			converted[i] = t
		}
		s.setTimestampColumn(converted)
		return nil
	default:
		if _, ok := utils.ToFloat64(raw[0]); !ok {
			return fmt.Errorf("%w: %T", ErrUnsupportedTimestampType, raw[0])
		}
		converted := make([]interface{}, len(raw))
		for i, v := range raw {
			f, ok := utils.ToFloat64(v)
			if !ok {
				return fmt.Errorf("%w: element %d is %T, expected numeric epoch", ErrUnsupportedTimestampType, i, v)
			}
			converted[i] = epochToTime(f, s.loc)
		}
		s.setTimestampColumn(converted)
		return nil
	}
}

// setTimestampColumn replaces the timestamp column in place.
func (s *Series) setTimestampColumn(converted []interface{}) {
	if s.shape == ShapeColumns {
		s.columns[s.timeField] = converted
		return
	}
	for i, rec := range s.rows {
		rec[s.timeField] = converted[i]
	}
}

// epochToTime converts epoch seconds (fractional allowed) to a localized
// time.Time.
func epochToTime(epoch float64, loc *time.Location) time.Time {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).In(loc)
}

// DateRangeOptions configures CreateDateRange. To and NumPoints are mutually
// exclusive; when both are zero the range ends at the current time.
type DateRangeOptions struct {
	To           time.Time
	NumPoints    int
	Resolution   time.Duration
	IncludeStart bool
	Location     *time.Location
}

// CreateDateRange generates a synthetic timestamp sequence with a fixed step
// without requiring a Series instance. Supplying both To and NumPoints fails
// with ErrConflictingParameters.
func CreateDateRange(from time.Time, opts DateRangeOptions) ([]time.Time, error) {
	if !opts.To.IsZero() && opts.NumPoints > 0 {
		return nil, fmt.Errorf("%w: both end date and point count supplied", ErrConflictingParameters)
	}

	resolution := opts.Resolution
	if resolution <= 0 {
		resolution = DefaultRangeResolution
	}
	loc := opts.Location
	if loc == nil {
		loc = from.Location()
	}

	start := from
	if !opts.IncludeStart {
		start = from.Add(resolution)
	}

	if opts.NumPoints > 0 {
		result := make([]time.Time, 0, opts.NumPoints)
		cursor := start
		for i := 0; i < opts.NumPoints; i++ {
			result = append(result, cursor.In(loc))
			cursor = cursor.Add(resolution)
		}
		return result, nil
	}

	to := opts.To
	if to.IsZero() {
		to = time.Now().In(loc)
	}
	if from.After(to) {
		return []time.Time{from.In(loc)}, nil
	}

	var result []time.Time
	for cursor := start; !cursor.After(to); cursor = cursor.Add(resolution) {
		result = append(result, cursor.In(loc))
	}
	return result, nil
}
