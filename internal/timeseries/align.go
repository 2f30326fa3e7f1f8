package timeseries

import (
	"fmt"
	"time"

	"github.com/tsalign/tsalign/internal/utils"
)

// AlignOptions configures AlignToResolution. Zero values mean: detect the
// resolution from the data, start at the first timestamp, end at the last.
type AlignOptions struct {
	Resolution time.Duration
	Start      time.Time
	End        time.Time
}

// AlignToResolution rewrites the series so its timestamps form the exact
// arithmetic progression start, start+r, start+2r, ... up to end inclusive.
// A real sample is snapped onto a grid tick when it lies within half a
// resolution of it; samples falling behind the grid are skipped; gaps are
// filled by linear interpolation between the neighbouring known points; the
// grid past the last sample repeats the last known values.
//
// Value fields must be numeric for interpolation. The result is buffered and
// swapped into the series only on success, so a failed alignment leaves the
// series untouched.
func (s *Series) AlignToResolution(opts AlignOptions) error {
	rows := s.asRows()
	if len(rows) == 0 {
		return fmt.Errorf("%w: series is empty", ErrResolutionUndetermined)
	}

	resolution := opts.Resolution
	if resolution == 0 {
		detected, err := s.Resolution()
		if err != nil {
			return err
		}
		resolution = detected
	}
	if resolution <= 0 {
		return fmt.Errorf("%w: non-positive resolution %s", ErrResolutionUndetermined, resolution)
	}
	tolerance := resolution / 2

	start, err := recordTime(rows[0], s.timeField)
	if err != nil {
		return err
	}
	if !opts.Start.IsZero() {
		start = opts.Start
	}
	end, err := recordTime(rows[len(rows)-1], s.timeField)
	if err != nil {
		return err
	}
	if !opts.End.IsZero() {
		end = opts.End
	}

	if start.After(end) {
		// degenerate window: a single tick at the start boundary
		s.setRows([]Record{snapRecord(rows[0], s.timeField, start)})
		s.resolution = resolution
		return nil
	}

	var (
		result []Record
		prev   Record
		idx    int
	)

	for cursor := start; !cursor.After(end); {
		i := idx
		if i > len(rows)-1 {
			i = len(rows) - 1
		}
		orig := rows[i]
		origTime, err := recordTime(orig, s.timeField)
		if err != nil {
			return err
		}
		diff := cursor.Sub(origTime)

		switch {
		case diff == 0 || absDuration(diff) < tolerance:
			// close enough: accept the original point on this tick
			rec := snapRecord(orig, s.timeField, cursor)
			result = append(result, rec)
			prev = rec
			idx++
			cursor = cursor.Add(resolution)

		case diff > 0:
			if i >= len(rows)-1 {
				// past the end of the data: repeat the last known values
				for !cursor.After(end) {
					rec := snapRecord(orig, s.timeField, cursor)
					result = append(result, rec)
					cursor = cursor.Add(resolution)
				}
				break
			}
			// stale sample behind the grid: drop it, keep the tick
			idx++

		default:
			// next sample lies ahead of the grid: interpolate this tick
			rec, err := s.interpolate(prev, orig, cursor)
			if err != nil {
				return err
			}
			result = append(result, rec)
			prev = rec
			cursor = cursor.Add(resolution)
		}
	}

	s.setRows(result)
	s.resolution = resolution
	return nil
}

// interpolate builds a record at tick whose value fields are linearly
// blended between the last emitted record and the next known sample,
// weighted by the tick's position in the gap. With no previous record the
// next sample's values are repeated (leading boundary extrapolation).
func (s *Series) interpolate(prev, next Record, tick time.Time) (Record, error) {
	rec := make(Record, len(s.keys)+1)
	rec[s.timeField] = tick

	if prev == nil {
		for _, key := range s.keys {
			rec[key] = next[key]
		}
		return rec, nil
	}

	nextTime, err := recordTime(next, s.timeField)
	if err != nil {
		return nil, err
	}
	prevTime, err := recordTime(prev, s.timeField)
	if err != nil {
		return nil, err
	}
	span := nextTime.Sub(prevTime)
	if span <= 0 {
		for _, key := range s.keys {
			rec[key] = next[key]
		}
		return rec, nil
	}
	weight := float64(tick.Sub(prevTime)) / float64(span)

	for _, key := range s.keys {
		prevVal, ok := utils.ToFloat64(prev[key])
		if !ok {
			return nil, fmt.Errorf("interpolate %q: non-numeric value %T", key, prev[key])
		}
		nextVal, ok := utils.ToFloat64(next[key])
		if !ok {
			return nil, fmt.Errorf("interpolate %q: non-numeric value %T", key, next[key])
		}
		rec[key] = prevVal + weight*(nextVal-prevVal)
	}
	return rec, nil
}

// snapRecord copies a record with its timestamp overwritten to the grid tick.
func snapRecord(rec Record, timeField string, tick time.Time) Record {
	out := cloneRecord(rec)
	out[timeField] = tick
	return out
}

func recordTime(rec Record, timeField string) (time.Time, error) {
	t, ok := rec[timeField].(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %T", ErrUnsupportedTimestampType, rec[timeField])
	}
	return t, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
