package timeseries

import (
	"fmt"
)

// AddValues appends a new value series under key. The new series is assumed
// to be aligned with the timestamp column already. A length differing from
// the current one by one is reconciled by boundary-repetition or truncation
// at the end, by two at both ends; any larger difference fails with
// ErrLengthMismatch.
func (s *Series) AddValues(key string, values []interface{}) error {
	if err := s.checkNewKey(key); err != nil {
		return err
	}

	length := s.Len()
	reconciled, err := reconcileLength(values, length)
	if err != nil {
		return fmt.Errorf("add %q: %w", key, err)
	}

	if s.shape == ShapeColumns {
		s.columns[key] = reconciled
	} else {
		for i, rec := range s.rows {
			rec[key] = reconciled[i]
		}
	}
	s.recomputeMetadata()
	return nil
}

// FillValues appends a new value series filled entirely with one constant.
func (s *Series) FillValues(key string, constant interface{}) error {
	if err := s.checkNewKey(key); err != nil {
		return err
	}

	if s.shape == ShapeColumns {
		filled := make([]interface{}, s.Len())
		for i := range filled {
			filled[i] = constant
		}
		s.columns[key] = filled
	} else {
		for _, rec := range s.rows {
			rec[key] = constant
		}
	}
	s.recomputeMetadata()
	return nil
}

// RemoveSeries deletes the named value fields. Naming the timestamp field
// fails with ErrProtectedField before anything is removed.
func (s *Series) RemoveSeries(keys ...string) error {
	for _, key := range keys {
		if key == s.timeField {
			return fmt.Errorf("%w: %q", ErrProtectedField, key)
		}
	}

	if s.shape == ShapeColumns {
		for _, key := range keys {
			delete(s.columns, key)
		}
	} else {
		for _, rec := range s.rows {
			for _, key := range keys {
				delete(rec, key)
			}
		}
	}
	s.recomputeMetadata()
	return nil
}

// AddSeries merges the value fields of another series into this one. Both
// series are aligned to this series' detected resolution over this series'
// time window first; the other series is aligned on a private copy, so the
// caller's instance is never mutated.
func (s *Series) AddSeries(other *Series, keysToAdd ...string) error {
	if other == nil {
		return fmt.Errorf("%w: nil series", ErrTypeMismatch)
	}

	keys := keysToAdd
	if len(keys) == 0 {
		keys = other.Keys()
	}
	for _, key := range keys {
		if err := s.checkNewKey(key); err != nil {
			return err
		}
	}

	resolution, err := s.Resolution()
	if err != nil {
		return err
	}
	if err := s.AlignToResolution(AlignOptions{Resolution: resolution}); err != nil {
		return err
	}

	start, err := s.StartDate()
	if err != nil {
		return err
	}
	end, err := s.EndDate()
	if err != nil {
		return err
	}

	aligned := other.Clone()
	if err := aligned.AlignToResolution(AlignOptions{Resolution: resolution, Start: start, End: end}); err != nil {
		return err
	}

	for _, key := range keys {
		values, err := aligned.Values(key)
		if err != nil {
			return err
		}
		if err := s.AddValues(key, values); err != nil {
			return err
		}
	}
	return nil
}

// checkNewKey rejects keys that already exist as a value field or as the
// timestamp field.
func (s *Series) checkNewKey(key string) error {
	if key == s.timeField {
		return fmt.Errorf("%w: %q is the timestamp field", ErrDuplicateKey, key)
	}
	for _, existing := range s.keys {
		if existing == key {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
	}
	return nil
}

// reconcileLength adapts a value slice to the target length. Differences of
// one or two elements are absorbed at the boundaries; anything larger is a
// mismatch.
func reconcileLength(values []interface{}, target int) ([]interface{}, error) {
	switch delta := target - len(values); {
	case delta == 0:
		return values, nil
	case delta == 1:
		if len(values) == 0 {
			return nil, fmt.Errorf("%w: 0 values for length %d", ErrLengthMismatch, target)
		}
		out := make([]interface{}, 0, target)
		out = append(out, values...)
		return append(out, values[len(values)-1]), nil
	case delta == 2:
		if len(values) == 0 {
			return nil, fmt.Errorf("%w: 0 values for length %d", ErrLengthMismatch, target)
		}
		out := make([]interface{}, 0, target)
		out = append(out, values[0])
		out = append(out, values...)
		return append(out, values[len(values)-1]), nil
	case delta == -1:
		return values[:len(values)-1], nil
	case delta == -2:
		return values[1 : len(values)-1], nil
	default:
		return nil, fmt.Errorf("%w: %d values for length %d", ErrLengthMismatch, len(values), target)
	}
}
