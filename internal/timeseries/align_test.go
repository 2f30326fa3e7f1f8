package timeseries

import (
	"math"
	"testing"
	"time"
)

func floatValues(t *testing.T, s *Series, key string) []float64 {
	t.Helper()
	raw, err := s.Values(key)
	if err != nil {
		t.Fatalf("Values(%q): %v", key, err)
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		f, ok := v.(float64)
		if !ok {
			t.Fatalf("value %d is %T, want float64", i, v)
		}
		out[i] = f
	}
	return out
}

func epochs(t *testing.T, s *Series) []int64 {
	t.Helper()
	dates, err := s.Dates()
	if err != nil {
		t.Fatalf("Dates(): %v", err)
	}
	out := make([]int64, len(dates))
	for i, d := range dates {
		out[i] = d.Unix()
	}
	return out
}

func TestAlign_InterpolatesSingleGap(t *testing.T) {
	// two samples two ticks apart: the middle tick is the midpoint
	s, err := New([]Record{
		{"date_time": float64(0), "v": 0.0},
		{"date_time": float64(120), "v": 10.0},
	}, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.AlignToResolution(AlignOptions{Resolution: time.Minute}); err != nil {
		t.Fatalf("align: %v", err)
	}

	wantEpochs := []int64{0, 60, 120}
	wantValues := []float64{0, 5, 10}
	gotEpochs := epochs(t, s)
	gotValues := floatValues(t, s, "v")

	if len(gotEpochs) != len(wantEpochs) {
		t.Fatalf("expected %d points, got %d", len(wantEpochs), len(gotEpochs))
	}
	for i := range wantEpochs {
		if gotEpochs[i] != wantEpochs[i] {
			t.Errorf("epoch %d: got %d, want %d", i, gotEpochs[i], wantEpochs[i])
		}
		if gotValues[i] != wantValues[i] {
			t.Errorf("value %d: got %v, want %v", i, gotValues[i], wantValues[i])
		}
	}
}

func TestAlign_GapInterpolationLinearity(t *testing.T) {
	// k resolution ticks between two known points produce k-1
	// intermediates in arithmetic progression
	const k = 5
	s, err := New([]Record{
		{"date_time": float64(0), "v": 10.0},
		{"date_time": float64(k * 60), "v": 60.0},
	}, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.AlignToResolution(AlignOptions{Resolution: time.Minute}); err != nil {
		t.Fatalf("align: %v", err)
	}

	values := floatValues(t, s, "v")
	if len(values) != k+1 {
		t.Fatalf("expected %d points, got %d", k+1, len(values))
	}
	step := (60.0 - 10.0) / k
	for i, v := range values {
		want := 10.0 + float64(i)*step
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("value %d: got %v, want %v", i, v, want)
		}
	}
}

func TestAlign_Idempotent(t *testing.T) {
	s, err := New(regularRows(8, 60), WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AlignToResolution(AlignOptions{}); err != nil {
		t.Fatalf("first align: %v", err)
	}

	beforeEpochs := epochs(t, s)
	beforeValues := floatValues(t, s, "v")

	if err := s.AlignToResolution(AlignOptions{}); err != nil {
		t.Fatalf("second align: %v", err)
	}
	afterEpochs := epochs(t, s)
	afterValues := floatValues(t, s, "v")

	if len(beforeEpochs) != len(afterEpochs) {
		t.Fatalf("length changed: %d -> %d", len(beforeEpochs), len(afterEpochs))
	}
	for i := range beforeEpochs {
		if beforeEpochs[i] != afterEpochs[i] {
			t.Errorf("epoch %d changed: %d -> %d", i, beforeEpochs[i], afterEpochs[i])
		}
		if beforeValues[i] != afterValues[i] {
			t.Errorf("value %d changed: %v -> %v", i, beforeValues[i], afterValues[i])
		}
	}
}

func TestAlign_TrailingExtrapolation(t *testing.T) {
	// last real sample three ticks before the requested end: the last
	// known value repeats for the trailing synthetic ticks
	s, err := New([]Record{
		{"date_time": float64(0), "v": 1.0},
		{"date_time": float64(60), "v": 2.0},
	}, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	end := time.Unix(240, 0).UTC()
	if err := s.AlignToResolution(AlignOptions{Resolution: time.Minute, End: end}); err != nil {
		t.Fatalf("align: %v", err)
	}

	gotEpochs := epochs(t, s)
	gotValues := floatValues(t, s, "v")
	wantEpochs := []int64{0, 60, 120, 180, 240}
	wantValues := []float64{1, 2, 2, 2, 2}

	if len(gotEpochs) != len(wantEpochs) {
		t.Fatalf("expected %d points, got %d: %v", len(wantEpochs), len(gotEpochs), gotEpochs)
	}
	for i := range wantEpochs {
		if gotEpochs[i] != wantEpochs[i] {
			t.Errorf("epoch %d: got %d, want %d", i, gotEpochs[i], wantEpochs[i])
		}
		if gotValues[i] != wantValues[i] {
			t.Errorf("value %d: got %v, want %v", i, gotValues[i], wantValues[i])
		}
	}
}

func TestAlign_SkipsStaleSamples(t *testing.T) {
	// two samples crowded into one tick gap: the stale one is dropped
	s, err := New([]Record{
		{"date_time": float64(0), "v": 1.0},
		{"date_time": float64(5), "v": 99.0},
		{"date_time": float64(60), "v": 2.0},
	}, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.AlignToResolution(AlignOptions{Resolution: time.Minute}); err != nil {
		t.Fatalf("align: %v", err)
	}

	gotValues := floatValues(t, s, "v")
	if len(gotValues) != 2 {
		t.Fatalf("expected 2 points, got %d: %v", len(gotValues), gotValues)
	}
	if gotValues[0] != 1.0 || gotValues[1] != 2.0 {
		t.Errorf("expected [1 2], got %v", gotValues)
	}
}

func TestAlign_ToleranceSnapping(t *testing.T) {
	// a sample 20s off a 60s grid tick is within tolerance and snaps
	s, err := New([]Record{
		{"date_time": float64(0), "v": 1.0},
		{"date_time": float64(80), "v": 2.0},
	}, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	end := time.Unix(60, 0).UTC()
	if err := s.AlignToResolution(AlignOptions{Resolution: time.Minute, End: end}); err != nil {
		t.Fatalf("align: %v", err)
	}

	gotEpochs := epochs(t, s)
	gotValues := floatValues(t, s, "v")
	if len(gotEpochs) != 2 {
		t.Fatalf("expected 2 points, got %d", len(gotEpochs))
	}
	if gotEpochs[1] != 60 {
		t.Errorf("expected snapped timestamp 60, got %d", gotEpochs[1])
	}
	if gotValues[1] != 2.0 {
		t.Errorf("expected snapped value 2, got %v", gotValues[1])
	}
}

func TestAlign_LeadingExtrapolation(t *testing.T) {
	// an explicit start before the first sample repeats the first value
	s, err := New([]Record{
		{"date_time": float64(120), "v": 7.0},
		{"date_time": float64(180), "v": 8.0},
	}, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Unix(0, 0).UTC()
	if err := s.AlignToResolution(AlignOptions{Resolution: time.Minute, Start: start}); err != nil {
		t.Fatalf("align: %v", err)
	}

	gotValues := floatValues(t, s, "v")
	if len(gotValues) != 4 {
		t.Fatalf("expected 4 points, got %d: %v", len(gotValues), gotValues)
	}
	if gotValues[0] != 7.0 || gotValues[1] != 7.0 {
		t.Errorf("expected leading values repeated from first sample, got %v", gotValues)
	}
}

func TestAlign_StartAfterEnd(t *testing.T) {
	s, err := New(regularRows(3, 60), WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Unix(600, 0).UTC()
	end := time.Unix(0, 0).UTC()
	if err := s.AlignToResolution(AlignOptions{Resolution: time.Minute, Start: start, End: end}); err != nil {
		t.Fatalf("align: %v", err)
	}

	if s.Len() != 1 {
		t.Fatalf("expected single point, got %d", s.Len())
	}
	gotEpochs := epochs(t, s)
	if gotEpochs[0] != 600 {
		t.Errorf("expected the start boundary, got %d", gotEpochs[0])
	}
}

func TestAlign_PreservesColumnShape(t *testing.T) {
	cols := Columns{
		"date_time": {float64(0), float64(120)},
		"v":         {0.0, 10.0},
	}
	s, err := New(cols, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.AlignToResolution(AlignOptions{Resolution: time.Minute}); err != nil {
		t.Fatalf("align: %v", err)
	}

	if s.Shape() != ShapeColumns {
		t.Errorf("shape changed to %s", s.Shape())
	}
	if s.Len() != 3 {
		t.Errorf("expected 3 points, got %d", s.Len())
	}
}

func TestAlign_NonNumericFieldFails(t *testing.T) {
	s, err := New([]Record{
		{"date_time": float64(0), "label": "a"},
		{"date_time": float64(120), "label": "b"},
	}, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alignErr := s.AlignToResolution(AlignOptions{Resolution: time.Minute})
	if alignErr == nil {
		t.Fatal("expected interpolation of a non-numeric field to fail")
	}

	// a failed alignment must leave the series untouched
	if s.Len() != 2 {
		t.Errorf("series mutated by failed alignment: length %d", s.Len())
	}
}

func TestAlign_EmptySeries(t *testing.T) {
	s, err := New([]Record{}, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AlignToResolution(AlignOptions{Resolution: time.Minute}); err == nil {
		t.Fatal("expected error aligning an empty series")
	}
}
