package timeseries

import (
	"errors"
	"testing"
	"time"
)

func TestNew_DetectsShapes(t *testing.T) {
	rows := []Record{
		{"date_time": float64(0), "power": 1.0},
		{"date_time": float64(60), "power": 2.0},
	}
	s, err := New(rows, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Shape() != ShapeRows {
		t.Errorf("expected rows shape, got %s", s.Shape())
	}
	if got := s.Keys(); len(got) != 1 || got[0] != "power" {
		t.Errorf("expected keys [power], got %v", got)
	}

	cols := Columns{
		"date_time": {float64(0), float64(60)},
		"power":     {1.0, 2.0},
		"voltage":   {230.0, 231.0},
	}
	s, err = New(cols, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Shape() != ShapeColumns {
		t.Errorf("expected columns shape, got %s", s.Shape())
	}
	if got := s.Keys(); len(got) != 2 || got[0] != "power" || got[1] != "voltage" {
		t.Errorf("expected keys [power voltage], got %v", got)
	}
}

func TestNew_EmptyRows(t *testing.T) {
	s, err := New([]Record{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Shape() != ShapeRows {
		t.Errorf("expected rows shape, got %s", s.Shape())
	}
	if s.Len() != 0 {
		t.Errorf("expected empty series, got length %d", s.Len())
	}
	if len(s.Keys()) != 0 {
		t.Errorf("expected no keys, got %v", s.Keys())
	}
}

func TestNew_UnsupportedShape(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"nil", nil},
		{"scalar", 42},
		{"string slice", []string{"a"}},
		{"columns without timestamp", Columns{"power": {1.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input)
			if !errors.Is(err, ErrUnsupportedShape) {
				t.Errorf("expected ErrUnsupportedShape, got %v", err)
			}
		})
	}
}

func TestShapeRoundTrip(t *testing.T) {
	rows := []Record{
		{"date_time": float64(0), "power": 1.0, "voltage": 230.0},
		{"date_time": float64(60), "power": 2.0, "voltage": 231.0},
		{"date_time": float64(120), "power": 3.0, "voltage": 232.0},
	}
	s, err := New(rows, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cols := s.ToColumns("")
	back, err := New(cols, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	roundTripped := back.ToRows("")

	if len(roundTripped) != len(rows) {
		t.Fatalf("expected %d records, got %d", len(rows), len(roundTripped))
	}
	for i, rec := range roundTripped {
		for _, key := range []string{"power", "voltage"} {
			if rec[key] != rows[i][key] {
				t.Errorf("record %d key %s: got %v, want %v", i, key, rec[key], rows[i][key])
			}
		}
	}
}

func TestToRows_RendersTimestamps(t *testing.T) {
	s, err := New([]Record{
		{"date_time": float64(0), "power": 1.0},
	}, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rendered := s.ToRows(DefaultLayout)
	if got := rendered[0]["date_time"]; got != "1970-01-01 00:00:00" {
		t.Errorf("expected rendered timestamp, got %v", got)
	}

	// rendering must not leak into internal state
	dates, err := s.Dates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dates[0].Equal(time.Unix(0, 0)) {
		t.Errorf("internal timestamp mutated: %v", dates[0])
	}
}

func TestToColumns_RendersTimestamps(t *testing.T) {
	s, err := New(Columns{
		"date_time": {float64(3600)},
		"power":     {1.0},
	}, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cols := s.ToColumns(DefaultLayout)
	if got := cols["date_time"][0]; got != "1970-01-01 01:00:00" {
		t.Errorf("expected rendered timestamp, got %v", got)
	}
}
