package timeseries

import (
	"fmt"
	"time"
)

// detectShape classifies raw input data. A mapping containing the timestamp
// field is column-oriented; a slice of records (empty included) is
// row-oriented; everything else is unsupported.
func detectShape(data interface{}, timeField string) (Shape, error) {
	switch d := data.(type) {
	case Columns:
		if _, ok := d[timeField]; !ok {
			return "", fmt.Errorf("%w: column mapping has no %q field", ErrUnsupportedShape, timeField)
		}
		return ShapeColumns, nil
	case []Record:
		return ShapeRows, nil
	case nil:
		return "", fmt.Errorf("%w: input data is nil", ErrUnsupportedShape)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedShape, data)
	}
}

// ToRows returns the series as a slice of records. When layout is non-empty,
// timestamps are rendered as strings in that layout; the internal state is
// never mutated.
func (s *Series) ToRows(layout string) []Record {
	var rows []Record
	if s.shape == ShapeRows {
		rows = append([]Record(nil), s.rows...)
	} else {
		rows = columnsToRows(s.columns, s.allFields())
	}
	if layout == "" {
		return rows
	}
	out := make([]Record, len(rows))
	for i, rec := range rows {
		out[i] = cloneRecord(rec)
		if t, ok := rec[s.timeField].(time.Time); ok {
			out[i][s.timeField] = t.Format(layout)
		}
	}
	return out
}

// ToColumns returns the series as a mapping of field name to value slice.
// When layout is non-empty, timestamps are rendered as strings in that
// layout; the internal state is never mutated.
func (s *Series) ToColumns(layout string) Columns {
	var cols Columns
	if s.shape == ShapeColumns {
		cols = make(Columns, len(s.columns))
		for key, vals := range s.columns {
			cols[key] = vals
		}
	} else {
		cols = rowsToColumns(s.rows, s.allFields())
	}
	if layout == "" {
		return cols
	}
	rendered := make([]interface{}, len(cols[s.timeField]))
	for i, v := range cols[s.timeField] {
		if t, ok := v.(time.Time); ok {
			rendered[i] = t.Format(layout)
		} else {
			rendered[i] = v
		}
	}
	cols[s.timeField] = rendered
	return cols
}

// asRows returns a row-oriented working view of the data. For a row-shaped
// series this is the live backing slice; callers must not mutate the records.
func (s *Series) asRows() []Record {
	if s.shape == ShapeRows {
		return s.rows
	}
	return columnsToRows(s.columns, s.allFields())
}

// columnsToRows zips each column at each index into one record per index.
func columnsToRows(cols Columns, fields []string) []Record {
	length := 0
	for _, field := range fields {
		length = len(cols[field])
		break
	}
	rows := make([]Record, length)
	for i := 0; i < length; i++ {
		rec := make(Record, len(fields))
		for _, field := range fields {
			rec[field] = cols[field][i]
		}
		rows[i] = rec
	}
	return rows
}

// rowsToColumns is the inverse of columnsToRows.
func rowsToColumns(rows []Record, fields []string) Columns {
	cols := make(Columns, len(fields))
	for _, field := range fields {
		vals := make([]interface{}, len(rows))
		for i, rec := range rows {
			vals[i] = rec[field]
		}
		cols[field] = vals
	}
	return cols
}
