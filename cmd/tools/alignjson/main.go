// alignjson aligns a JSON time series file onto a regular grid from the
// command line. The input is a JSON array of records or an object of
// parallel columns; the aligned series is written to stdout or a file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tsalign/tsalign/internal/timeseries"
)

func main() {
	input := flag.String("input", "", "Path to JSON input file (required)")
	output := flag.String("output", "", "Path to output file (default: stdout)")
	timeField := flag.String("time-field", timeseries.DefaultTimeField, "Timestamp field name")
	layout := flag.String("layout", timeseries.DefaultLayout, "Timestamp layout for string timestamps")
	timezone := flag.String("timezone", "UTC", "Timezone for epoch timestamps")
	resolution := flag.Duration("resolution", 0, "Target spacing (e.g. 30s, 5m); auto-detected when zero")
	shape := flag.String("shape", "rows", "Output shape: rows or columns")

	flag.Parse()

	if *input == "" {
		log.Fatal("Error: -input parameter is required")
	}

	loc, err := time.LoadLocation(*timezone)
	if err != nil {
		log.Fatalf("Error: Invalid timezone '%s': %v\n", *timezone, err)
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Error: Failed to read input: %v\n", err)
	}

	data, err := decode(raw)
	if err != nil {
		log.Fatalf("Error: Failed to parse input: %v\n", err)
	}

	series, err := timeseries.New(data,
		timeseries.WithTimeField(*timeField),
		timeseries.WithLayout(*layout),
		timeseries.WithLocation(loc),
	)
	if err != nil {
		log.Fatalf("Error: Failed to build series: %v\n", err)
	}

	if err := series.AlignToResolution(timeseries.AlignOptions{Resolution: *resolution}); err != nil {
		log.Fatalf("Error: Alignment failed: %v\n", err)
	}

	var out interface{}
	switch *shape {
	case "rows":
		out = series.ToRows(*layout)
	case "columns":
		out = series.ToColumns(*layout)
	default:
		log.Fatalf("Error: Invalid shape '%s' (want rows or columns)\n", *shape)
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("Error: Failed to encode output: %v\n", err)
	}

	if *output == "" {
		fmt.Println(string(encoded))
		return
	}
	if err := os.WriteFile(*output, append(encoded, '\n'), 0644); err != nil {
		log.Fatalf("Error: Failed to write output: %v\n", err)
	}

	r, _ := series.Resolution()
	fmt.Printf("Aligned %d points at %s -> %s\n", series.Len(), r, *output)
}

// decode accepts either a record list or a column map
func decode(raw []byte) (interface{}, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal(raw, &rows); err == nil {
		return rows, nil
	}

	var cols map[string][]interface{}
	if err := json.Unmarshal(raw, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}
