// Package downsampling reduces aligned record sequences to a target point
// count while preserving their visual shape.
package downsampling

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsalign/tsalign/internal/stats"
	"github.com/tsalign/tsalign/internal/utils"
)

// Mode represents the downsampling mode
type Mode string

const (
	// ModeNone means no downsampling
	ModeNone Mode = "none"
	// ModeAverage uses the average value per bucket
	ModeAverage Mode = "avg"
	// ModeLTTB uses the Largest-Triangle-Three-Buckets algorithm
	ModeLTTB Mode = "lttb"
	// ModeMinMax keeps min and max values per bucket (preserves peaks)
	ModeMinMax Mode = "minmax"
)

// ValidModes returns all valid downsampling modes
func ValidModes() []Mode {
	return []Mode{ModeNone, ModeAverage, ModeLTTB, ModeMinMax}
}

// IsValid checks if a mode string is valid
func IsValid(mode string) bool {
	for _, m := range ValidModes() {
		if string(m) == mode {
			return true
		}
	}
	return false
}

type point struct {
	index int
	value float64
}

// Apply reduces rows to roughly threshold records. The timestamp field named
// by timeField is never touched. LTTB and min-max pick whole records by
// inspecting the pilot field (the first value field in sorted order when
// pilot is empty); avg replaces each bucket with one record averaging every
// numeric field. Records whose pilot value is missing or non-numeric are
// passed through untouched around the sampled ones being dropped.
func Apply(rows []map[string]interface{}, timeField, pilot string, mode Mode, threshold int) ([]map[string]interface{}, error) {
	if mode == ModeNone || mode == "" {
		return rows, nil
	}
	if !IsValid(string(mode)) {
		return nil, fmt.Errorf("unknown downsampling mode: %s", mode)
	}
	if threshold < 2 {
		threshold = 2
	}
	if len(rows) <= threshold {
		return rows, nil
	}

	if pilot == "" {
		pilot = firstValueField(rows, timeField)
		if pilot == "" {
			return rows, nil
		}
	}

	points := make([]point, 0, len(rows))
	for i, row := range rows {
		v, ok := row[pilot]
		if !ok || v == nil {
			continue
		}
		f, ok := utils.ToFloat64(v)
		if !ok {
			continue
		}
		points = append(points, point{index: i, value: f})
	}
	if len(points) <= threshold {
		return rows, nil
	}

	if mode == ModeAverage {
		return averageBuckets(rows, timeField, points, threshold), nil
	}

	var picked []int
	switch mode {
	case ModeLTTB:
		picked = lttb(points, threshold)
	case ModeMinMax:
		picked = minmax(points, threshold)
	}

	out := make([]map[string]interface{}, 0, len(picked))
	for _, idx := range picked {
		out = append(out, rows[idx])
	}
	return out, nil
}

func firstValueField(rows []map[string]interface{}, timeField string) string {
	if len(rows) == 0 {
		return ""
	}
	keys := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		if k != timeField {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}

// averageBuckets collapses each bucket into a single record. Every numeric
// field is averaged over the bucket; the timestamp is taken from the bucket's
// middle record.
func averageBuckets(rows []map[string]interface{}, timeField string, points []point, threshold int) []map[string]interface{} {
	bucketSize := float64(len(points)) / float64(threshold)
	out := make([]map[string]interface{}, 0, threshold)

	for i := 0; i < threshold; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(points) {
			end = len(points)
		}
		if start >= end {
			continue
		}

		fields := make(map[string][]float64)
		for j := start; j < end; j++ {
			for k, v := range rows[points[j].index] {
				if k == timeField {
					continue
				}
				if f, ok := utils.ToFloat64(v); ok {
					fields[k] = append(fields[k], f)
				}
			}
		}

		mid := rows[points[start+(end-start)/2].index]
		rec := map[string]interface{}{timeField: mid[timeField]}
		for k, vals := range fields {
			if m, ok := stats.Mean(vals); ok {
				rec[k] = m
			}
		}
		out = append(out, rec)
	}

	return out
}

// lttb implements Largest-Triangle-Three-Buckets over the pilot series and
// returns the original row indices of the selected records.
func lttb(data []point, threshold int) []int {
	if threshold <= 2 {
		if len(data) >= 2 {
			return []int{data[0].index, data[len(data)-1].index}
		}
		return []int{data[0].index}
	}

	sampled := make([]int, 0, threshold)
	sampled = append(sampled, data[0].index)

	bucketSize := float64(len(data)-2) / float64(threshold-2)
	a := 0

	for i := 0; i < threshold-2; i++ {
		avgStart := int(math.Floor(float64(i+1)*bucketSize)) + 1
		avgEnd := int(math.Floor(float64(i+2)*bucketSize)) + 1
		if avgEnd > len(data) {
			avgEnd = len(data)
		}

		avgX, avgY := 0.0, 0.0
		avgLen := avgEnd - avgStart
		for j := avgStart; j < avgEnd; j++ {
			avgX += float64(j)
			avgY += data[j].value
		}
		avgX /= float64(avgLen)
		avgY /= float64(avgLen)

		rangeFrom := int(math.Floor(float64(i)*bucketSize)) + 1
		rangeTo := int(math.Floor(float64(i+1)*bucketSize)) + 1

		pointAX := float64(a)
		pointAY := data[a].value

		maxArea := -1.0
		maxAreaIdx := rangeFrom

		for j := rangeFrom; j < rangeTo; j++ {
			area := math.Abs((pointAX-avgX)*(data[j].value-pointAY)-
				(pointAX-float64(j))*(avgY-pointAY)) * 0.5
			if area > maxArea {
				maxArea = area
				maxAreaIdx = j
			}
		}

		sampled = append(sampled, data[maxAreaIdx].index)
		a = maxAreaIdx
	}

	sampled = append(sampled, data[len(data)-1].index)
	return sampled
}

// minmax keeps the minimum and maximum record per bucket, in time order.
func minmax(data []point, threshold int) []int {
	numBuckets := threshold / 2
	if numBuckets < 1 {
		numBuckets = 1
	}

	bucketSize := float64(len(data)) / float64(numBuckets)
	sampled := make([]int, 0, numBuckets*2)

	for i := 0; i < numBuckets; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			continue
		}

		minIdx, maxIdx := start, start
		for j := start + 1; j < end; j++ {
			if data[j].value < data[minIdx].value {
				minIdx = j
			}
			if data[j].value > data[maxIdx].value {
				maxIdx = j
			}
		}

		if minIdx <= maxIdx {
			sampled = append(sampled, data[minIdx].index)
			if minIdx != maxIdx {
				sampled = append(sampled, data[maxIdx].index)
			}
		} else {
			sampled = append(sampled, data[maxIdx].index)
			sampled = append(sampled, data[minIdx].index)
		}
	}

	return sampled
}
