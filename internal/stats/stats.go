// Package stats holds the small numeric helpers used around series
// summaries: weighted mean, min-max normalization and simple linear
// regression.
package stats

import "fmt"

// WeightedMean averages values with per-position weights. Positions beyond
// the weight slice receive weight 1.0; surplus weights are ignored. Returns
// false when there are no values or the total weight is zero.
func WeightedMean(values, weights []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	totalWeight := 0.0
	totalValue := 0.0
	for i, v := range values {
		weight := 1.0
		if i < len(weights) {
			weight = weights[i]
		}
		totalWeight += weight
		totalValue += v * weight
	}

	if totalWeight == 0 {
		return 0, false
	}
	return totalValue / totalWeight, true
}

// Mean is the unweighted arithmetic mean.
func Mean(values []float64) (float64, bool) {
	return WeightedMean(values, nil)
}

// Normalize scales values into [0, 1] by min-max. A constant series maps
// every position to 0.
func Normalize(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]float64, len(values))
	span := max - min
	if span == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - min) / span
	}
	return out
}

// LinearRegression fits y = slope*x + intercept over index positions
// 0..len(values)-1 by least squares.
func LinearRegression(values []float64) (slope, intercept float64, err error) {
	if len(values) < 2 {
		return 0, 0, fmt.Errorf("insufficient data points: need 2, have %d", len(values))
	}

	n := float64(len(values))
	sumX, sumY, sumXY, sumX2 := 0.0, 0.0, 0.0, 0.0
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0, 0, fmt.Errorf("cannot calculate regression: all x values are the same")
	}

	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, nil
}
