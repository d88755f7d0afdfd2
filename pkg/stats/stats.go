// Package stats computes the descriptive statistics of a sample group: min, max,
// median, percentile, average, sum, population standard deviation and zero count.
//
// The median and percentile rules are fixed so that freshly computed values stay
// comparable with previously stored baselines: the median is the upper-middle
// element of the sorted samples, and percentiles below PercentileFloor are passed
// through unchanged.
package stats

import (
	"math"
	"slices"

	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
)

// Statistics holds the derived values of a sample list.
type Statistics struct {
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	Median            float64 `json:"median"`
	Average           float64 `json:"average"`
	Sum               float64 `json:"sum"`
	StandardDeviation float64 `json:"standardDeviation"`
	PercentileValue   float64 `json:"percentileValue"`
	ZeroCount         int     `json:"zeroCount"`
	SampleCount       int     `json:"sampleCount"`
}

// Calculate returns the statistics of samples. The percentile argument selects the
// percentile reported in PercentileValue. An empty sample list is rejected with
// sentinel.ErrEmptySamples.
func Calculate(samples []float64, percentile float64) (Statistics, error) {
	if len(samples) == 0 {
		return Statistics{}, sentinel.ErrEmptySamples
	}

	if len(samples) == 1 {
		return Statistics{
			Min:         samples[0],
			Max:         samples[0],
			Median:      samples[0],
			Average:     samples[0],
			Sum:         samples[0],
			ZeroCount:   ZeroCount(samples),
			SampleCount: 1,
		}, nil
	}

	average := Average(samples)

	return Statistics{
		Min:               Min(samples),
		Max:               Max(samples),
		Median:            Median(samples),
		Average:           average,
		Sum:               Sum(samples),
		StandardDeviation: StandardDeviation(samples, average),
		PercentileValue:   Percentile(samples, percentile),
		ZeroCount:         ZeroCount(samples),
		SampleCount:       len(samples),
	}, nil
}

// Min returns the smallest sample.
func Min(samples []float64) float64 {
	minVal := math.MaxFloat64
	for _, sample := range samples {
		if sample < minVal {
			minVal = sample
		}
	}

	return minVal
}

// Max returns the largest sample.
func Max(samples []float64) float64 {
	maxVal := -math.MaxFloat64
	for _, sample := range samples {
		if sample > maxVal {
			maxVal = sample
		}
	}

	return maxVal
}

// Sum returns the sum of a set of values.
func Sum(samples []float64) float64 {
	var sum float64
	for _, sample := range samples {
		sum += sample
	}

	return sum
}

// Average returns the arithmetic mean of a set of values. Rounding drift is
// clamped so the mean never leaves [Min, Max].
func Average(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	mean := Sum(samples) / float64(len(samples))

	return min(max(mean, Min(samples)), Max(samples))
}

// Median returns the element at index len/2 of the sorted samples. For an even
// count this is the upper of the two central elements, not their mean.
func Median(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	sorted := sortedCopy(samples)

	return sorted[len(sorted)/2]
}

// Percentile returns the pth percentile using rank p*(n+1) with linear interpolation
// between neighbouring sorted samples. A p below constants.PercentileFloor is returned
// as is. Ranks falling before the first or after the last sample clamp to that sample.
func Percentile(samples []float64, p float64) float64 {
	if p < constants.PercentileFloor {
		return p
	}

	if len(samples) == 0 {
		return 0
	}

	sorted := sortedCopy(samples)
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p * float64(len(sorted)+1)
	integral := int(rank)
	fractional := math.Mod(rank, 1)

	switch {
	case integral < 1:
		return sorted[0]
	case integral >= len(sorted):
		return sorted[len(sorted)-1]
	}

	return sorted[integral-1] + fractional*(sorted[integral]-sorted[integral-1])
}

// StandardDeviation returns the population standard deviation of samples around average.
func StandardDeviation(samples []float64, average float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sumOfSquares float64
	for _, sample := range samples {
		sumOfSquares += (sample - average) * (sample - average)
	}

	return math.Sqrt(sumOfSquares / float64(len(samples)))
}

// ZeroCount returns how many samples have a magnitude below constants.ZeroTolerance.
func ZeroCount(samples []float64) int {
	zeroes := 0
	for _, sample := range samples {
		if math.Abs(sample) < constants.ZeroTolerance {
			zeroes++
		}
	}

	return zeroes
}

func sortedCopy(samples []float64) []float64 {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	return sorted
}
