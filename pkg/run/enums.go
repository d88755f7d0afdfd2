package run

import (
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchreporter/internal/sentinel"
)

// AggregationType names the statistic used as the aggregated value of a sample group.
type AggregationType string

// Constants for the supported aggregation types.
const (
	AggregationAverage    AggregationType = "Average"    // Arithmetic mean of the samples
	AggregationMin        AggregationType = "Min"        // Smallest sample
	AggregationMax        AggregationType = "Max"        // Largest sample
	AggregationMedian     AggregationType = "Median"     // Upper-middle element of the sorted samples
	AggregationPercentile AggregationType = "Percentile" // Interpolated percentile of the samples
)

// String returns the string representation of the AggregationType.
func (a AggregationType) String() string {
	return string(a)
}

// ParseAggregationType resolves a case-insensitive aggregation type name.
func ParseAggregationType(name string) (AggregationType, error) {
	for _, candidate := range []AggregationType{
		AggregationAverage,
		AggregationMin,
		AggregationMax,
		AggregationMedian,
		AggregationPercentile,
	} {
		if strings.EqualFold(candidate.String(), name) {
			return candidate, nil
		}
	}

	return "", ewrap.Wrap(sentinel.ErrAggregationTypeNotFound, name)
}

// SampleUnit is the unit label attached to the samples of a group.
type SampleUnit string

// Constants for the common sample units.
const (
	Nanosecond  SampleUnit = "Nanosecond"
	Microsecond SampleUnit = "Microsecond"
	Millisecond SampleUnit = "Millisecond"
	Second      SampleUnit = "Second"
	Byte        SampleUnit = "Byte"
	Kilobyte    SampleUnit = "Kilobyte"
	Megabyte    SampleUnit = "Megabyte"
	Gigabyte    SampleUnit = "Gigabyte"
	Undefined   SampleUnit = "Undefined"
)

// String returns the string representation of a SampleUnit.
func (u SampleUnit) String() string {
	return string(u)
}
