// Package result holds the output of the aggregation pipeline: one TestResult per
// distinct test, each with one SampleGroupResult per merged sample group, and the
// RunResult envelope that labels an aggregated run for reporting and storage.
package result

import (
	"github.com/hyp3rd/benchreporter/pkg/run"
)

// TestState is the overall outcome of a test after baseline comparison.
type TestState string

// Constants for the test states.
const (
	Success TestState = "Success" // No sample group regressed
	Failure TestState = "Failure" // At least one sample group regressed
)

// String returns the string representation of the TestState.
func (s TestState) String() string {
	return string(s)
}

// Classification is the verdict of comparing a sample group against its baseline.
type Classification string

// Constants for the classifications.
const (
	Neutral     Classification = "Neutral"     // Within the threshold band
	Regression  Classification = "Regression"  // Moved outside the band in the worse direction
	Progression Classification = "Progression" // Moved outside the band in the better direction
)

// String returns the string representation of the Classification.
func (c Classification) String() string {
	return string(c)
}

// TestResult is the aggregated result of one logical test.
type TestResult struct {
	TestName           string               `json:"testName"`
	TestCategories     []string             `json:"testCategories,omitempty"`
	TestVersion        string               `json:"testVersion,omitempty"`
	State              TestState            `json:"state"`
	SampleGroupResults []*SampleGroupResult `json:"sampleGroupResults"`
}

// Group returns the sample group result with the given name.
func (t *TestResult) Group(name string) (*SampleGroupResult, bool) {
	for _, group := range t.SampleGroupResults {
		if group.SampleGroupName == name {
			return group, true
		}
	}

	return nil, false
}

// Regressed reports whether any sample group of the test regressed.
func (t *TestResult) Regressed() bool {
	for _, group := range t.SampleGroupResults {
		if group.Regressed {
			return true
		}
	}

	return false
}

// SampleGroupResult carries the statistics of a merged sample group together with
// the value used for baseline comparison and the outcome of that comparison.
type SampleGroupResult struct {
	SampleGroupName   string              `json:"sampleGroupName"`
	SampleUnit        run.SampleUnit      `json:"sampleUnit,omitempty"`
	IncreaseIsBetter  bool                `json:"increaseIsBetter"`
	Threshold         float64             `json:"threshold"`
	Percentile        float64             `json:"percentile"`
	AggregationType   run.AggregationType `json:"aggregationType"`
	Min               float64             `json:"min"`
	Max               float64             `json:"max"`
	Median            float64             `json:"median"`
	Average           float64             `json:"average"`
	StandardDeviation float64             `json:"standardDeviation"`
	PercentileValue   float64             `json:"percentileValue"`
	Sum               float64             `json:"sum"`
	Zeroes            int                 `json:"zeroes"`
	SampleCount       int                 `json:"sampleCount"`
	AggregatedValue   float64             `json:"aggregatedValue"`
	BaselineValue     float64             `json:"baselineValue"`
	Regressed         bool                `json:"regressed"`
	Classification    Classification      `json:"classification"`
}

// Find returns the test result with the given name.
func Find(results []*TestResult, testName string) (*TestResult, bool) {
	for _, test := range results {
		if test.TestName == testName {
			return test, true
		}
	}

	return nil, false
}
