// Package run defines the canonical raw run record consumed by the aggregation pipeline.
// A run holds, for every execution of every test, the named sample groups recorded
// during that execution. The record is produced by an ingestion layer and is treated
// as read-only by the rest of the module.
package run

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/internal/libs/serializer"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
)

// Run is a single benchmark run: every execution of every test, plus the
// environment it ran in.
type Run struct {
	TestSuite   string      `json:"testSuite"`
	StartTime   float64     `json:"startTime"` // unix milliseconds
	EndTime     float64     `json:"endTime"`   // unix milliseconds
	Environment Environment `json:"environment"`
	Results     []Result    `json:"results"`
}

// Result is one recorded execution of a named test. A test executed several
// times appears as several results sharing the same name.
type Result struct {
	Name         string        `json:"name"`
	Categories   []string      `json:"categories,omitempty"`
	Version      string        `json:"version,omitempty"`
	StartTime    float64       `json:"startTime"`
	EndTime      float64       `json:"endTime"`
	SampleGroups []SampleGroup `json:"sampleGroups"`
}

// SampleGroup is a named bucket of measurements collected within one execution.
type SampleGroup struct {
	Definition Definition `json:"definition"`
	Samples    []float64  `json:"samples"`
}

// Name returns the name of the sample group.
func (g *SampleGroup) Name() string {
	return g.Definition.Name
}

// Definition describes how the samples of a group are judged.
type Definition struct {
	Name             string          `json:"name"`
	IncreaseIsBetter bool            `json:"increaseIsBetter"`
	Threshold        float64         `json:"threshold"`
	Percentile       float64         `json:"percentile"`
	AggregationType  AggregationType `json:"aggregationType,omitempty"`
	SampleUnit       SampleUnit      `json:"sampleUnit,omitempty"`
}

// NewDefinition returns a definition with the reporter defaults: a 10% threshold,
// lower-is-better direction, median aggregation and microsecond samples.
func NewDefinition(name string) Definition {
	return Definition{
		Name:            name,
		Threshold:       constants.DefaultThreshold,
		AggregationType: AggregationMedian,
		SampleUnit:      Microsecond,
	}
}

// Validate checks the definition invariants.
func (d Definition) Validate() error {
	if d.Name == "" {
		return ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "sample group name")
	}

	if d.Threshold < 0 {
		return ewrap.Wrapf(sentinel.ErrInvalidThreshold, "sample group %s: %v", d.Name, d.Threshold)
	}

	if d.Percentile < 0 || d.Percentile >= 1 {
		return ewrap.Wrapf(sentinel.ErrInvalidPercentile, "sample group %s: %v", d.Name, d.Percentile)
	}

	return nil
}

// Validate checks that the run and every sample group definition it carries are well formed.
func (r *Run) Validate() error {
	if r == nil {
		return sentinel.ErrNilRun
	}

	for _, result := range r.Results {
		if result.Name == "" {
			return ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "test name")
		}

		for _, group := range result.SampleGroups {
			err := group.Definition.Validate()
			if err != nil {
				return ewrap.Wrapf(err, "test %s", result.Name)
			}
		}
	}

	return nil
}

// First returns the first result record carrying the given test name.
func (r *Run) First(testName string) (*Result, bool) {
	for i := range r.Results {
		if r.Results[i].Name == testName {
			return &r.Results[i], true
		}
	}

	return nil, false
}

// Decode unmarshals a canonical run document with the given serializer and validates it.
func Decode(data []byte, ser serializer.ISerializer) (*Run, error) {
	if ser == nil {
		var err error

		ser, err = serializer.New(constants.DefaultSerializer)
		if err != nil {
			return nil, err
		}
	}

	var out Run

	err := ser.Unmarshal(data, &out)
	if err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidInput, "decode run: %v", err)
	}

	err = out.Validate()
	if err != nil {
		return nil, err
	}

	return &out, nil
}
