// Package aggregator turns merged sample groups into finalized test results.
// Each merged group is run through the statistics calculator and receives an
// aggregated value, the single scalar later compared against a baseline.
//
// The aggregated value is the group average unless another aggregation type is
// selected, either globally with WithAggregationType or per group from the sample
// group definition with WithDefinitionAggregation.
package aggregator

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/merger"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/run"
	"github.com/hyp3rd/benchreporter/pkg/stats"
)

// Aggregator builds TestResults from merged runs.
type Aggregator struct {
	registry        *StrategyRegistry
	aggregationType run.AggregationType
	fromDefinition  bool
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithAggregationType fixes the aggregation type used for every group.
func WithAggregationType(aggregationType run.AggregationType) Option {
	return func(a *Aggregator) {
		a.aggregationType = aggregationType
		a.fromDefinition = false
	}
}

// WithDefinitionAggregation selects the aggregation type of each group from its
// definition. Groups whose definition carries none fall back to the fixed type.
func WithDefinitionAggregation() Option {
	return func(a *Aggregator) {
		a.fromDefinition = true
	}
}

// WithStrategyRegistry replaces the registry used to resolve aggregation types.
func WithStrategyRegistry(registry *StrategyRegistry) Option {
	return func(a *Aggregator) {
		if registry != nil {
			a.registry = registry
		}
	}
}

// New returns an Aggregator. The fixed aggregation type must resolve in the registry.
func New(opts ...Option) (*Aggregator, error) {
	a := &Aggregator{
		registry:        NewStrategyRegistry(),
		aggregationType: run.AggregationAverage,
	}

	for _, opt := range opts {
		opt(a)
	}

	_, err := a.registry.Strategy(a.aggregationType)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// AggregationType returns the fixed aggregation type.
func (a *Aggregator) AggregationType() run.AggregationType {
	return a.aggregationType
}

// GetTestResults merges the executions of r and aggregates them.
func (a *Aggregator) GetTestResults(r *run.Run) ([]*result.TestResult, error) {
	tests, err := merger.Merge(r)
	if err != nil {
		return nil, err
	}

	return a.Aggregate(r, tests)
}

// Aggregate builds one TestResult per merged test, in merge order. Test metadata
// comes from the first raw result of r carrying the test name; a merged test
// without one is an invariant violation.
func (a *Aggregator) Aggregate(r *run.Run, tests []merger.Test) ([]*result.TestResult, error) {
	if r == nil {
		return nil, sentinel.ErrNilRun
	}

	results := make([]*result.TestResult, 0, len(tests))

	for _, test := range tests {
		raw, ok := r.First(test.Name)
		if !ok {
			return nil, ewrap.Wrap(sentinel.ErrMissingTestMetadata, test.Name)
		}

		testResult := &result.TestResult{
			TestName:           test.Name,
			TestCategories:     raw.Categories,
			TestVersion:        raw.Version,
			State:              result.Success,
			SampleGroupResults: make([]*result.SampleGroupResult, 0, len(test.Groups)),
		}

		for _, group := range test.Groups {
			groupResult, err := a.aggregateGroup(group)
			if err != nil {
				return nil, ewrap.Wrapf(err, "test %s", test.Name)
			}

			testResult.SampleGroupResults = append(testResult.SampleGroupResults, groupResult)
		}

		results = append(results, testResult)
	}

	return results, nil
}

func (a *Aggregator) aggregateGroup(group run.SampleGroup) (*result.SampleGroupResult, error) {
	definition := group.Definition

	statistics, err := stats.Calculate(group.Samples, definition.Percentile)
	if err != nil {
		return nil, ewrap.Wrapf(err, "sample group %s", definition.Name)
	}

	aggregationType := a.aggregationType
	if a.fromDefinition && definition.AggregationType != "" {
		aggregationType = definition.AggregationType
	}

	strategy, err := a.registry.Strategy(aggregationType)
	if err != nil {
		return nil, ewrap.Wrapf(err, "sample group %s", definition.Name)
	}

	return &result.SampleGroupResult{
		SampleGroupName:   definition.Name,
		SampleUnit:        definition.SampleUnit,
		IncreaseIsBetter:  definition.IncreaseIsBetter,
		Threshold:         definition.Threshold,
		Percentile:        definition.Percentile,
		AggregationType:   aggregationType,
		Min:               statistics.Min,
		Max:               statistics.Max,
		Median:            statistics.Median,
		Average:           statistics.Average,
		StandardDeviation: statistics.StandardDeviation,
		PercentileValue:   statistics.PercentileValue,
		Sum:               statistics.Sum,
		Zeroes:            statistics.ZeroCount,
		SampleCount:       statistics.SampleCount,
		AggregatedValue:   strategy(statistics),
		BaselineValue:     constants.NoBaselineValue,
		Classification:    result.Neutral,
	}, nil
}
