package aggregator

import (
	"maps"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/run"
	"github.com/hyp3rd/benchreporter/pkg/stats"
)

// Strategy derives the aggregated value of a sample group from its statistics.
type Strategy func(s stats.Statistics) float64

// StrategyRegistry maps aggregation types to strategies.
type StrategyRegistry struct {
	strategies map[run.AggregationType]Strategy
}

// getDefaultStrategies returns the default set of aggregation strategies.
func getDefaultStrategies() map[run.AggregationType]Strategy {
	return map[run.AggregationType]Strategy{
		run.AggregationAverage:    func(s stats.Statistics) float64 { return s.Average },
		run.AggregationMin:        func(s stats.Statistics) float64 { return s.Min },
		run.AggregationMax:        func(s stats.Statistics) float64 { return s.Max },
		run.AggregationMedian:     func(s stats.Statistics) float64 { return s.Median },
		run.AggregationPercentile: func(s stats.Statistics) float64 { return s.PercentileValue },
	}
}

// NewStrategyRegistry creates a registry with every built-in aggregation type registered.
func NewStrategyRegistry() *StrategyRegistry {
	registry := NewEmptyStrategyRegistry()
	registry.RegisterMultiple(getDefaultStrategies())

	return registry
}

// NewEmptyStrategyRegistry creates a registry without default strategies.
func NewEmptyStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		strategies: make(map[run.AggregationType]Strategy),
	}
}

// Register registers a strategy for the given aggregation type.
func (r *StrategyRegistry) Register(aggregationType run.AggregationType, strategy Strategy) {
	r.strategies[aggregationType] = strategy
}

// RegisterMultiple registers a set of strategies.
func (r *StrategyRegistry) RegisterMultiple(strategies map[run.AggregationType]Strategy) {
	maps.Copy(r.strategies, strategies)
}

// Strategy returns the strategy registered for the given aggregation type.
func (r *StrategyRegistry) Strategy(aggregationType run.AggregationType) (Strategy, error) {
	if aggregationType == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "aggregationType")
	}

	strategy, ok := r.strategies[aggregationType]
	if !ok {
		return nil, ewrap.Wrap(sentinel.ErrAggregationTypeNotFound, aggregationType.String())
	}

	return strategy, nil
}
