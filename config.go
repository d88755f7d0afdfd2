package benchreporter

import (
	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/pkg/aggregator"
	"github.com/hyp3rd/benchreporter/pkg/run"
	"github.com/hyp3rd/benchreporter/pkg/store"
)

// Config holds the settings used to build a Processor.
type Config struct {
	// SigFigs is the number of significant figures values are truncated to before comparison.
	SigFigs uint
	// AggregationType is the statistic used as aggregated value.
	AggregationType run.AggregationType
	// DefinitionAggregation selects the aggregation type from each sample group definition.
	DefinitionAggregation bool
	// Strategies resolves aggregation types; nil uses the built-in strategies.
	Strategies *aggregator.StrategyRegistry
	// Store keeps named baselines; nil uses a fresh in-memory store.
	Store store.IStore
}

// NewConfig returns a Config with default values:
//   - `SigFigs` is set to 2
//   - `AggregationType` is set to average
//   - `Store` is left nil and resolved to an in-memory store by New
func NewConfig() *Config {
	return &Config{
		SigFigs:         constants.DefaultSigFigs,
		AggregationType: run.AggregationAverage,
	}
}

// Option is a function type that can be used to configure the `Config` struct.
type Option func(*Config)

// WithSigFigs is an option that sets the significant-figure count used by the regression evaluator.
func WithSigFigs(sigFigs uint) Option {
	return func(cfg *Config) {
		cfg.SigFigs = sigFigs
	}
}

// WithAggregationType is an option that fixes the aggregation type of every sample group.
func WithAggregationType(aggregationType run.AggregationType) Option {
	return func(cfg *Config) {
		cfg.AggregationType = aggregationType
		cfg.DefinitionAggregation = false
	}
}

// WithDefinitionAggregation is an option that takes the aggregation type from each sample group definition.
func WithDefinitionAggregation() Option {
	return func(cfg *Config) {
		cfg.DefinitionAggregation = true
	}
}

// WithStrategyRegistry is an option that sets the registry used to resolve aggregation types.
func WithStrategyRegistry(registry *aggregator.StrategyRegistry) Option {
	return func(cfg *Config) {
		cfg.Strategies = registry
	}
}

// WithStore is an option that sets the store used to keep baselines.
func WithStore(s store.IStore) Option {
	return func(cfg *Config) {
		cfg.Store = s
	}
}
