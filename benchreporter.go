// Package benchreporter consolidates benchmark measurements from repeated test runs
// into statistical summaries and flags tests whose performance regressed or improved
// against a baseline run.
//
// A Processor chains the pipeline stages: executions of the same test are merged,
// statistics are computed per sample group, and the aggregated values are compared
// against a baseline within per-group, direction-aware thresholds. Aggregated runs
// can be stored by name and reused as baselines.
package benchreporter

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/internal/introspect"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/aggregator"
	"github.com/hyp3rd/benchreporter/pkg/regression"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/run"
	"github.com/hyp3rd/benchreporter/pkg/store"
)

// Report is the outcome of comparing a run against a stored baseline.
type Report struct {
	Baseline string             `json:"baseline"`
	Run      *result.RunResult  `json:"run"`
	Summary  regression.Summary `json:"summary"`
}

// Processor runs the aggregation pipeline and keeps baselines.
// It holds no per-run state, so one Processor may serve concurrent callers.
type Processor struct {
	aggregator *aggregator.Aggregator
	evaluator  *regression.Evaluator
	store      store.IStore
}

// New creates a Processor from the default configuration overridden by opts.
func New(opts ...Option) (*Processor, error) {
	cfg := NewConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return NewFromConfig(cfg)
}

// NewFromConfig creates a Processor from cfg.
func NewFromConfig(cfg *Config) (*Processor, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	evaluator, err := regression.NewEvaluator(cfg.SigFigs)
	if err != nil {
		return nil, err
	}

	aggregatorOptions := []aggregator.Option{
		aggregator.WithAggregationType(cfg.AggregationType),
		aggregator.WithStrategyRegistry(cfg.Strategies),
	}
	if cfg.DefinitionAggregation {
		aggregatorOptions = append(aggregatorOptions, aggregator.WithDefinitionAggregation())
	}

	agg, err := aggregator.New(aggregatorOptions...)
	if err != nil {
		return nil, err
	}

	baselineStore := cfg.Store
	if baselineStore == nil {
		baselineStore, err = store.NewInMemory()
		if err != nil {
			return nil, err
		}
	}

	return &Processor{
		aggregator: agg,
		evaluator:  evaluator,
		store:      baselineStore,
	}, nil
}

// SigFigs returns the significant-figure count used for comparisons.
func (p *Processor) SigFigs() uint {
	return p.evaluator.SigFigs()
}

// AggregationType returns the aggregation type used for aggregated values.
func (p *Processor) AggregationType() run.AggregationType {
	return p.aggregator.AggregationType()
}

// StoreBackend returns the name of the baseline store backend.
func (p *Processor) StoreBackend() string {
	return introspect.StoreChecker{Store: p.store}.Backend()
}

// Process validates r, merges its executions and aggregates them into test results.
func (p *Processor) Process(_ context.Context, r *run.Run) ([]*result.TestResult, error) {
	err := r.Validate()
	if err != nil {
		return nil, err
	}

	return p.aggregator.GetTestResults(r)
}

// Compare evaluates candidate against baseline, updating candidate in place.
func (p *Processor) Compare(_ context.Context, baseline, candidate []*result.TestResult) regression.Summary {
	return p.evaluator.Evaluate(baseline, candidate)
}

// NewRunResult labels aggregated results with the metadata of r. An empty name is
// replaced by a name derived from the suite and start time of r.
func (p *Processor) NewRunResult(r *run.Run, results []*result.TestResult, name string, isBaseline bool) *result.RunResult {
	if name == "" {
		name = defaultResultName(r)
	}

	return result.NewRunResult(r, results, name, isBaseline)
}

// SaveBaseline aggregates r and stores it under name, labeled as baseline.
func (p *Processor) SaveBaseline(ctx context.Context, r *run.Run, name string) (*result.RunResult, error) {
	if name == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "baseline name")
	}

	results, err := p.Process(ctx, r)
	if err != nil {
		return nil, err
	}

	runResult := p.NewRunResult(r, results, name, true)

	err = p.store.Save(ctx, runResult)
	if err != nil {
		return nil, err
	}

	return runResult, nil
}

// LoadBaseline returns the stored baseline with the given name.
func (p *Processor) LoadBaseline(ctx context.Context, name string) (*result.RunResult, error) {
	if name == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "baseline name")
	}

	return p.store.Load(ctx, name)
}

// Baselines lists the names of the stored baselines.
func (p *Processor) Baselines(ctx context.Context) ([]string, error) {
	return p.store.List(ctx)
}

// CompareWithBaseline aggregates r and evaluates it against the stored baseline
// baselineName. The aggregated run is labeled resultName and is not stored.
func (p *Processor) CompareWithBaseline(ctx context.Context, r *run.Run, baselineName, resultName string) (*Report, error) {
	baseline, err := p.LoadBaseline(ctx, baselineName)
	if err != nil {
		return nil, err
	}

	results, err := p.Process(ctx, r)
	if err != nil {
		return nil, err
	}

	summary := p.Compare(ctx, baseline.TestResults, results)

	return &Report{
		Baseline: baselineName,
		Run:      p.NewRunResult(r, results, resultName, false),
		Summary:  summary,
	}, nil
}

func defaultResultName(r *run.Run) string {
	if r == nil {
		return constants.DefaultResultName
	}

	seed := r.TestSuite + "|" + strconv.FormatFloat(r.StartTime, 'f', -1, 64)

	return constants.DefaultResultName + "-" + strconv.FormatUint(xxhash.Sum64String(seed), 16)
}
