package benchreporter

import (
	"context"

	"github.com/hyp3rd/benchreporter/pkg/regression"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/run"
)

// Service is the service interface for the benchmark reporter.
// It enables middleware to be added to the service.
type Service interface {
	pipeline
	baselines
	// SigFigs returns the significant-figure count used for comparisons
	SigFigs() uint
	// AggregationType returns the aggregation type used for aggregated values
	AggregationType() run.AggregationType
	// StoreBackend returns the name of the baseline store backend
	StoreBackend() string
}

type pipeline interface {
	// Process merges the executions of a run and aggregates them into test results
	Process(ctx context.Context, r *run.Run) ([]*result.TestResult, error)
	// Compare evaluates candidate results against baseline results, updating candidate in place
	Compare(ctx context.Context, baseline, candidate []*result.TestResult) regression.Summary
	// NewRunResult labels aggregated results with the metadata of the run they came from
	NewRunResult(r *run.Run, results []*result.TestResult, name string, isBaseline bool) *result.RunResult
}

type baselines interface {
	// SaveBaseline aggregates a run and stores it as a named baseline
	SaveBaseline(ctx context.Context, r *run.Run, name string) (*result.RunResult, error)
	// LoadBaseline returns the stored baseline with the given name
	LoadBaseline(ctx context.Context, name string) (*result.RunResult, error)
	// Baselines lists the names of the stored baselines
	Baselines(ctx context.Context) ([]string, error)
	// CompareWithBaseline aggregates a run and evaluates it against a stored baseline
	CompareWithBaseline(ctx context.Context, r *run.Run, baselineName, resultName string) (*Report, error)
}

// Middleware describes a service middleware.
type Middleware func(Service) Service

// ApplyMiddleware applies middlewares to a service.
func ApplyMiddleware(svc Service, mw ...Middleware) Service {
	// Apply each middleware in the chain
	for _, m := range mw {
		svc = m(svc)
	}
	// Return the decorated service
	return svc
}
