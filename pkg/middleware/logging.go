// Package middleware provides various middleware implementations for the benchreporter service.
// This package includes logging middleware that wraps the service to provide
// execution time logging and method call tracing for debugging and monitoring purposes.
package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/benchreporter"
	"github.com/hyp3rd/benchreporter/pkg/regression"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/run"
)

// Logger describes a logging interface allowing to implement different external, or custom logger.
// The standard library logger satisfies it, as do most structured loggers through a Printf adapter.
type Logger interface {
	Printf(format string, v ...any)
}

// LoggingMiddleware is a middleware that logs the time it takes to execute the next middleware.
// Must implement the benchreporter.Service interface.
type LoggingMiddleware struct {
	next   benchreporter.Service
	logger Logger
}

// NewLoggingMiddleware returns a new LoggingMiddleware.
func NewLoggingMiddleware(next benchreporter.Service, logger Logger) benchreporter.Service {
	return &LoggingMiddleware{next: next, logger: logger}
}

// Process logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Process(ctx context.Context, r *run.Run) ([]*result.TestResult, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Process took: %s", time.Since(begin))
	}(time.Now())

	if r != nil {
		mw.logger.Printf("Process method invoked with suite: %s results: %d", r.TestSuite, len(r.Results))
	}

	results, err := mw.next.Process(ctx, r)
	if err != nil {
		mw.logger.Printf("Process failed: %v", err)
	}

	return results, err
}

// Compare logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Compare(ctx context.Context, baseline, candidate []*result.TestResult) regression.Summary {
	defer func(begin time.Time) {
		mw.logger.Printf("method Compare took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Compare method invoked with baseline tests: %d candidate tests: %d", len(baseline), len(candidate))

	summary := mw.next.Compare(ctx, baseline, candidate)
	mw.logger.Printf("Compare found %d regressions and %d progressions", summary.Regressions, summary.Progressions)

	return summary
}

// NewRunResult forwards to the next middleware.
func (mw LoggingMiddleware) NewRunResult(r *run.Run, results []*result.TestResult, name string, isBaseline bool) *result.RunResult {
	return mw.next.NewRunResult(r, results, name, isBaseline)
}

// SaveBaseline logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) SaveBaseline(ctx context.Context, r *run.Run, name string) (*result.RunResult, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method SaveBaseline took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("SaveBaseline method invoked with name: %s", name)

	return mw.next.SaveBaseline(ctx, r, name)
}

// LoadBaseline logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) LoadBaseline(ctx context.Context, name string) (*result.RunResult, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method LoadBaseline took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("LoadBaseline method invoked with name: %s", name)

	return mw.next.LoadBaseline(ctx, name)
}

// Baselines logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Baselines(ctx context.Context) ([]string, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Baselines took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Baselines method invoked")

	return mw.next.Baselines(ctx)
}

// CompareWithBaseline logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) CompareWithBaseline(ctx context.Context, r *run.Run, baselineName, resultName string) (*benchreporter.Report, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method CompareWithBaseline took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("CompareWithBaseline method invoked with baseline: %s result: %s", baselineName, resultName)

	report, err := mw.next.CompareWithBaseline(ctx, r, baselineName, resultName)
	if err != nil {
		mw.logger.Printf("CompareWithBaseline failed: %v", err)

		return nil, err
	}

	mw.logger.Printf("CompareWithBaseline failed tests: %v", report.Summary.FailedTests)

	return report, nil
}

// SigFigs returns the significant-figure count.
func (mw LoggingMiddleware) SigFigs() uint {
	return mw.next.SigFigs()
}

// AggregationType returns the aggregation type.
func (mw LoggingMiddleware) AggregationType() run.AggregationType {
	return mw.next.AggregationType()
}

// StoreBackend returns the store backend name.
func (mw LoggingMiddleware) StoreBackend() string {
	return mw.next.StoreBackend()
}
