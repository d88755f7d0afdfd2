package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hyp3rd/benchreporter"
	"github.com/hyp3rd/benchreporter/internal/telemetry/attrs"
	"github.com/hyp3rd/benchreporter/pkg/regression"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/run"
)

// OTelMetricsMiddleware emits OpenTelemetry metrics for service methods.
type OTelMetricsMiddleware struct {
	next  benchreporter.Service
	meter metric.Meter

	// instruments
	calls        metric.Int64Counter
	durations    metric.Float64Histogram
	regressions  metric.Int64Counter
	progressions metric.Int64Counter
}

// NewOTelMetricsMiddleware constructs a metrics middleware using the provided meter.
func NewOTelMetricsMiddleware(next benchreporter.Service, meter metric.Meter) (benchreporter.Service, error) {
	calls, err := meter.Int64Counter("benchreporter.calls")
	if err != nil {
		return nil, ewrap.Wrap(err, "create calls counter")
	}

	durations, err := meter.Float64Histogram("benchreporter.duration.ms")
	if err != nil {
		return nil, ewrap.Wrap(err, "create duration histogram")
	}

	regressions, err := meter.Int64Counter("benchreporter.regressions")
	if err != nil {
		return nil, ewrap.Wrap(err, "create regressions counter")
	}

	progressions, err := meter.Int64Counter("benchreporter.progressions")
	if err != nil {
		return nil, ewrap.Wrap(err, "create progressions counter")
	}

	return &OTelMetricsMiddleware{
		next:         next,
		meter:        meter,
		calls:        calls,
		durations:    durations,
		regressions:  regressions,
		progressions: progressions,
	}, nil
}

// Process implements Service.Process with metrics.
func (mw *OTelMetricsMiddleware) Process(ctx context.Context, r *run.Run) ([]*result.TestResult, error) {
	start := time.Now()
	results, err := mw.next.Process(ctx, r)
	mw.rec(ctx, "Process", start, err, attribute.Int(attrs.AttrTestsCount, len(results)))

	return results, err
}

// Compare implements Service.Compare with metrics.
func (mw *OTelMetricsMiddleware) Compare(ctx context.Context, baseline, candidate []*result.TestResult) regression.Summary {
	start := time.Now()
	summary := mw.next.Compare(ctx, baseline, candidate)
	mw.rec(ctx, "Compare", start, nil, attribute.Int(attrs.AttrTestsCount, summary.Tests))
	mw.recSummary(ctx, summary)

	return summary
}

// NewRunResult forwards to the next service.
func (mw *OTelMetricsMiddleware) NewRunResult(r *run.Run, results []*result.TestResult, name string, isBaseline bool) *result.RunResult {
	return mw.next.NewRunResult(r, results, name, isBaseline)
}

// SaveBaseline implements Service.SaveBaseline with metrics.
func (mw *OTelMetricsMiddleware) SaveBaseline(ctx context.Context, r *run.Run, name string) (*result.RunResult, error) {
	start := time.Now()
	out, err := mw.next.SaveBaseline(ctx, r, name)
	mw.rec(ctx, "SaveBaseline", start, err, attribute.String(attrs.AttrBaselineName, name))

	return out, err
}

// LoadBaseline implements Service.LoadBaseline with metrics.
func (mw *OTelMetricsMiddleware) LoadBaseline(ctx context.Context, name string) (*result.RunResult, error) {
	start := time.Now()
	out, err := mw.next.LoadBaseline(ctx, name)
	mw.rec(ctx, "LoadBaseline", start, err, attribute.String(attrs.AttrBaselineName, name))

	return out, err
}

// Baselines implements Service.Baselines with metrics.
func (mw *OTelMetricsMiddleware) Baselines(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := mw.next.Baselines(ctx)
	mw.rec(ctx, "Baselines", start, err)

	return names, err
}

// CompareWithBaseline implements Service.CompareWithBaseline with metrics.
func (mw *OTelMetricsMiddleware) CompareWithBaseline(ctx context.Context, r *run.Run, baselineName, resultName string) (*benchreporter.Report, error) {
	start := time.Now()
	report, err := mw.next.CompareWithBaseline(ctx, r, baselineName, resultName)
	mw.rec(ctx, "CompareWithBaseline", start, err, attribute.String(attrs.AttrBaselineName, baselineName))

	if report != nil {
		mw.recSummary(ctx, report.Summary)
	}

	return report, err
}

// SigFigs returns the significant-figure count.
func (mw *OTelMetricsMiddleware) SigFigs() uint { return mw.next.SigFigs() }

// AggregationType returns the aggregation type.
func (mw *OTelMetricsMiddleware) AggregationType() run.AggregationType { return mw.next.AggregationType() }

// StoreBackend returns the store backend name.
func (mw *OTelMetricsMiddleware) StoreBackend() string { return mw.next.StoreBackend() }

// rec records call count and duration with attributes.
func (mw *OTelMetricsMiddleware) rec(ctx context.Context, method string, start time.Time, err error, attributes ...attribute.KeyValue) {
	base := []attribute.KeyValue{attribute.String("method", method), attribute.Bool("error", err != nil)}
	if len(attributes) > 0 {
		base = append(base, attributes...)
	}

	mw.calls.Add(ctx, 1, metric.WithAttributes(base...))
	mw.durations.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(base...))
}

func (mw *OTelMetricsMiddleware) recSummary(ctx context.Context, summary regression.Summary) {
	mw.regressions.Add(ctx, int64(summary.Regressions))
	mw.progressions.Add(ctx, int64(summary.Progressions))
}
