package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/benchreporter"
	"github.com/hyp3rd/benchreporter/internal/telemetry/attrs"
	"github.com/hyp3rd/benchreporter/pkg/regression"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/run"
)

// OTelTracingMiddleware wraps benchreporter.Service methods with OpenTelemetry spans.
type OTelTracingMiddleware struct {
	next   benchreporter.Service
	tracer trace.Tracer
	// static attributes applied to all spans
	commonAttrs []attribute.KeyValue
}

// OTelTracingOption allows configuring the tracing middleware.
type OTelTracingOption func(*OTelTracingMiddleware)

// WithCommonAttributes sets attributes applied to all spans.
func WithCommonAttributes(attributes ...attribute.KeyValue) OTelTracingOption {
	return func(m *OTelTracingMiddleware) { m.commonAttrs = append(m.commonAttrs, attributes...) }
}

// NewOTelTracingMiddleware creates a tracing middleware.
func NewOTelTracingMiddleware(next benchreporter.Service, tracer trace.Tracer, opts ...OTelTracingOption) benchreporter.Service {
	mw := &OTelTracingMiddleware{next: next, tracer: tracer}
	for _, o := range opts {
		o(mw)
	}

	return mw
}

// Process implements Service.Process with tracing.
func (mw OTelTracingMiddleware) Process(ctx context.Context, r *run.Run) ([]*result.TestResult, error) {
	ctx, span := mw.startSpan(ctx, "benchreporter.Process", runAttributes(r)...)
	defer span.End()

	results, err := mw.next.Process(ctx, r)
	if err != nil {
		recordError(span, err)

		return nil, err
	}

	span.SetAttributes(attribute.Int(attrs.AttrTestsCount, len(results)))

	return results, nil
}

// Compare implements Service.Compare with tracing.
func (mw OTelTracingMiddleware) Compare(ctx context.Context, baseline, candidate []*result.TestResult) regression.Summary {
	ctx, span := mw.startSpan(ctx, "benchreporter.Compare", attribute.Int(attrs.AttrSigFigs, int(mw.next.SigFigs())))
	defer span.End()

	summary := mw.next.Compare(ctx, baseline, candidate)
	span.SetAttributes(summaryAttributes(summary)...)

	return summary
}

// NewRunResult forwards to the next service.
func (mw OTelTracingMiddleware) NewRunResult(r *run.Run, results []*result.TestResult, name string, isBaseline bool) *result.RunResult {
	return mw.next.NewRunResult(r, results, name, isBaseline)
}

// SaveBaseline implements Service.SaveBaseline with tracing.
func (mw OTelTracingMiddleware) SaveBaseline(ctx context.Context, r *run.Run, name string) (*result.RunResult, error) {
	ctx, span := mw.startSpan(ctx, "benchreporter.SaveBaseline",
		append(runAttributes(r), attribute.String(attrs.AttrBaselineName, name), attribute.Bool(attrs.AttrIsBaseline, true))...)
	defer span.End()

	out, err := mw.next.SaveBaseline(ctx, r, name)
	if err != nil {
		recordError(span, err)
	}

	return out, err
}

// LoadBaseline implements Service.LoadBaseline with tracing.
func (mw OTelTracingMiddleware) LoadBaseline(ctx context.Context, name string) (*result.RunResult, error) {
	ctx, span := mw.startSpan(ctx, "benchreporter.LoadBaseline", attribute.String(attrs.AttrBaselineName, name))
	defer span.End()

	out, err := mw.next.LoadBaseline(ctx, name)
	if err != nil {
		recordError(span, err)
	}

	return out, err
}

// Baselines implements Service.Baselines with tracing.
func (mw OTelTracingMiddleware) Baselines(ctx context.Context) ([]string, error) {
	ctx, span := mw.startSpan(ctx, "benchreporter.Baselines")
	defer span.End()

	names, err := mw.next.Baselines(ctx)
	if err != nil {
		recordError(span, err)
	}

	return names, err
}

// CompareWithBaseline implements Service.CompareWithBaseline with tracing.
func (mw OTelTracingMiddleware) CompareWithBaseline(ctx context.Context, r *run.Run, baselineName, resultName string) (*benchreporter.Report, error) {
	ctx, span := mw.startSpan(ctx, "benchreporter.CompareWithBaseline",
		append(runAttributes(r), attribute.String(attrs.AttrBaselineName, baselineName))...)
	defer span.End()

	report, err := mw.next.CompareWithBaseline(ctx, r, baselineName, resultName)
	if err != nil {
		recordError(span, err)

		return nil, err
	}

	span.SetAttributes(summaryAttributes(report.Summary)...)

	return report, nil
}

// SigFigs returns the significant-figure count.
func (mw OTelTracingMiddleware) SigFigs() uint { return mw.next.SigFigs() }

// AggregationType returns the aggregation type.
func (mw OTelTracingMiddleware) AggregationType() run.AggregationType { return mw.next.AggregationType() }

// StoreBackend returns the store backend name.
func (mw OTelTracingMiddleware) StoreBackend() string { return mw.next.StoreBackend() }

// startSpan starts a span with common and provided attributes.
func (mw OTelTracingMiddleware) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := mw.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(mw.commonAttrs) > 0 {
		span.SetAttributes(mw.commonAttrs...)
	}

	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}

	return ctx, span
}

func runAttributes(r *run.Run) []attribute.KeyValue {
	if r == nil {
		return nil
	}

	return []attribute.KeyValue{
		attribute.String(attrs.AttrTestSuite, r.TestSuite),
		attribute.Int(attrs.AttrResultsCount, len(r.Results)),
	}
}

func summaryAttributes(summary regression.Summary) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(attrs.AttrTestsCount, summary.Tests),
		attribute.Int(attrs.AttrFailedCount, len(summary.FailedTests)),
		attribute.Int(attrs.AttrRegressionsCount, summary.Regressions),
		attribute.Int(attrs.AttrProgressionsCount, summary.Progressions),
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
