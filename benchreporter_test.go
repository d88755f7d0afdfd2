package benchreporter_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchreporter"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/run"
)

const noBaselineValue = -1.0

func timingRun(suite string, samples ...float64) *run.Run {
	definition := run.NewDefinition("time")

	return &run.Run{
		TestSuite: suite,
		StartTime: 1700000000000,
		EndTime:   1700000005000,
		Results: []run.Result{
			{
				Name:         "TestA",
				SampleGroups: []run.SampleGroup{{Definition: definition, Samples: samples}},
			},
		},
	}
}

func TestNew_Defaults(t *testing.T) {
	p, err := benchreporter.New()
	assert.NoError(t, err)
	assert.Equal(t, uint(2), p.SigFigs())
	assert.Equal(t, run.AggregationAverage, p.AggregationType())
}

func TestNew_ZeroSigFigs(t *testing.T) {
	_, err := benchreporter.New(benchreporter.WithSigFigs(0))
	if !errors.Is(err, sentinel.ErrInvalidSigFigs) {
		t.Fatalf("expected ErrInvalidSigFigs, got %v", err)
	}
}

func TestNew_UnknownAggregationType(t *testing.T) {
	_, err := benchreporter.New(benchreporter.WithAggregationType(run.AggregationType("mode")))
	if !errors.Is(err, sentinel.ErrAggregationTypeNotFound) {
		t.Fatalf("expected ErrAggregationTypeNotFound, got %v", err)
	}
}

func TestProcessor_ProcessNilRun(t *testing.T) {
	p, err := benchreporter.New()
	assert.NoError(t, err)

	_, err = p.Process(context.Background(), nil)
	if !errors.Is(err, sentinel.ErrNilRun) {
		t.Fatalf("expected ErrNilRun, got %v", err)
	}
}

func TestProcessor_Process(t *testing.T) {
	p, err := benchreporter.New(benchreporter.WithAggregationType(run.AggregationMax))
	assert.NoError(t, err)

	results, err := p.Process(context.Background(), timingRun("suite", 3, 1, 2))
	assert.NoError(t, err)
	assert.Equal(t, 1, len(results))

	group, ok := results[0].Group("time")
	assert.True(t, ok)
	assert.Equal(t, 3.0, group.AggregatedValue)
	assert.Equal(t, noBaselineValue, group.BaselineValue)
	assert.Equal(t, result.Neutral, group.Classification)
}

func TestProcessor_SaveAndCompare(t *testing.T) {
	ctx := context.Background()

	p, err := benchreporter.New()
	assert.NoError(t, err)

	baseline, err := p.SaveBaseline(ctx, timingRun("suite", 10, 10, 10), "main")
	assert.NoError(t, err)
	assert.True(t, baseline.IsBaseline)
	assert.Equal(t, "main", baseline.ResultName)

	names, err := p.Baselines(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"main"}, names)

	report, err := p.CompareWithBaseline(ctx, timingRun("suite", 12, 12, 12), "main", "candidate")
	assert.NoError(t, err)
	assert.Equal(t, "main", report.Baseline)
	assert.Equal(t, "candidate", report.Run.ResultName)
	assert.False(t, report.Run.IsBaseline)
	assert.Equal(t, 1, report.Summary.Regressions)
	assert.Equal(t, []string{"TestA"}, report.Summary.FailedTests)
	assert.False(t, report.Summary.Passed())
	assert.Equal(t, result.Failure, report.Run.TestResults[0].State)

	group, ok := report.Run.TestResults[0].Group("time")
	assert.True(t, ok)
	assert.Equal(t, 10.0, group.BaselineValue)
	assert.True(t, group.Regressed)

	// the stored baseline is only read by the comparison
	stored, err := p.LoadBaseline(ctx, "main")
	assert.NoError(t, err)

	storedGroup, ok := stored.TestResults[0].Group("time")
	assert.True(t, ok)
	assert.Equal(t, noBaselineValue, storedGroup.BaselineValue)
}

func TestProcessor_CompareWithinThreshold(t *testing.T) {
	ctx := context.Background()

	p, err := benchreporter.New()
	assert.NoError(t, err)

	_, err = p.SaveBaseline(ctx, timingRun("suite", 10, 10, 10), "main")
	assert.NoError(t, err)

	report, err := p.CompareWithBaseline(ctx, timingRun("suite", 10.5, 10.5, 10.5), "main", "")
	assert.NoError(t, err)
	assert.True(t, report.Summary.Passed())
	assert.Equal(t, 1, report.Summary.Neutral)
	assert.Equal(t, result.Success, report.Run.TestResults[0].State)
	assert.True(t, strings.HasPrefix(report.Run.ResultName, "run-"))
}

func TestProcessor_BaselineErrors(t *testing.T) {
	ctx := context.Background()

	p, err := benchreporter.New()
	assert.NoError(t, err)

	_, err = p.LoadBaseline(ctx, "missing")
	if !errors.Is(err, sentinel.ErrBaselineNotFound) {
		t.Fatalf("expected ErrBaselineNotFound, got %v", err)
	}

	_, err = p.SaveBaseline(ctx, timingRun("suite", 1), "")
	if !errors.Is(err, sentinel.ErrParamCannotBeEmpty) {
		t.Fatalf("expected ErrParamCannotBeEmpty, got %v", err)
	}

	_, err = p.CompareWithBaseline(ctx, timingRun("suite", 1), "missing", "candidate")
	if !errors.Is(err, sentinel.ErrBaselineNotFound) {
		t.Fatalf("expected ErrBaselineNotFound, got %v", err)
	}
}

func TestProcessor_DefaultResultNameIsStable(t *testing.T) {
	p, err := benchreporter.New()
	assert.NoError(t, err)

	r := timingRun("suite", 1)
	first := p.NewRunResult(r, nil, "", false)
	second := p.NewRunResult(r, nil, "", false)
	assert.Equal(t, first.ResultName, second.ResultName)

	other := p.NewRunResult(timingRun("other", 1), nil, "", false)
	assert.True(t, first.ResultName != other.ResultName)

	assert.Equal(t, "run", p.NewRunResult(nil, nil, "", false).ResultName)
}

func TestApplyMiddleware_Order(t *testing.T) {
	p, err := benchreporter.New()
	assert.NoError(t, err)

	var calls []string

	tag := func(name string) benchreporter.Middleware {
		return func(next benchreporter.Service) benchreporter.Service {
			return &recordingService{Service: next, name: name, calls: &calls}
		}
	}

	svc := benchreporter.ApplyMiddleware(p, tag("inner"), tag("outer"))

	_, err = svc.Process(context.Background(), timingRun("suite", 1))
	assert.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

type recordingService struct {
	benchreporter.Service

	name  string
	calls *[]string
}

func (s *recordingService) Process(ctx context.Context, r *run.Run) ([]*result.TestResult, error) {
	*s.calls = append(*s.calls, s.name)

	return s.Service.Process(ctx, r)
}
