package regression

import (
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/aggregator"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/run"
)

func groupResult(value, baseline, threshold float64, increaseIsBetter bool) *result.SampleGroupResult {
	return &result.SampleGroupResult{
		SampleGroupName:  "g",
		AggregatedValue:  value,
		BaselineValue:    baseline,
		Threshold:        threshold,
		IncreaseIsBetter: increaseIsBetter,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name             string
		value            float64
		baseline         float64
		threshold        float64
		increaseIsBetter bool
		expected         result.Classification
	}{
		{name: "inside band higher better", value: 11, baseline: 10, threshold: 0.1, increaseIsBetter: true, expected: result.Neutral},
		{name: "above band higher better", value: 11, baseline: 10, threshold: 0.05, increaseIsBetter: true, expected: result.Progression},
		{name: "below band higher better", value: 8, baseline: 10, threshold: 0.1, increaseIsBetter: true, expected: result.Regression},
		{name: "above band lower better", value: 12, baseline: 10, threshold: 0.1, increaseIsBetter: false, expected: result.Regression},
		{name: "below band lower better", value: 8, baseline: 10, threshold: 0.1, increaseIsBetter: false, expected: result.Progression},
		{name: "on edge lower better", value: 11, baseline: 10, threshold: 0.1, increaseIsBetter: false, expected: result.Neutral},
		{name: "noise truncated away", value: 11.04, baseline: 10, threshold: 0.1, increaseIsBetter: false, expected: result.Neutral},
		{name: "zero baseline positive value", value: 5, baseline: 0, threshold: 0.1, increaseIsBetter: true, expected: result.Progression},
		{name: "zero baseline negative value", value: -5, baseline: 0, threshold: 0.1, increaseIsBetter: true, expected: result.Regression},
		{name: "zero baseline zero value", value: 0, baseline: 0, threshold: 0, increaseIsBetter: true, expected: result.Neutral},
		{name: "overlap second check wins higher better", value: -10, baseline: -10, threshold: 0.1, increaseIsBetter: true, expected: result.Progression},
		{name: "overlap second check wins lower better", value: -10, baseline: -10, threshold: 0.1, increaseIsBetter: false, expected: result.Progression},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Classify(groupResult(test.value, test.baseline, test.threshold, test.increaseIsBetter), constants.DefaultSigFigs)
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestClassify_DirectionAntiSymmetry(t *testing.T) {
	swap := map[result.Classification]result.Classification{
		result.Neutral:     result.Neutral,
		result.Regression:  result.Progression,
		result.Progression: result.Regression,
	}

	for _, value := range []float64{5, 8.9, 9, 10, 11, 11.5, 20} {
		higher := Classify(groupResult(value, 10, 0.1, true), 2)
		lower := Classify(groupResult(value, 10, 0.1, false), 2)

		assert.Equal(t, swap[higher], lower)
	}
}

func aggregate(t *testing.T, tests ...run.Result) []*result.TestResult {
	t.Helper()

	agg, err := aggregator.New()
	assert.NoError(t, err)

	results, err := agg.GetTestResults(&run.Run{Results: tests})
	assert.NoError(t, err)

	return results
}

func execution(name string, definition run.Definition, samples ...float64) run.Result {
	return run.Result{Name: name, SampleGroups: []run.SampleGroup{{Definition: definition, Samples: samples}}}
}

func definition(threshold float64, increaseIsBetter bool) run.Definition {
	d := run.NewDefinition("FrameTime")
	d.Threshold = threshold
	d.IncreaseIsBetter = increaseIsBetter

	return d
}

func TestEvaluate_Scenarios(t *testing.T) {
	t.Run("neutral within band", func(t *testing.T) {
		baseline := aggregate(t, execution("t", definition(0.1, true), 10))
		candidate := aggregate(t, execution("t", definition(0.1, true), 10, 12, 11))

		evaluator, err := NewEvaluator(2)
		assert.NoError(t, err)

		summary := evaluator.Evaluate(baseline, candidate)

		group := candidate[0].SampleGroupResults[0]
		assert.Equal(t, 11.0, group.AggregatedValue)
		assert.Equal(t, 10.0, group.BaselineValue)
		assert.Equal(t, result.Neutral, group.Classification)
		assert.False(t, group.Regressed)
		assert.Equal(t, result.Success, candidate[0].State)
		assert.Equal(t, 1, summary.Neutral)
		assert.True(t, summary.Passed())
	})

	t.Run("progression above band", func(t *testing.T) {
		baseline := aggregate(t, execution("t", definition(0.05, true), 10))
		candidate := aggregate(t, execution("t", definition(0.05, true), 10, 12, 11))

		evaluator, _ := NewEvaluator(2)
		summary := evaluator.Evaluate(baseline, candidate)

		assert.Equal(t, result.Progression, candidate[0].SampleGroupResults[0].Classification)
		assert.False(t, candidate[0].SampleGroupResults[0].Regressed)
		assert.Equal(t, 1, summary.Progressions)
	})

	t.Run("lower is better neutral", func(t *testing.T) {
		baseline := aggregate(t, execution("t", definition(0.1, false), 10))
		candidate := aggregate(t, execution("t", definition(0.1, false), 5, 15))

		evaluator, _ := NewEvaluator(2)
		evaluator.Evaluate(baseline, candidate)

		assert.Equal(t, 10.0, candidate[0].SampleGroupResults[0].AggregatedValue)
		assert.Equal(t, result.Neutral, candidate[0].SampleGroupResults[0].Classification)
		assert.Equal(t, result.Success, candidate[0].State)
	})

	t.Run("regression fails test", func(t *testing.T) {
		baseline := aggregate(t, execution("t", definition(0.1, false), 10))
		candidate := aggregate(t, execution("t", definition(0.1, false), 14, 16))

		evaluator, _ := NewEvaluator(2)
		summary := evaluator.Evaluate(baseline, candidate)

		assert.True(t, candidate[0].SampleGroupResults[0].Regressed)
		assert.Equal(t, result.Failure, candidate[0].State)
		assert.Equal(t, []string{"t"}, summary.FailedTests)
		assert.False(t, summary.Passed())
	})

	t.Run("test absent from baseline", func(t *testing.T) {
		baseline := aggregate(t, execution("other", definition(0.1, false), 10))
		candidate := aggregate(t, execution("t", definition(0.1, false), 100))

		evaluator, _ := NewEvaluator(2)
		summary := evaluator.Evaluate(baseline, candidate)

		group := candidate[0].SampleGroupResults[0]
		assert.Equal(t, constants.NoBaselineValue, group.BaselineValue)
		assert.False(t, group.Regressed)
		assert.Equal(t, result.Success, candidate[0].State)
		assert.Equal(t, 1, summary.Unmatched)
		assert.Equal(t, 0, summary.Compared)
	})
}

func TestEvaluate_GroupAbsentFromBaseline(t *testing.T) {
	other := run.NewDefinition("Memory")

	baseline := aggregate(t, execution("t", other, 10))
	candidate := aggregate(t, execution("t", definition(0.1, false), 100))

	evaluator, _ := NewEvaluator(2)
	summary := evaluator.Evaluate(baseline, candidate)

	group := candidate[0].SampleGroupResults[0]
	assert.Equal(t, constants.NoBaselineValue, group.BaselineValue)
	assert.False(t, group.Regressed)
	assert.Equal(t, result.Success, candidate[0].State)
	assert.Equal(t, 1, summary.Unmatched)
}

func TestEvaluate_Idempotent(t *testing.T) {
	baseline := aggregate(t, execution("t", definition(0.1, false), 10), execution("u", definition(0.1, true), 3))
	candidate := aggregate(t, execution("t", definition(0.1, false), 12, 13), execution("u", definition(0.1, true), 3, 3.1))

	evaluator, _ := NewEvaluator(3)

	first := evaluator.Evaluate(baseline, candidate)

	fingerprint, err := result.NewRunResult(nil, candidate, "c", false).Fingerprint()
	assert.NoError(t, err)

	second := evaluator.Evaluate(baseline, candidate)

	again, err := result.NewRunResult(nil, candidate, "c", false).Fingerprint()
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, fingerprint, again)
}

func TestNewEvaluator_ZeroSigFigs(t *testing.T) {
	_, err := NewEvaluator(0)
	if !errors.Is(err, sentinel.ErrInvalidSigFigs) {
		t.Fatalf("expected ErrInvalidSigFigs, got %v", err)
	}
}
