// Package regression compares a candidate run against a baseline run and flags
// sample groups whose aggregated value left the threshold band around the baseline.
//
// The band is baseline ± baseline*threshold. The candidate value and both band edges
// are truncated to the same number of significant figures before comparison so that
// measurement noise near an edge does not flip the verdict.
package regression

import (
	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/sigfig"
)

// Summary counts the verdicts of one evaluation.
type Summary struct {
	Tests        int      `json:"tests"`
	Compared     int      `json:"compared"`
	Unmatched    int      `json:"unmatched"`
	Neutral      int      `json:"neutral"`
	Regressions  int      `json:"regressions"`
	Progressions int      `json:"progressions"`
	FailedTests  []string `json:"failedTests"`
}

// Passed reports whether no test failed.
func (s Summary) Passed() bool {
	return len(s.FailedTests) == 0
}

// Classify returns the verdict for a group whose BaselineValue is already set.
//
// Both direction checks run in order and the later one wins: with a zero threshold
// and a zero baseline a value can satisfy both legs, and the second leg is kept.
func Classify(group *result.SampleGroupResult, sigFigs uint) result.Classification {
	positiveThreshold := group.BaselineValue + group.BaselineValue*group.Threshold
	negativeThreshold := group.BaselineValue - group.BaselineValue*group.Threshold

	value := sigfig.Truncate(group.AggregatedValue, sigFigs)
	upper := sigfig.Truncate(positiveThreshold, sigFigs)
	lower := sigfig.Truncate(negativeThreshold, sigFigs)

	classification := result.Neutral

	if group.IncreaseIsBetter {
		if value < lower {
			classification = result.Regression
		}

		if value > upper {
			classification = result.Progression
		}

		return classification
	}

	if value > upper {
		classification = result.Regression
	}

	if value < lower {
		classification = result.Progression
	}

	return classification
}

// Evaluator compares candidate results against baseline results.
type Evaluator struct {
	sigFigs uint
}

// NewEvaluator returns an Evaluator truncating to sigFigs significant figures.
func NewEvaluator(sigFigs uint) (*Evaluator, error) {
	if sigFigs == 0 {
		return nil, sentinel.ErrInvalidSigFigs
	}

	return &Evaluator{sigFigs: sigFigs}, nil
}

// SigFigs returns the significant-figure count used for comparison.
func (e *Evaluator) SigFigs() uint {
	return e.sigFigs
}

// Evaluate compares candidate against baseline and updates candidate in place.
//
// Tests are matched by name and groups by name within a matched test. A matched
// group receives the baseline's aggregated value, its classification and the
// regressed flag; a matched test becomes Failure when any of its groups regressed
// and Success otherwise. Unmatched tests and groups are left untouched. The
// baseline is only read, so one baseline may be shared by concurrent evaluations
// of distinct candidates.
func (e *Evaluator) Evaluate(baseline, candidate []*result.TestResult) Summary {
	summary := Summary{Tests: len(candidate), FailedTests: []string{}}

	for _, test := range candidate {
		baselineTest, ok := result.Find(baseline, test.TestName)
		if !ok {
			summary.Unmatched += len(test.SampleGroupResults)

			continue
		}

		for _, group := range test.SampleGroupResults {
			baselineGroup, ok := baselineTest.Group(group.SampleGroupName)
			if !ok {
				summary.Unmatched++

				continue
			}

			group.BaselineValue = baselineGroup.AggregatedValue
			group.Classification = Classify(group, e.sigFigs)
			group.Regressed = group.Classification == result.Regression

			summary.Compared++

			switch group.Classification {
			case result.Regression:
				summary.Regressions++
			case result.Progression:
				summary.Progressions++
			case result.Neutral:
				summary.Neutral++
			}
		}

		test.State = result.Success
		if test.Regressed() {
			test.State = result.Failure
		}

		if test.State == result.Failure {
			summary.FailedTests = append(summary.FailedTests, test.TestName)
		}
	}

	return summary
}
