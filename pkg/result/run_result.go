package result

import (
	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchreporter/pkg/run"
)

// RunResult labels an aggregated run. The environment is copied from the raw run
// untouched; IsBaseline only records which role the run plays in a comparison.
type RunResult struct {
	ResultName  string          `json:"resultName"`
	IsBaseline  bool            `json:"isBaseline"`
	TestSuite   string          `json:"testSuite"`
	StartTime   float64         `json:"startTime"`
	EndTime     float64         `json:"endTime"`
	Environment run.Environment `json:"environment"`
	TestResults []*TestResult   `json:"testResults"`
}

// NewRunResult wraps aggregated test results with the metadata of the run they came from.
func NewRunResult(r *run.Run, results []*TestResult, name string, isBaseline bool) *RunResult {
	out := &RunResult{
		ResultName:  name,
		IsBaseline:  isBaseline,
		TestResults: results,
	}

	if r != nil {
		out.TestSuite = r.TestSuite
		out.StartTime = r.StartTime
		out.EndTime = r.EndTime
		out.Environment = r.Environment
	}

	return out
}

// Failed returns the names of the tests in Failure state, in result order.
func (r *RunResult) Failed() []string {
	failed := []string{}

	for _, test := range r.TestResults {
		if test.State == Failure {
			failed = append(failed, test.TestName)
		}
	}

	return failed
}

// Fingerprint returns an xxhash64 digest of the canonical JSON encoding of the
// run result. Identical pipeline inputs yield identical fingerprints.
func (r *RunResult) Fingerprint() (uint64, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return 0, ewrap.Wrap(err, "failed to encode run result")
	}

	return xxhash.Sum64(data), nil
}
