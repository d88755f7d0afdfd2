// Package merger consolidates repeated executions of the same test. Every sample
// group recorded under a (test name, group name) pair is folded into one group whose
// samples are the concatenation, in execution order, of all the recorded samples.
package merger

import (
	"slices"

	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/run"
)

// Test is a logical test with the sample groups of all its executions merged.
// Groups keep the order in which their names first appeared.
type Test struct {
	Name   string
	Groups []run.SampleGroup
}

// Group returns the merged group with the given name.
func (t *Test) Group(name string) (*run.SampleGroup, bool) {
	for i := range t.Groups {
		if t.Groups[i].Name() == name {
			return &t.Groups[i], true
		}
	}

	return nil, false
}

// Merge folds the executions of r by test name. Tests are returned in the order
// their names first appear in the run. The run itself is not modified: sample
// lists are copied, and each merged group keeps the definition of its first
// occurrence.
func Merge(r *run.Run) ([]Test, error) {
	if r == nil {
		return nil, sentinel.ErrNilRun
	}

	tests := make([]Test, 0, len(r.Results))
	index := make(map[string]int, len(r.Results))

	for _, execution := range r.Results {
		pos, ok := index[execution.Name]
		if !ok {
			pos = len(tests)
			index[execution.Name] = pos

			tests = append(tests, Test{Name: execution.Name, Groups: []run.SampleGroup{}})
		}

		tests[pos].Groups = mergeGroups(tests[pos].Groups, execution.SampleGroups)
	}

	return tests, nil
}

// mergeGroups appends the samples of incoming onto the accumulated groups,
// inserting groups whose name has not been seen yet.
func mergeGroups(accumulated, incoming []run.SampleGroup) []run.SampleGroup {
	for _, group := range incoming {
		pos := slices.IndexFunc(accumulated, func(g run.SampleGroup) bool {
			return g.Name() == group.Name()
		})

		if pos < 0 {
			accumulated = append(accumulated, run.SampleGroup{
				Definition: group.Definition,
				Samples:    slices.Clone(group.Samples),
			})

			continue
		}

		accumulated[pos].Samples = append(accumulated[pos].Samples, group.Samples...)
	}

	return accumulated
}
