// Package attrs provides reusable OpenTelemetry attribute key constants
// shared by the service middlewares.
package attrs

const (
	// AttrTestSuite is the name of the test suite a run belongs to.
	AttrTestSuite = "run.suite"
	// AttrResultsCount is the number of raw execution records in a run.
	AttrResultsCount = "run.results.count"
	// AttrTestsCount is the number of distinct aggregated tests.
	AttrTestsCount = "tests.count"
	// AttrFailedCount is the number of tests whose state became Failure.
	AttrFailedCount = "tests.failed.count"
	// AttrRegressionsCount is the number of sample groups classified as Regression.
	AttrRegressionsCount = "groups.regressions.count"
	// AttrProgressionsCount is the number of sample groups classified as Progression.
	AttrProgressionsCount = "groups.progressions.count"
	// AttrBaselineName is the name of a stored baseline.
	AttrBaselineName = "baseline.name"
	// AttrIsBaseline marks an aggregated run labeled as the baseline.
	AttrIsBaseline = "run.is_baseline"
	// AttrSigFigs is the significant-figure count used for comparison.
	AttrSigFigs = "sigfigs"
)
