// Package constants defines default configuration values and backend types
// for the benchreporter system. It provides the numeric tolerances used by the
// statistics calculator, the default significant-figure count used by the
// regression evaluator, and the supported baseline store backends.
package constants

const (
	// DefaultSigFigs is the default number of significant figures values are
	// truncated to before they are compared against baseline thresholds.
	DefaultSigFigs uint = 2
	// NoBaselineValue marks a sample group result that has not been compared
	// against any baseline.
	NoBaselineValue = -1.0
	// ZeroTolerance is the absolute magnitude below which a sample counts as zero.
	ZeroTolerance = 0.0001
	// PercentileFloor is the smallest percentile considered in use. Smaller
	// values are passed through unchanged by the percentile calculation.
	PercentileFloor = 0.00001
	// DefaultThreshold is the relative threshold applied when a raw sample
	// group does not carry one.
	DefaultThreshold = 0.1
	// DefaultSerializer is the name of the serializer used to encode run documents.
	DefaultSerializer = "json"
	// DefaultResultName is the name given to an aggregated run when none is supplied.
	DefaultResultName = "run"
	// InMemoryStore is the in-memory baseline store type.
	InMemoryStore = "in-memory"
	// RedisStore is the name of the Redis baseline store.
	RedisStore = "redis"
)
