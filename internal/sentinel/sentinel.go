// Package sentinel provides standardized error definitions for the benchreporter system.
// This package centralizes all error types used across the pipeline components,
// ensuring consistent error handling and messaging throughout the application.
//
// Two error classes are exposed and every other sentinel belongs to one of them:
//   - ErrInvalidInput: the caller supplied data the pipeline cannot process
//     (empty sample lists, negative thresholds, zero significant figures).
//   - ErrInvariantViolation: the pipeline reached a state that its own inputs
//     should have made impossible (a merged test without raw metadata).
//
// All errors are created using the ewrap package to provide enhanced error
// wrapping and context capabilities.
package sentinel

import (
	"github.com/hyp3rd/ewrap"
)

var (
	// ErrInvalidInput is the class of errors caused by malformed caller input.
	ErrInvalidInput = ewrap.New("invalid input")

	// ErrInvariantViolation is the class of errors caused by broken internal invariants.
	ErrInvariantViolation = ewrap.New("invariant violation")
)

var (
	// ErrEmptySamples is returned when statistics are requested for an empty sample list.
	ErrEmptySamples = ewrap.Wrap(ErrInvalidInput, "sample list is empty")

	// ErrNilRun is returned when a nil run record is passed to the pipeline.
	ErrNilRun = ewrap.Wrap(ErrInvalidInput, "run cannot be nil")

	// ErrInvalidThreshold is returned when a sample group definition carries a negative threshold.
	ErrInvalidThreshold = ewrap.Wrap(ErrInvalidInput, "threshold cannot be negative")

	// ErrInvalidPercentile is returned when a sample group definition carries a percentile outside [0,1).
	ErrInvalidPercentile = ewrap.Wrap(ErrInvalidInput, "percentile must be in [0,1)")

	// ErrInvalidSigFigs is returned when the significant figure count is zero.
	ErrInvalidSigFigs = ewrap.Wrap(ErrInvalidInput, "significant figures must be greater than zero")

	// ErrParamCannotBeEmpty is returned when a parameter cannot be empty.
	ErrParamCannotBeEmpty = ewrap.Wrap(ErrInvalidInput, "param cannot be empty")

	// ErrAggregationTypeNotFound is returned when an aggregation type is not registered.
	ErrAggregationTypeNotFound = ewrap.Wrap(ErrInvalidInput, "aggregation type not found")

	// ErrSerializerNotFound is returned when a serializer is not found.
	ErrSerializerNotFound = ewrap.Wrap(ErrInvalidInput, "serializer not found")

	// ErrStoreNotFound is returned when a baseline store backend is not found.
	ErrStoreNotFound = ewrap.Wrap(ErrInvalidInput, "store backend not found")

	// ErrNilClient is returned when a nil client is passed to a store backend.
	ErrNilClient = ewrap.Wrap(ErrInvalidInput, "nil client")

	// ErrNilResult is returned when a nil run result is handed to a store backend.
	ErrNilResult = ewrap.Wrap(ErrInvalidInput, "run result cannot be nil")
)

var (
	// ErrMissingTestMetadata is returned when a merged test has no matching raw result record.
	ErrMissingTestMetadata = ewrap.Wrap(ErrInvariantViolation, "no raw result record for merged test")
)

var (
	// ErrBaselineNotFound is returned when a named baseline is not present in the store.
	ErrBaselineNotFound = ewrap.New("baseline not found")

	// ErrTimeoutOrCanceled is returned when a timeout or cancellation occurs.
	ErrTimeoutOrCanceled = ewrap.New("the operation timed out or was canceled")

	// ErrMgmtHTTPShutdownTimeout is returned when the management HTTP server fails to shutdown before context deadline.
	ErrMgmtHTTPShutdownTimeout = ewrap.New("management http shutdown timeout")
)
