// Package store provides backends that keep aggregated runs by name so they can be
// used as baselines for later comparisons. Runs are serialized on Save and decoded
// on Load, so a loaded baseline is always a private copy the caller may mutate.
//
// The main interface IStore provides methods for:
//   - Saving and loading named run results
//   - Listing, counting and removing stored names
//   - Clearing the store
//
// Store implementations must satisfy the IStoreConstrain type constraint,
// which currently supports the InMemory and Redis store types.
package store

import (
	"context"

	"github.com/hyp3rd/benchreporter/pkg/result"
)

// IStoreConstrain defines the type constraint for store implementations.
type IStoreConstrain interface {
	InMemory | Redis
}

// IStore defines the contract that all baseline stores must implement.
type IStore interface {
	// Save stores the run result under its ResultName, replacing any previous entry.
	Save(ctx context.Context, runResult *result.RunResult) error
	// Load returns a copy of the run result stored under name.
	// It returns sentinel.ErrBaselineNotFound when nothing is stored under name.
	Load(ctx context.Context, name string) (*result.RunResult, error)
	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
	// Count returns the number of stored run results.
	Count(ctx context.Context) int
	// Remove deletes the run results stored under the given names.
	Remove(ctx context.Context, names ...string) error
	// Clear removes all stored run results.
	Clear(ctx context.Context) error
}
