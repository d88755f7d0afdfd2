package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/internal/libs/serializer"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/result"
)

// InMemory is a store that keeps serialized run results in process memory.
type InMemory struct {
	sync.RWMutex // mutex to protect the entries from concurrent access

	entries    map[string][]byte      // serialized run results keyed by result name
	Serializer serializer.ISerializer // Serializer encodes run results before they are kept
}

// NewInMemory creates a new in-memory store with the given options.
func NewInMemory(opts ...Option[InMemory]) (*InMemory, error) {
	store := &InMemory{
		entries: make(map[string][]byte),
	}
	// Apply the store options
	ApplyOptions(store, opts...)

	if store.Serializer == nil {
		var err error

		store.Serializer, err = serializer.New(constants.DefaultSerializer)
		if err != nil {
			return nil, err
		}
	}

	return store, nil
}

// Save stores the run result under its ResultName.
func (s *InMemory) Save(ctx context.Context, runResult *result.RunResult) error {
	err := checkSave(ctx, runResult)
	if err != nil {
		return err
	}

	data, err := s.Serializer.Marshal(runResult)
	if err != nil {
		return err
	}

	s.Lock()
	defer s.Unlock()

	s.entries[strings.Clone(runResult.ResultName)] = data

	return nil
}

// Load returns a copy of the run result stored under name.
func (s *InMemory) Load(ctx context.Context, name string) (*result.RunResult, error) {
	if ctx.Err() != nil {
		return nil, sentinel.ErrTimeoutOrCanceled
	}

	s.RLock()
	data, ok := s.entries[name]
	s.RUnlock()

	if !ok {
		return nil, ewrap.Wrap(sentinel.ErrBaselineNotFound, name)
	}

	var out result.RunResult

	err := s.Serializer.Unmarshal(data, &out)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// List returns the stored names in ascending order.
func (s *InMemory) List(ctx context.Context) ([]string, error) {
	if ctx.Err() != nil {
		return nil, sentinel.ErrTimeoutOrCanceled
	}

	s.RLock()
	defer s.RUnlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}

	slices.Sort(names)

	return names, nil
}

// Count returns the number of stored run results.
func (s *InMemory) Count(_ context.Context) int {
	s.RLock()
	defer s.RUnlock()

	return len(s.entries)
}

// Remove deletes the run results stored under the given names. Unknown names are ignored.
func (s *InMemory) Remove(ctx context.Context, names ...string) error {
	if ctx.Err() != nil {
		return sentinel.ErrTimeoutOrCanceled
	}

	s.Lock()
	defer s.Unlock()

	for _, name := range names {
		delete(s.entries, name)
	}

	return nil
}

// Clear removes all stored run results.
func (s *InMemory) Clear(ctx context.Context) error {
	if ctx.Err() != nil {
		return sentinel.ErrTimeoutOrCanceled
	}

	s.Lock()
	defer s.Unlock()

	clear(s.entries)

	return nil
}

// checkSave validates the arguments shared by every Save implementation.
func checkSave(ctx context.Context, runResult *result.RunResult) error {
	if ctx.Err() != nil {
		return sentinel.ErrTimeoutOrCanceled
	}

	if runResult == nil {
		return sentinel.ErrNilResult
	}

	if runResult.ResultName == "" {
		return ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "resultName")
	}

	return nil
}
