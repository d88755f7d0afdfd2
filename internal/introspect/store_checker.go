// Package introspect provides runtime inspection of baseline store backends.
// It resolves the concrete implementation behind a store.IStore so callers can
// report or branch on it without type assertions in client code.
package introspect

import (
	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/pkg/store"
)

// CustomStore names a store implementation that is neither in-memory nor redis.
const CustomStore = "custom"

// StoreChecker inspects the implementation behind a store.
type StoreChecker struct {
	Store store.IStore
}

// IsInMemory returns true if the store is an InMemory.
func (c StoreChecker) IsInMemory() bool {
	_, ok := c.Store.(*store.InMemory)

	return ok
}

// IsRedis returns true if the store is a Redis.
func (c StoreChecker) IsRedis() bool {
	_, ok := c.Store.(*store.Redis)

	return ok
}

// Backend returns the registered backend name of the store.
func (c StoreChecker) Backend() string {
	switch {
	case c.IsInMemory():
		return constants.InMemoryStore
	case c.IsRedis():
		return constants.RedisStore
	default:
		return CustomStore
	}
}
