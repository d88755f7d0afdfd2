package store

import (
	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/benchreporter/internal/libs/serializer"
)

// iConfigurableStore is implemented by stores that accept a custom serializer.
type iConfigurableStore interface {
	// setSerializer sets the serializer used to encode run results.
	setSerializer(ser serializer.ISerializer)
}

// setSerializer sets the `Serializer` field of the `InMemory` store.
func (inm *InMemory) setSerializer(ser serializer.ISerializer) {
	inm.Serializer = ser
}

// setSerializer sets the `Serializer` field of the `Redis` store.
func (rs *Redis) setSerializer(ser serializer.ISerializer) {
	rs.Serializer = ser
}

// Option is a function type that can be used to configure a store.
type Option[T IStoreConstrain] func(*T)

// ApplyOptions applies the given options to the given store.
func ApplyOptions[T IStoreConstrain](store *T, options ...Option[T]) {
	for _, option := range options {
		option(store)
	}
}

// WithSerializer is an option that sets the serializer used to encode run results.
func WithSerializer[T IStoreConstrain](ser serializer.ISerializer) Option[T] {
	return func(a *T) {
		if configurable, ok := any(a).(iConfigurableStore); ok {
			configurable.setSerializer(ser)
		}
	}
}

// WithRedisClient is an option that sets the redis client to use.
func WithRedisClient(client *redis.Client) Option[Redis] {
	return func(rs *Redis) {
		rs.rdb = client
	}
}

// WithKeysSetName is an option that sets the name of the redis set holding the stored names.
func WithKeysSetName(keysSetName string) Option[Redis] {
	return func(rs *Redis) {
		rs.keysSetName = keysSetName
	}
}

// WithKeyPrefix is an option that sets the prefix of the redis hash keys.
func WithKeyPrefix(prefix string) Option[Redis] {
	return func(rs *Redis) {
		rs.keyPrefix = prefix
	}
}
