package store

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/internal/libs/serializer"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/result"
)

const (
	maxRetries   = 3
	retriesDelay = 100 * time.Millisecond
)

// Redis is a store that keeps serialized run results in redis hashes and tracks
// their names in a redis set.
type Redis struct {
	rdb         *redis.Client          // redis client to interact with the redis server
	keysSetName string                 // keysSetName is the name of the set that holds the stored names
	keyPrefix   string                 // keyPrefix prefixes the hash key of every stored run result
	Serializer  serializer.ISerializer // Serializer is the serializer used to encode run results
}

// NewRedis creates a new redis store with the given options.
func NewRedis(redisOptions ...Option[Redis]) (*Redis, error) {
	rs := &Redis{}
	// Apply the store options
	ApplyOptions(rs, redisOptions...)

	// Check if the client is nil
	if rs.rdb == nil {
		return nil, sentinel.ErrNilClient
	}

	if rs.keysSetName == "" {
		rs.keysSetName = constants.RedisKeySetName
	}

	if rs.keyPrefix == "" {
		rs.keyPrefix = constants.RedisKeyPrefix
	}

	// Check if the serializer is nil
	if rs.Serializer == nil {
		var err error
		// Default to `msgpack`, which is compact for large result sets
		rs.Serializer, err = serializer.New("msgpack")
		if err != nil {
			return nil, err
		}
	}

	return rs, nil
}

func (rs *Redis) key(name string) string {
	return rs.keyPrefix + name
}

// Save stores the run result under its ResultName.
func (rs *Redis) Save(ctx context.Context, runResult *result.RunResult) error {
	err := checkSave(ctx, runResult)
	if err != nil {
		return err
	}

	data, err := rs.Serializer.Marshal(runResult)
	if err != nil {
		return err
	}

	pipe := rs.rdb.TxPipeline()

	pipe.HSet(ctx, rs.key(runResult.ResultName), map[string]any{
		"data":       data,
		"isBaseline": runResult.IsBaseline,
		"testSuite":  runResult.TestSuite,
	})
	pipe.SAdd(ctx, rs.keysSetName, runResult.ResultName)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return ewrap.Wrap(err, "failed to execute redis pipeline", ewrap.WithRetry(maxRetries, retriesDelay))
	}

	return nil
}

// Load returns a copy of the run result stored under name.
func (rs *Redis) Load(ctx context.Context, name string) (*result.RunResult, error) {
	data, err := rs.rdb.HGet(ctx, rs.key(name), "data").Bytes()
	if err != nil {
		// Check if the entry is not found
		if errors.Is(err, redis.Nil) {
			return nil, ewrap.Wrap(sentinel.ErrBaselineNotFound, name)
		}

		return nil, ewrap.Wrap(err, "failed to get run result from redis")
	}

	var out result.RunResult

	err = rs.Serializer.Unmarshal(data, &out)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// List returns the stored names in ascending order.
func (rs *Redis) List(ctx context.Context) ([]string, error) {
	names, err := rs.rdb.SMembers(ctx, rs.keysSetName).Result()
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to get names from redis")
	}

	slices.Sort(names)

	return names, nil
}

// Count returns the number of stored run results.
func (rs *Redis) Count(ctx context.Context) int {
	count, err := rs.rdb.SCard(ctx, rs.keysSetName).Result()
	if err != nil {
		return 0
	}

	return int(count)
}

// Remove deletes the run results stored under the given names.
func (rs *Redis) Remove(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}

	pipe := rs.rdb.TxPipeline()

	members := make([]any, 0, len(names))
	for _, name := range names {
		pipe.Del(ctx, rs.key(name))

		members = append(members, name)
	}

	pipe.SRem(ctx, rs.keysSetName, members...)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return ewrap.Wrap(err, "failed to remove run results from redis", ewrap.WithRetry(maxRetries, retriesDelay))
	}

	return nil
}

// Clear removes every run result tracked in the names set, then the set itself.
func (rs *Redis) Clear(ctx context.Context) error {
	names, err := rs.List(ctx)
	if err != nil {
		return err
	}

	err = rs.Remove(ctx, names...)
	if err != nil {
		return err
	}

	err = rs.rdb.Del(ctx, rs.keysSetName).Err()
	if err != nil {
		return ewrap.Wrap(err, "failed to clear redis names set")
	}

	return nil
}
