package introspect

import (
	"context"
	"testing"

	"github.com/longbridgeapp/assert"
	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/store"
)

type customStore struct{}

func (customStore) Save(context.Context, *result.RunResult) error { return nil }

func (customStore) Load(context.Context, string) (*result.RunResult, error) { return nil, nil }

func (customStore) List(context.Context) ([]string, error) { return nil, nil }

func (customStore) Count(context.Context) int { return 0 }

func (customStore) Remove(context.Context, ...string) error { return nil }

func (customStore) Clear(context.Context) error { return nil }

func TestStoreChecker(t *testing.T) {
	inMemory, err := store.NewInMemory()
	assert.NoError(t, err)

	checker := StoreChecker{Store: inMemory}
	assert.True(t, checker.IsInMemory())
	assert.False(t, checker.IsRedis())
	assert.Equal(t, constants.InMemoryStore, checker.Backend())

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	redisStore, err := store.NewRedis(store.WithRedisClient(client))
	assert.NoError(t, err)

	checker = StoreChecker{Store: redisStore}
	assert.True(t, checker.IsRedis())
	assert.Equal(t, constants.RedisStore, checker.Backend())

	checker = StoreChecker{Store: customStore{}}
	assert.Equal(t, CustomStore, checker.Backend())
}
