package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	err := os.WriteFile(path, []byte(content), 0o600)
	assert.NoError(t, err)

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, constants.DefaultSigFigs, cfg.SigFigs)
	assert.Equal(t, constants.InMemoryStore, cfg.Store.Backend)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeFile(t, "config.yaml", `
sigFigs: 3
aggregation: median
store:
  backend: redis
  redis:
    addr: localhost:6379
    db: 2
    keySetName: bench:keys
    dialTimeout: 2s
http:
  addr: 127.0.0.1:9000
`)

	cfg, err := loadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), cfg.SigFigs)
	assert.Equal(t, "median", cfg.Aggregation)
	assert.Equal(t, constants.DefaultSerializer, cfg.Serializer)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, "bench:keys", cfg.Store.Redis.KeySetName)
	assert.Equal(t, 2*time.Second, cfg.Store.Redis.DialTimeout)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeFile(t, "config.yaml", "sigFigs: [")

	_, err := loadConfig(path)
	if !errors.Is(err, sentinel.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := defaultConfig()

	opts, closer, err := cfg.options()
	assert.NoError(t, err)
	assert.NoError(t, closer())
	assert.Equal(t, 2, len(opts))

	cfg.Aggregation = "definition"
	opts, _, err = cfg.options()
	assert.NoError(t, err)
	assert.Equal(t, 2, len(opts))

	cfg.Aggregation = "mode"
	_, _, err = cfg.options()
	if !errors.Is(err, sentinel.ErrAggregationTypeNotFound) {
		t.Fatalf("expected ErrAggregationTypeNotFound, got %v", err)
	}

	cfg.Aggregation = ""
	cfg.Store.Backend = "etcd"
	_, _, err = cfg.options()
	if !errors.Is(err, sentinel.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}

	cfg.Store.Backend = constants.RedisStore
	_, _, err = cfg.options()
	if !errors.Is(err, sentinel.ErrParamCannotBeEmpty) {
		t.Fatalf("expected ErrParamCannotBeEmpty, got %v", err)
	}
}

func TestConfigOptions_Redis(t *testing.T) {
	cfg := defaultConfig()
	cfg.Store.Backend = constants.RedisStore
	cfg.Store.Redis.Addr = "localhost:6379"
	cfg.Store.Redis.Serializer = "cbor"

	opts, closer, err := cfg.options()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(opts))
	assert.NoError(t, closer())

	cfg.Store.Redis.Serializer = "xml"
	_, _, err = cfg.options()
	if !errors.Is(err, sentinel.ErrSerializerNotFound) {
		t.Fatalf("expected ErrSerializerNotFound, got %v", err)
	}
}
