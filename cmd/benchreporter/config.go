package main

import (
	"os"
	"strings"
	"time"

	"github.com/hyp3rd/ewrap"
	"gopkg.in/yaml.v3"

	"github.com/hyp3rd/benchreporter"
	"github.com/hyp3rd/benchreporter/internal/constants"
	"github.com/hyp3rd/benchreporter/internal/libs/redisclient"
	"github.com/hyp3rd/benchreporter/internal/libs/serializer"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/run"
	"github.com/hyp3rd/benchreporter/pkg/store"
)

// definitionAggregation selects the aggregation type of every sample group definition.
const definitionAggregation = "definition"

// Config is the YAML configuration of the CLI.
type Config struct {
	SigFigs     uint        `yaml:"sigFigs"`
	Aggregation string      `yaml:"aggregation"`
	Serializer  string      `yaml:"serializer"`
	Store       StoreConfig `yaml:"store"`
	HTTP        HTTPConfig  `yaml:"http"`
}

// StoreConfig selects the baseline store backend.
type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis baseline store.
type RedisConfig struct {
	Addr        string        `yaml:"addr"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	KeySetName  string        `yaml:"keySetName"`
	Serializer  string        `yaml:"serializer"`
	DialTimeout time.Duration `yaml:"dialTimeout"`
}

// HTTPConfig configures the management HTTP server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

func defaultConfig() Config {
	return Config{
		SigFigs:     constants.DefaultSigFigs,
		Aggregation: run.AggregationAverage.String(),
		Serializer:  constants.DefaultSerializer,
		Store:       StoreConfig{Backend: constants.InMemoryStore},
		HTTP:        HTTPConfig{Addr: ":8080"},
	}
}

// loadConfig reads the YAML file at path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, ewrap.Wrapf(err, "read config %s", path)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, ewrap.Wrapf(sentinel.ErrInvalidInput, "parse config %s: %v", path, err)
	}

	return cfg, nil
}

// documentSerializer returns the serializer used for run and result documents.
func (c Config) documentSerializer() (serializer.ISerializer, error) {
	name := c.Serializer
	if name == "" {
		name = constants.DefaultSerializer
	}

	return serializer.New(name)
}

// options translates the configuration into processor options. The returned
// closer releases the store connection, if any.
func (c Config) options() ([]benchreporter.Option, func() error, error) {
	opts := []benchreporter.Option{benchreporter.WithSigFigs(c.SigFigs)}

	switch {
	case strings.EqualFold(c.Aggregation, definitionAggregation):
		opts = append(opts, benchreporter.WithDefinitionAggregation())
	case c.Aggregation != "":
		aggregationType, err := run.ParseAggregationType(c.Aggregation)
		if err != nil {
			return nil, nil, err
		}

		opts = append(opts, benchreporter.WithAggregationType(aggregationType))
	}

	closer := func() error { return nil }

	switch c.Store.Backend {
	case "", constants.InMemoryStore:
		return opts, closer, nil
	case constants.RedisStore:
		baselineStore, closeStore, err := c.redisStore()
		if err != nil {
			return nil, nil, err
		}

		return append(opts, benchreporter.WithStore(baselineStore)), closeStore, nil
	default:
		return nil, nil, ewrap.Wrap(sentinel.ErrStoreNotFound, c.Store.Backend)
	}
}

func (c Config) redisStore() (*store.Redis, func() error, error) {
	clientOptions := []redisclient.Option{
		redisclient.WithAddr(c.Store.Redis.Addr),
		redisclient.WithUsername(c.Store.Redis.Username),
		redisclient.WithPassword(c.Store.Redis.Password),
		redisclient.WithDB(c.Store.Redis.DB),
	}
	if c.Store.Redis.DialTimeout > 0 {
		clientOptions = append(clientOptions, redisclient.WithDialTimeout(c.Store.Redis.DialTimeout))
	}

	client, err := redisclient.New(clientOptions...)
	if err != nil {
		return nil, nil, err
	}

	storeOptions := []store.Option[store.Redis]{
		store.WithRedisClient(client),
		store.WithKeysSetName(c.Store.Redis.KeySetName),
	}

	if c.Store.Redis.Serializer != "" {
		ser, err := serializer.New(c.Store.Redis.Serializer)
		if err != nil {
			_ = client.Close()

			return nil, nil, err
		}

		storeOptions = append(storeOptions, store.WithSerializer[store.Redis](ser))
	}

	baselineStore, err := store.NewRedis(storeOptions...)
	if err != nil {
		_ = client.Close()

		return nil, nil, err
	}

	return baselineStore, client.Close, nil
}
