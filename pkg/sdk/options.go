package huematch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "valkey", "redis", "postgres" or "file"
	addrs    []string
	password string
	dsn      string
	table    string
	path     string

	keyPrefix    string
	qualityScale float64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey reads the catalog from a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis reads the catalog from a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithPostgres reads the catalog from a Postgres table (default "products").
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "postgres"
		c.dsn = dsn
	})
}

// WithFile reads the catalog from a YAML file on every query.
func WithFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "file"
		c.path = path
	})
}

// WithTable overrides the Postgres catalog table.
func WithTable(table string) Option {
	return optionFunc(func(c *clientConfig) {
		c.table = table
	})
}

// WithKeyPrefix overrides the Redis/Valkey key prefix. Default: "huematch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithQualityScale sets the upper bound of the raw quality metrics. Default: 5.
func WithQualityScale(scale float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.qualityScale = scale
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
