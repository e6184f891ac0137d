package db

import (
	"context"
	"time"
)

// Store is the key-value catalog facade implemented by the Redis/Valkey backend.
type Store interface {
	Pinger
	HashStore
	SetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// SetStore provides unordered set operations used for facet indexes.
type SetStore interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// ScanFunc copies the current row into dest, like sql.Rows.Scan.
type ScanFunc func(dest ...any) error

// RowFunc is called once per result row.
type RowFunc func(scan ScanFunc) error

// SQLStore is the relational catalog facade implemented by the Postgres backend.
type SQLStore interface {
	Pinger
	QueryEach(ctx context.Context, query string, args []any, fn RowFunc) error
	Exec(ctx context.Context, query string, args ...any) error
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
