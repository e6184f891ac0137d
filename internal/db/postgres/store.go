package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kailas-cloud/huematch/internal/db"
)

// Compile-time check: Store implements db.SQLStore.
var _ db.SQLStore = (*Store)(nil)

// undefinedTable is the Postgres SQLSTATE for a missing relation.
const undefinedTable = "42P01"

// Config holds connection parameters for a Postgres store.
type Config struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Store implements db.SQLStore over a database/sql pool backed by lib/pq.
// Every call checks out its own connection and returns it before exiting.
type Store struct {
	pool *sql.DB
}

// NewStore opens the pool. No connection is made until first use.
func NewStore(cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	pool, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	return &Store{pool: pool}, nil
}

// NewStoreFromDB wraps an existing pool.
func NewStoreFromDB(pool *sql.DB) *Store {
	return &Store{pool: pool}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() {
	_ = s.pool.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// QueryEach runs query on a scoped connection and calls fn for every row.
// The connection goes back to the pool on every exit path.
func (s *Store) QueryEach(ctx context.Context, query string, args []any, fn db.RowFunc) error {
	conn, err := s.pool.Conn(ctx)
	if err != nil {
		return &db.Error{Op: db.OpQuery, Err: err}
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return &db.Error{Op: db.OpQuery, Err: translate(err)}
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows.Scan); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return &db.Error{Op: db.OpQuery, Err: err}
	}
	return nil
}

// Exec runs a statement on a scoped connection.
func (s *Store) Exec(ctx context.Context, query string, args ...any) error {
	conn, err := s.pool.Conn(ctx)
	if err != nil {
		return &db.Error{Op: db.OpExec, Err: err}
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, query, args...); err != nil {
		return &db.Error{Op: db.OpExec, Err: translate(err)}
	}
	return nil
}

// translate maps driver errors onto db sentinels, keeping the original in the chain.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == undefinedTable {
		return fmt.Errorf("%w: %s", db.ErrTableNotFound, pqErr.Message)
	}
	return err
}
