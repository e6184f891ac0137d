package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kailas-cloud/huematch/internal/db"
	"github.com/kailas-cloud/huematch/internal/domain/product"
)

// mockKV implements kvStore for tests.
type mockKV struct {
	hsetMultiFn    func(ctx context.Context, items []db.HashSetItem) error
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	saddFn         func(ctx context.Context, key string, members ...string) error
	smembersFn     func(ctx context.Context, key string) ([]string, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	delFn          func(ctx context.Context, keys ...string) error
}

func (m *mockKV) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockKV) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockKV) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockKV) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockKV) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockKV) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

// mockSQL implements sqlStore for tests. rows are fed to QueryEach as-is.
type mockSQL struct {
	rows     [][]any
	queryErr error
	execErr  error

	lastQuery string
	lastArgs  []any
	execs     []string
	execArgs  [][]any
}

func (m *mockSQL) QueryEach(_ context.Context, query string, args []any, fn db.RowFunc) error {
	m.lastQuery = query
	m.lastArgs = args
	if m.queryErr != nil {
		return m.queryErr
	}
	for _, row := range m.rows {
		scan := func(dest ...any) error { return fakeScan(row, dest) }
		if err := fn(scan); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockSQL) Exec(_ context.Context, query string, args ...any) error {
	m.execs = append(m.execs, query)
	m.execArgs = append(m.execArgs, args)
	return m.execErr
}

// fakeScan copies row values into *sql.NullString destinations.
func fakeScan(row []any, dest []any) error {
	for i := range dest {
		if err := assignNullString(dest[i], row[i]); err != nil {
			return err
		}
	}
	return nil
}

func assignNullString(dest, v any) error {
	ns, ok := dest.(*sql.NullString)
	if !ok {
		return fmt.Errorf("unexpected dest %T", dest)
	}
	if v == nil {
		*ns = sql.NullString{}
		return nil
	}
	return ns.Scan(v)
}

func testRecord(id, pc, pt, hue string) product.Record {
	return product.Record{
		ID:            id,
		Name:          "name-" + id,
		ColorLabel:    "shade-" + id,
		PersonalColor: pc,
		ProductType:   pt,
		Price:         "10000",
		Numerics: map[string]string{
			product.FieldHue:          hue,
			product.FieldSaturation:   "50",
			product.FieldValue:        "60",
			product.FieldPopularity:   "10",
			product.FieldRating:       "4",
			product.FieldPigmentation: "4",
			product.FieldLongevity:    "4",
			product.FieldSmoothness:   "4",
		},
	}
}
