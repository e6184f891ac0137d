package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/kailas-cloud/huematch/internal/db"
	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/product"
)

// sqlStore is the consumer interface for the Postgres catalog (ISP).
type sqlStore interface {
	QueryEach(ctx context.Context, query string, args []any, fn db.RowFunc) error
	Exec(ctx context.Context, query string, args ...any) error
}

// PostgresRepo reads catalog rows from a single products table.
type PostgresRepo struct {
	store sqlStore
	table string
}

// NewPostgres creates a Postgres catalog repository over table.
func NewPostgres(s sqlStore, table string) *PostgresRepo {
	return &PostgresRepo{store: s, table: table}
}

// columns is the select list, text columns first then numerics.
func columns() []string {
	return append(product.TextFields(), product.NumericFields()...)
}

// buildSelect renders the filtered select for sel.
func buildSelect(table string, sel facet.Selection) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(columns(), ", "))
	b.WriteString(" FROM ")
	b.WriteString(pq.QuoteIdentifier(table))
	b.WriteString(" WHERE personal_color = $1")

	args := []any{string(sel.PersonalColor)}
	if !sel.ProductType.IsAll() {
		b.WriteString(" AND product_type = $2")
		args = append(args, sel.ProductType.StoreLabel())
	}
	// Byte order, so ties rank the same as with the Redis and file loaders.
	b.WriteString(` ORDER BY id COLLATE "C"`)
	return b.String(), args
}

// Load returns the rows matching sel ordered by id. NULL numerics are left
// out of Record.Numerics so normalization reports them as missing.
func (r *PostgresRepo) Load(ctx context.Context, sel facet.Selection) ([]product.Record, error) {
	query, args := buildSelect(r.table, sel)

	var records []product.Record
	err := r.store.QueryEach(ctx, query, args, func(scan db.ScanFunc) error {
		rec, err := scanRecord(scan)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", r.table, err)
	}
	if records == nil {
		records = []product.Record{}
	}
	return records, nil
}

func scanRecord(scan db.ScanFunc) (product.Record, error) {
	cols := columns()
	vals := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := scan(dest...); err != nil {
		return product.Record{}, fmt.Errorf("scan row: %w", err)
	}

	fields := make(map[string]string, len(cols))
	for i, c := range cols {
		if vals[i].Valid {
			fields[c] = vals[i].String
		}
	}
	return product.RecordFromFields(fields), nil
}

// EnsureSchema creates the products table when it does not exist.
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(pq.QuoteIdentifier(r.table))
	b.WriteString(" (id TEXT PRIMARY KEY, name TEXT NOT NULL, color TEXT, ")
	b.WriteString("personal_color TEXT NOT NULL, product_type TEXT NOT NULL, price TEXT")
	for _, c := range product.NumericFields() {
		b.WriteString(", ")
		b.WriteString(c)
		b.WriteString(" DOUBLE PRECISION")
	}
	b.WriteString(")")

	if err := r.store.Exec(ctx, b.String()); err != nil {
		return fmt.Errorf("create table %s: %w", r.table, err)
	}
	idx := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (personal_color, product_type)",
		pq.QuoteIdentifier(r.table+"_facets_idx"), pq.QuoteIdentifier(r.table))
	if err := r.store.Exec(ctx, idx); err != nil {
		return fmt.Errorf("create index %s: %w", r.table, err)
	}
	return nil
}

// buildUpsert renders the insert-or-replace statement for one row.
func buildUpsert(table string) string {
	cols := columns()
	placeholders := make([]string, len(cols))
	updates := make([]string, 0, len(cols)-1)
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if c != product.FieldID {
			updates = append(updates, c+" = EXCLUDED."+c)
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
		pq.QuoteIdentifier(table),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)
}

// Import upserts records row by row. Empty numerics are stored as NULL.
func (r *PostgresRepo) Import(ctx context.Context, records []product.Record) error {
	stmt := buildUpsert(r.table)
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			return fmt.Errorf("record %d (%q): missing id", i, rec.Name)
		}
		if err := r.store.Exec(ctx, stmt, upsertArgs(rec)...); err != nil {
			return fmt.Errorf("upsert %s: %w", rec.ID, err)
		}
	}
	return nil
}

func upsertArgs(rec *product.Record) []any {
	args := []any{rec.ID, rec.Name, rec.ColorLabel, rec.PersonalColor, rec.ProductType, rec.Price}
	for _, f := range product.NumericFields() {
		v, ok := rec.Numerics[f]
		if !ok || strings.TrimSpace(v) == "" {
			args = append(args, nil)
			continue
		}
		args = append(args, strings.TrimSpace(v))
	}
	return args
}
