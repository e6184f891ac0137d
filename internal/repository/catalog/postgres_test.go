package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/huematch/internal/db"
	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/product"
)

func TestBuildSelect(t *testing.T) {
	tests := []struct {
		name      string
		sel       facet.Selection
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "all types",
			sel:       facet.Selection{PersonalColor: facet.SummerCool, ProductType: facet.All},
			wantWhere: `FROM "products" WHERE personal_color = $1 ORDER BY id COLLATE "C"`,
			wantArgs:  []any{"Summer Cool"},
		},
		{
			name:      "single type",
			sel:       facet.Selection{PersonalColor: facet.SummerCool, ProductType: facet.LipGloss},
			wantWhere: `FROM "products" WHERE personal_color = $1 AND product_type = $2 ORDER BY id COLLATE "C"`,
			wantArgs:  []any{"Summer Cool", "립글로스"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := buildSelect("products", tt.sel)
			if !strings.HasPrefix(q, "SELECT id, name, color, personal_color, product_type, price, mean_h,") {
				t.Errorf("unexpected select list: %s", q)
			}
			if !strings.HasSuffix(q, tt.wantWhere) {
				t.Errorf("query = %s\nwant suffix %s", q, tt.wantWhere)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("arg %d = %v, want %v", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestBuildSelect_QuotesTable(t *testing.T) {
	q, _ := buildSelect(`weird"name`, facet.Selection{PersonalColor: facet.SpringWarm, ProductType: facet.All})
	if !strings.Contains(q, `FROM "weird""name"`) {
		t.Errorf("table not quoted: %s", q)
	}
}

func TestPostgresLoad_ScansRowsAndNulls(t *testing.T) {
	row := func(id string, hue any) []any {
		return []any{id, "n" + id, "c" + id, "Spring Warm", "립스틱", "9000",
			hue, 50.0, []byte("60"), int64(12), "4", "4", "4", nil}
	}
	store := &mockSQL{rows: [][]any{row("1", 10.5), row("2", nil)}}
	repo := NewPostgres(store, "products")

	recs, err := repo.Load(context.Background(), facet.Selection{PersonalColor: facet.SpringWarm, ProductType: facet.Lipstick})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	first := recs[0]
	if first.ID != "1" || first.ProductType != "립스틱" || first.Price != "9000" {
		t.Errorf("text fields = %+v", first)
	}
	if first.Numerics[product.FieldHue] != "10.5" || first.Numerics[product.FieldValue] != "60" ||
		first.Numerics[product.FieldPopularity] != "12" {
		t.Errorf("numerics = %v", first.Numerics)
	}
	if _, ok := first.Numerics[product.FieldSmoothness]; ok {
		t.Error("NULL column must be absent")
	}
	if _, ok := recs[1].Numerics[product.FieldHue]; ok {
		t.Error("NULL hue must be absent")
	}
	if len(store.lastArgs) != 2 {
		t.Errorf("args = %v", store.lastArgs)
	}
}

func TestPostgresLoad_Empty(t *testing.T) {
	repo := NewPostgres(&mockSQL{}, "products")
	recs, err := repo.Load(context.Background(), facet.Selection{PersonalColor: facet.SpringWarm, ProductType: facet.All})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", recs)
	}
}

func TestPostgresLoad_QueryError(t *testing.T) {
	qErr := &db.Error{Op: db.OpQuery, Err: db.ErrTableNotFound}
	repo := NewPostgres(&mockSQL{queryErr: qErr}, "products")

	_, err := repo.Load(context.Background(), facet.Selection{PersonalColor: facet.SpringWarm, ProductType: facet.All})
	if !errors.Is(err, db.ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound in chain, got %v", err)
	}
}

func TestPostgresEnsureSchema(t *testing.T) {
	store := &mockSQL{}
	repo := NewPostgres(store, "products")
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.execs) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(store.execs))
	}
	if !strings.HasPrefix(store.execs[0], `CREATE TABLE IF NOT EXISTS "products" (id TEXT PRIMARY KEY`) {
		t.Errorf("create = %s", store.execs[0])
	}
	if !strings.Contains(store.execs[0], "smoothness DOUBLE PRECISION)") {
		t.Errorf("numeric columns missing: %s", store.execs[0])
	}
}

func TestPostgresImport_Upserts(t *testing.T) {
	store := &mockSQL{}
	repo := NewPostgres(store, "products")

	rec := testRecord("7", "Winter Cool", "립밤", " 300 ")
	rec.Numerics[product.FieldRating] = ""
	if err := repo.Import(context.Background(), []product.Record{rec}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.execs) != 1 || !strings.Contains(store.execs[0], "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name") {
		t.Fatalf("statement = %v", store.execs)
	}
	args := store.execArgs[0]
	if len(args) != 14 {
		t.Fatalf("expected 14 args, got %d", len(args))
	}
	if args[0] != "7" || args[6] != "300" {
		t.Errorf("args = %v", args)
	}
	if args[10] != nil {
		t.Errorf("empty rating must be NULL, got %v", args[10])
	}
}

func TestPostgresImport_ExecError(t *testing.T) {
	repo := NewPostgres(&mockSQL{execErr: errors.New("constraint")}, "products")
	err := repo.Import(context.Background(), []product.Record{testRecord("1", "Spring Warm", "립스틱", "1")})
	if err == nil {
		t.Fatal("expected error")
	}
}
