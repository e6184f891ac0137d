package recommend

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/huematch/internal/domain"
	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/product"
)

// --- Mocks ---

type mockLoader struct {
	records []product.Record
	err     error
	called  bool
	lastSel facet.Selection
}

func (m *mockLoader) Load(_ context.Context, sel facet.Selection) ([]product.Record, error) {
	m.called = true
	m.lastSel = sel
	return m.records, m.err
}

func rawRecord(id, hueDeg, satPct, pop string) product.Record {
	return product.Record{
		ID:            id,
		Name:          "name-" + id,
		ColorLabel:    "shade-" + id,
		PersonalColor: "Spring Warm",
		ProductType:   "립스틱",
		Price:         "12000",
		Numerics: map[string]string{
			product.FieldHue:          hueDeg,
			product.FieldSaturation:   satPct,
			product.FieldValue:        "70",
			product.FieldPopularity:   pop,
			product.FieldRating:       "4",
			product.FieldPigmentation: "4",
			product.FieldLongevity:    "4",
			product.FieldSmoothness:   "4",
		},
	}
}

func newTestService(t *testing.T, loader CatalogLoader) *Service {
	t.Helper()
	n, err := product.NewNormalizer(product.DefaultQualityScale)
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	return New(loader, n)
}

func springLipstick() facet.Selection {
	return facet.Selection{PersonalColor: facet.SpringWarm, ProductType: facet.Lipstick}
}

func f64(v float64) *float64 { return &v }

// --- Tests ---

func TestRecommend_ReturnsTopThreeDescending(t *testing.T) {
	loader := &mockLoader{records: []product.Record{
		rawRecord("a", "10", "50", "10"),
		rawRecord("b", "20", "50", "20"),
		rawRecord("c", "30", "50", "30"),
		rawRecord("d", "40", "50", "40"),
		rawRecord("e", "50", "50", "50"),
	}}
	svc := newTestService(t, loader)

	res, err := svc.Recommend(context.Background(), springLipstick(), Query{Hue: f64(20), Saturation: f64(50)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !loader.called || loader.lastSel != springLipstick() {
		t.Errorf("loader not called with selection: %+v", loader.lastSel)
	}
	if len(res.Items) != TopK {
		t.Fatalf("expected %d items, got %d", TopK, len(res.Items))
	}
	for i := 1; i < len(res.Items); i++ {
		if res.Items[i].Score() > res.Items[i-1].Score() {
			t.Errorf("items not sorted at %d", i)
		}
	}
	top := res.Items[0].Product()
	if top.ID() != "b" {
		t.Errorf("expected exact hue match b first, got %s", top.ID())
	}
	if res.Total != 5 || res.Dropped != 0 {
		t.Errorf("Total=%d Dropped=%d", res.Total, res.Dropped)
	}
	if len(res.Plot.Points) != 5 {
		t.Errorf("plot must carry every filtered product, got %d", len(res.Plot.Points))
	}
	if math.Abs(res.Plot.Target.Hue-20.0/360) > 1e-12 || math.Abs(res.Plot.Target.Saturation-0.5) > 1e-12 {
		t.Errorf("plot target = %+v", res.Plot.Target)
	}
}

func TestRecommend_FewerThanK(t *testing.T) {
	loader := &mockLoader{records: []product.Record{
		rawRecord("a", "10", "40", "1"),
		rawRecord("b", "30", "60", "2"),
	}}
	svc := newTestService(t, loader)

	res, err := svc.Recommend(context.Background(), springLipstick(), Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(res.Items))
	}
}

func TestRecommend_DefaultsTargetToMidpoint(t *testing.T) {
	loader := &mockLoader{records: []product.Record{
		rawRecord("a", "36", "20", "1"),
		rawRecord("b", "108", "60", "2"),
	}}
	svc := newTestService(t, loader)

	res, err := svc.Recommend(context.Background(), springLipstick(), Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Plot.Target.Hue-0.2) > 1e-9 {
		t.Errorf("target hue = %v, want 0.2 (midpoint of 0.1..0.3)", res.Plot.Target.Hue)
	}
	if math.Abs(res.Plot.Target.Saturation-0.4) > 1e-9 {
		t.Errorf("target saturation = %v, want 0.4", res.Plot.Target.Saturation)
	}
}

func TestRecommend_EmptySet_NoMatch(t *testing.T) {
	loader := &mockLoader{}
	svc := newTestService(t, loader)

	res, err := svc.Recommend(context.Background(), springLipstick(), Query{Hue: f64(10), Saturation: f64(10)})
	if !errors.Is(err, domain.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if len(res.Items) != 0 {
		t.Errorf("expected no items, got %d", len(res.Items))
	}
}

func TestRecommend_AllMalformed_NoMatch(t *testing.T) {
	badHue := rawRecord("a", "red", "50", "1")
	noRating := rawRecord("b", "10", "50", "1")
	delete(noRating.Numerics, product.FieldRating)
	loader := &mockLoader{records: []product.Record{badHue, noRating}}
	svc := newTestService(t, loader)

	res, err := svc.Recommend(context.Background(), springLipstick(), Query{})
	if !errors.Is(err, domain.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if res.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", res.Dropped)
	}
}

func TestRecommend_SkipsMalformedRows(t *testing.T) {
	bad := rawRecord("bad", "10", "50", "1")
	delete(bad.Numerics, product.FieldRating)
	loader := &mockLoader{records: []product.Record{
		rawRecord("a", "10", "50", "1"),
		bad,
		rawRecord("c", "12", "50", "1"),
	}}
	svc := newTestService(t, loader)

	res, err := svc.Recommend(context.Background(), springLipstick(), Query{Hue: f64(10), Saturation: f64(50)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 || res.Dropped != 1 {
		t.Errorf("Total=%d Dropped=%d, want 2/1", res.Total, res.Dropped)
	}
	for i := range res.Items {
		p := res.Items[i].Product()
		if p.ID() == "bad" {
			t.Error("malformed record must not be ranked")
		}
	}
}

func TestRecommend_TargetOutsideUnitRange(t *testing.T) {
	loader := &mockLoader{records: []product.Record{rawRecord("a", "10", "50", "1")}}
	svc := newTestService(t, loader)

	_, err := svc.Recommend(context.Background(), springLipstick(), Query{Hue: f64(420), Saturation: f64(50)})
	if !errors.Is(err, domain.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

func TestRecommend_TargetOutsideObservedBounds(t *testing.T) {
	loader := &mockLoader{records: []product.Record{
		rawRecord("a", "10", "40", "1"),
		rawRecord("b", "30", "60", "1"),
	}}
	svc := newTestService(t, loader)

	_, err := svc.Recommend(context.Background(), springLipstick(), Query{Hue: f64(90), Saturation: f64(50)})
	var ite *domain.InvalidTargetError
	if !errors.As(err, &ite) {
		t.Fatalf("expected *InvalidTargetError, got %v", err)
	}
	if ite.Field != "hue" || math.Abs(ite.Min-10) > 1e-9 || math.Abs(ite.Max-30) > 1e-9 {
		t.Errorf("unexpected error detail: %+v", ite)
	}

	_, err = svc.Recommend(context.Background(), springLipstick(), Query{Hue: f64(20), Value: f64(10)})
	if !errors.Is(err, domain.ErrInvalidTarget) {
		t.Fatalf("value outside observed bounds: expected ErrInvalidTarget, got %v", err)
	}
}

func TestRecommend_TargetOnObservedEdgeAccepted(t *testing.T) {
	loader := &mockLoader{records: []product.Record{
		rawRecord("a", "10", "40", "1"),
		rawRecord("b", "30", "60", "1"),
	}}
	svc := newTestService(t, loader)

	b, _, err := svc.Bounds(context.Background(), springLipstick())
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	hue := b.Hue.Max * product.HueDegrees
	sat := b.Saturation.Min * product.PercentScale
	if _, err := svc.Recommend(context.Background(), springLipstick(), Query{Hue: &hue, Saturation: &sat}); err != nil {
		t.Fatalf("edge target rejected: %v", err)
	}
}

func TestRecommend_LoaderError(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := newTestService(t, &mockLoader{err: storeErr})

	_, err := svc.Recommend(context.Background(), springLipstick(), Query{})
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("store error must stay in chain, got %v", err)
	}
}

func TestBounds(t *testing.T) {
	loader := &mockLoader{records: []product.Record{
		rawRecord("a", "36", "20", "1"),
		rawRecord("b", "108", "60", "2"),
	}}
	svc := newTestService(t, loader)

	b, n, err := svc.Bounds(context.Background(), springLipstick())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	if math.Abs(b.Hue.Min-0.1) > 1e-9 || math.Abs(b.Hue.Max-0.3) > 1e-9 {
		t.Errorf("hue bounds = %+v", b.Hue)
	}
	if b.Value.Min != 0.7 || b.Value.Max != 0.7 {
		t.Errorf("value bounds = %+v", b.Value)
	}
}

func TestBounds_NoMatch(t *testing.T) {
	svc := newTestService(t, &mockLoader{})
	if _, _, err := svc.Bounds(context.Background(), springLipstick()); !errors.Is(err, domain.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestInstrumentedLoader(t *testing.T) {
	inner := &mockLoader{records: []product.Record{rawRecord("a", "1", "1", "1")}}
	l := NewInstrumentedLoader(inner, "file", zap.NewNop())

	recs, err := l.Load(context.Background(), springLipstick())
	if err != nil || len(recs) != 1 {
		t.Fatalf("Load = %d records, %v", len(recs), err)
	}

	failing := NewInstrumentedLoader(&mockLoader{err: errors.New("boom")}, "file", zap.NewNop())
	if _, err := failing.Load(context.Background(), springLipstick()); err == nil {
		t.Fatal("expected error")
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.ErrNoMatch, "no_match"},
		{domain.NewInvalidTarget("hue", 2, 0, 1), "invalid_target"},
		{errors.New("x"), "error"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
