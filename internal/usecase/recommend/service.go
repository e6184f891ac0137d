package recommend

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/huematch/internal/domain"
	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/product"
	"github.com/kailas-cloud/huematch/internal/domain/recommendation"
	"github.com/kailas-cloud/huematch/internal/domain/target"
	logpkg "github.com/kailas-cloud/huematch/internal/logger"
	"github.com/kailas-cloud/huematch/internal/metrics"
)

// boundsTolerance absorbs float drift when a client echoes back bounds it
// received in source units.
const boundsTolerance = 1e-9

// Query is the user's target color in source units (hue degrees, saturation
// and value percent). A nil component defaults to the midpoint of the
// observed range of the filtered set.
type Query struct {
	Hue        *float64
	Saturation *float64
	Value      *float64
}

// Service runs the load -> normalize -> score -> rank pipeline per request.
type Service struct {
	catalog    CatalogLoader
	normalizer *product.Normalizer
}

// New creates a recommendation service.
func New(catalog CatalogLoader, normalizer *product.Normalizer) *Service {
	return &Service{catalog: catalog, normalizer: normalizer}
}

// Recommend ranks the products matching sel against the query target and
// returns the top TopK with the plot payload. Returns domain.ErrNoMatch when
// no valid product matches the facets; Dropped is still set in that case.
func (s *Service) Recommend(
	ctx context.Context, sel facet.Selection, q Query,
) (res recommendation.Result, err error) {
	defer func() { metrics.RecommendRequestsTotal.WithLabelValues(outcome(err)).Inc() }()

	products, dropped, err := s.load(ctx, sel)
	if err != nil {
		return recommendation.Result{Dropped: dropped}, err
	}

	bounds := recommendation.ObservedBounds(products)
	t, err := resolveTarget(q, bounds)
	if err != nil {
		return recommendation.Result{}, err
	}

	scored := Score(products, t)
	top := rank(scored, TopK)

	logpkg.FromContext(ctx).Debug("recommendation ranked",
		zap.String("personal_color", string(sel.PersonalColor)),
		zap.String("product_type", string(sel.ProductType)),
		zap.Int("candidates", len(products)),
		zap.Int("dropped", dropped),
		zap.Float64("target_hue_deg", t.HueDegrees()),
		zap.Float64("target_saturation_pct", t.SaturationPercent()),
	)

	return recommendation.Result{
		Items:   top,
		Plot:    recommendation.BuildPlot(products, t.Hue(), t.Saturation(), bounds),
		Bounds:  bounds,
		Total:   len(products),
		Dropped: dropped,
	}, nil
}

// Bounds returns the observed color ranges of the products matching sel.
// Returns domain.ErrNoMatch when no valid product matches the facets.
func (s *Service) Bounds(ctx context.Context, sel facet.Selection) (recommendation.Bounds, int, error) {
	products, _, err := s.load(ctx, sel)
	if err != nil {
		return recommendation.Bounds{}, 0, err
	}
	return recommendation.ObservedBounds(products), len(products), nil
}

// load fetches and normalizes the filtered set, dropping malformed rows.
func (s *Service) load(ctx context.Context, sel facet.Selection) ([]product.Product, int, error) {
	records, err := s.catalog.Load(ctx, sel)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	products, dropped := s.normalizer.NormalizeAll(records)
	if len(dropped) > 0 {
		log := logpkg.FromContext(ctx)
		for _, d := range dropped {
			field := "unknown"
			var mre *domain.MalformedRecordError
			if errors.As(d, &mre) {
				field = mre.Field
			}
			metrics.RecordsDroppedTotal.WithLabelValues(field).Inc()
			log.Warn("Dropping malformed catalog record", zap.Error(d))
		}
	}

	metrics.CandidateCount.Observe(float64(len(products)))

	if len(products) == 0 {
		return nil, len(dropped), fmt.Errorf("%w: %s / %s",
			domain.ErrNoMatch, sel.PersonalColor, sel.ProductType)
	}
	return products, len(dropped), nil
}

// resolveTarget fills missing components with range midpoints, converts to
// unit space and checks the result against the observed bounds.
func resolveTarget(q Query, b recommendation.Bounds) (target.Target, error) {
	hue := sourceOrMid(q.Hue, b.Hue, product.HueDegrees)
	sat := sourceOrMid(q.Saturation, b.Saturation, product.PercentScale)

	t, err := target.FromSource(hue, sat, q.Value)
	if err != nil {
		return target.Target{}, err
	}

	if err := checkObserved("hue", t.Hue(), b.Hue, product.HueDegrees); err != nil {
		return target.Target{}, err
	}
	if err := checkObserved("saturation", t.Saturation(), b.Saturation, product.PercentScale); err != nil {
		return target.Target{}, err
	}
	if v, ok := t.Value(); ok {
		if err := checkObserved("value", v, b.Value, product.PercentScale); err != nil {
			return target.Target{}, err
		}
	}
	return t, nil
}

func sourceOrMid(v *float64, r recommendation.Range, scale float64) float64 {
	if v != nil {
		return *v
	}
	return r.Mid() * scale
}

func checkObserved(field string, v float64, r recommendation.Range, scale float64) error {
	widened := recommendation.Range{Min: r.Min - boundsTolerance, Max: r.Max + boundsTolerance}
	if !widened.Contains(v) {
		return domain.NewInvalidTarget(field, v*scale, r.Min*scale, r.Max*scale)
	}
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrNoMatch):
		return metrics.OutcomeNoMatch
	case errors.Is(err, domain.ErrInvalidTarget):
		return metrics.OutcomeInvalidTarget
	default:
		return metrics.OutcomeError
	}
}
