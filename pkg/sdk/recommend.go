package huematch

import (
	"context"
	"time"

	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/product"
	"github.com/kailas-cloud/huematch/internal/domain/recommendation"
	recommenduc "github.com/kailas-cloud/huematch/internal/usecase/recommend"
)

// Recommend returns the top products of personalColor / productType closest
// to the target. Facets accept display names, slugs or stored labels; an
// empty productType means all types. Returns ErrNoMatch when nothing matches;
// Result.Dropped still counts the malformed rows skipped on the way.
func (c *Client) Recommend(
	ctx context.Context, personalColor, productType string, target Target,
) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err) }()

	sel, err := facet.NewSelection(personalColor, productType)
	if err != nil {
		return Result{}, err
	}

	out, err := c.recommendSvc.Recommend(ctx, sel, recommenduc.Query{
		Hue:        target.Hue,
		Saturation: target.Saturation,
		Value:      target.Value,
	})
	if err != nil {
		return Result{Dropped: out.Dropped}, err
	}

	items := make([]Recommendation, len(out.Items))
	for i := range out.Items {
		items[i] = fromScored(i+1, &out.Items[i])
	}
	return Result{
		Items:   items,
		Bounds:  fromBounds(out.Bounds, out.Total),
		Total:   out.Total,
		Dropped: out.Dropped,
	}, nil
}

// Bounds reports the observed color ranges of personalColor / productType.
func (c *Client) Bounds(ctx context.Context, personalColor, productType string) (b Bounds, err error) {
	start := time.Now()
	defer func() { c.obs.observe("bounds", start, err) }()

	sel, err := facet.NewSelection(personalColor, productType)
	if err != nil {
		return Bounds{}, err
	}

	raw, count, err := c.recommendSvc.Bounds(ctx, sel)
	if err != nil {
		return Bounds{}, err
	}
	return fromBounds(raw, count), nil
}

// Facets lists the accepted facet values.
func (c *Client) Facets() Facets {
	var f Facets
	for _, p := range facet.PersonalColors() {
		f.PersonalColors = append(f.PersonalColors, string(p))
	}
	for _, t := range facet.ProductTypes() {
		f.ProductTypes = append(f.ProductTypes, string(t))
	}
	return f
}

func fromScored(rank int, s *recommendation.Scored) Recommendation {
	p := s.Product()
	q := p.Quality()
	return Recommendation{
		Rank:          rank,
		ID:            p.ID(),
		Name:          p.Name(),
		ColorLabel:    p.ColorLabel(),
		PersonalColor: p.PersonalColor(),
		ProductType:   p.ProductType(),
		Price:         p.Price(),
		Score:         s.Score(),
		Distance:      s.Distance(),
		Popularity:    p.Popularity(),
		Rating:        q.Rating,
		Pigmentation:  q.Pigmentation,
		Longevity:     q.Longevity,
		Smoothness:    q.Smoothness,
		RGB:           recommendation.RGBString(p.Color()),
	}
}

func fromRange(r recommendation.Range, scale float64) Range {
	return Range{Min: r.Min * scale, Max: r.Max * scale, Default: r.Mid() * scale}
}

func fromBounds(b recommendation.Bounds, count int) Bounds {
	return Bounds{
		Hue:        fromRange(b.Hue, product.HueDegrees),
		Saturation: fromRange(b.Saturation, product.PercentScale),
		Value:      fromRange(b.Value, product.PercentScale),
		Count:      count,
	}
}
