package recommend

import (
	"math"

	"github.com/kailas-cloud/huematch/internal/domain/product"
	"github.com/kailas-cloud/huematch/internal/domain/recommendation"
	"github.com/kailas-cloud/huematch/internal/domain/target"
)

// Composite score weights. Fixed, not configurable. Together they total
// WeightTotal, so a perfect match with top popularity and quality scores 0.97.
const (
	WeightColor        = 0.70
	WeightPopularity   = 0.15
	WeightRating       = 0.03
	WeightPigmentation = 0.03
	WeightLongevity    = 0.03
	WeightSmoothness   = 0.03

	WeightTotal = WeightColor + WeightPopularity +
		WeightRating + WeightPigmentation + WeightLongevity + WeightSmoothness
)

// MaxDistance is the largest value Distance can return.
const MaxDistance = math.Sqrt2

// HueDistance is the circular hue difference rescaled to [0, 1]:
// 0 for equal hues, 1 for hues half a turn apart.
func HueDistance(h1, h2 float64) float64 {
	d := math.Abs(h1 - h2)
	return math.Min(d, 1-d) * 2
}

// Distance is the Euclidean distance between two (hue, saturation) points,
// with hue treated as circular. Range [0, sqrt(2)].
func Distance(h1, s1, h2, s2 float64) float64 {
	dh := HueDistance(h1, h2)
	ds := math.Abs(s1 - s2)
	return math.Sqrt(dh*dh + ds*ds)
}

// NormalizePopularity min-max scales raw popularity across the given set.
// Every value is 0 when all raw values are equal, including a single item.
func NormalizePopularity(products []product.Product) []float64 {
	out := make([]float64, len(products))
	if len(products) == 0 {
		return out
	}
	lo, hi := products[0].Popularity(), products[0].Popularity()
	for i := 1; i < len(products); i++ {
		v := products[i].Popularity()
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		return out
	}
	for i := range products {
		out[i] = (products[i].Popularity() - lo) / span
	}
	return out
}

// CompositeScore blends color proximity, popularity and quality.
// (1 - distance) is not clamped; distances above 1 give a negative color term.
func CompositeScore(distance, popularityNormalized float64, q product.Quality) float64 {
	return (1-distance)*WeightColor +
		popularityNormalized*WeightPopularity +
		q.Rating*WeightRating +
		q.Pigmentation*WeightPigmentation +
		q.Longevity*WeightLongevity +
		q.Smoothness*WeightSmoothness
}

// Score computes distance and composite score for every product against t.
// Output order matches input order.
func Score(products []product.Product, t target.Target) []recommendation.Scored {
	pop := NormalizePopularity(products)
	out := make([]recommendation.Scored, len(products))
	for i := range products {
		c := products[i].Color()
		d := Distance(t.Hue(), t.Saturation(), c.H, c.S)
		out[i] = recommendation.NewScored(products[i], d, pop[i], CompositeScore(d, pop[i], products[i].Quality()))
	}
	return out
}
