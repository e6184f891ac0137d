// Package recommendation holds the per-query outputs of the ranking pipeline:
// scored products, observed bounds and the plot payload.
package recommendation

import "github.com/kailas-cloud/huematch/internal/domain/product"

// Scored is a product decorated with its per-query derived values.
type Scored struct {
	product              product.Product
	distance             float64
	popularityNormalized float64
	score                float64
}

// NewScored creates a scored product.
func NewScored(p product.Product, distance, popularityNormalized, score float64) Scored {
	return Scored{
		product:              p,
		distance:             distance,
		popularityNormalized: popularityNormalized,
		score:                score,
	}
}

// Product returns the underlying catalog item.
func (s *Scored) Product() product.Product { return s.product }

// Distance returns the color distance to the target, in [0, sqrt(2)].
func (s *Scored) Distance() float64 { return s.distance }

// PopularityNormalized returns the min-max scaled popularity, in [0, 1].
func (s *Scored) PopularityNormalized() float64 { return s.popularityNormalized }

// Score returns the composite ranking score. Higher is better.
func (s *Scored) Score() float64 { return s.score }

// Range is a closed interval.
type Range struct {
	Min float64
	Max float64
}

// Mid returns the interval midpoint.
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// Contains reports whether v lies within the interval.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Bounds are the observed color ranges of a filtered product set, in unit space.
type Bounds struct {
	Hue        Range
	Saturation Range
	Value      Range
}

// ObservedBounds computes the min/max of each color component.
// The zero Bounds is returned for an empty set.
func ObservedBounds(products []product.Product) Bounds {
	if len(products) == 0 {
		return Bounds{}
	}
	first := products[0].Color()
	b := Bounds{
		Hue:        Range{Min: first.H, Max: first.H},
		Saturation: Range{Min: first.S, Max: first.S},
		Value:      Range{Min: first.V, Max: first.V},
	}
	for i := 1; i < len(products); i++ {
		c := products[i].Color()
		b.Hue = extend(b.Hue, c.H)
		b.Saturation = extend(b.Saturation, c.S)
		b.Value = extend(b.Value, c.V)
	}
	return b
}

func extend(r Range, v float64) Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// Result is the outcome of one recommendation query.
type Result struct {
	Items  []Scored
	Plot   Plot
	Bounds Bounds
	// Total is the size of the filtered set before top-K selection.
	Total int
	// Dropped counts catalog rows rejected by the normalizer.
	Dropped int
}
