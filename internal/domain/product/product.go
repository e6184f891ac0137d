// Package product holds the catalog item model and the normalizer that
// turns raw catalog rows into it.
package product

// HSV is a color with every component in [0, 1].
type HSV struct {
	H float64
	S float64
	V float64
}

// Quality holds the four quality sub-metrics, each scaled to [0, 1].
type Quality struct {
	Rating       float64
	Pigmentation float64
	Longevity    float64
	Smoothness   float64
}

// Product is a normalized catalog item. Immutable once built.
type Product struct {
	id            string
	name          string
	colorLabel    string
	personalColor string
	productType   string
	price         string
	color         HSV
	popularity    float64
	quality       Quality
}

// Reconstruct builds a Product from already-normalized values.
func Reconstruct(
	id, name, colorLabel, personalColor, productType, price string,
	color HSV, popularity float64, quality Quality,
) Product {
	return Product{
		id:            id,
		name:          name,
		colorLabel:    colorLabel,
		personalColor: personalColor,
		productType:   productType,
		price:         price,
		color:         color,
		popularity:    popularity,
		quality:       quality,
	}
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Name returns the display name.
func (p *Product) Name() string { return p.name }

// ColorLabel returns the shade name as sold.
func (p *Product) ColorLabel() string { return p.colorLabel }

// PersonalColor returns the stored personal color facet.
func (p *Product) PersonalColor() string { return p.personalColor }

// ProductType returns the stored product type facet.
func (p *Product) ProductType() string { return p.productType }

// Price returns the price as listed in the catalog.
func (p *Product) Price() string { return p.price }

// Color returns the normalized HSV color.
func (p *Product) Color() HSV { return p.color }

// Popularity returns the raw endorsement count.
func (p *Product) Popularity() float64 { return p.popularity }

// Quality returns the normalized quality sub-metrics.
func (p *Product) Quality() Quality { return p.quality }
