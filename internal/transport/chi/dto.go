package chi

import (
	"github.com/kailas-cloud/huematch/internal/domain/product"
	"github.com/kailas-cloud/huematch/internal/domain/recommendation"
)

// ErrorCode is the machine-readable error kind in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeInvalidTarget      ErrorCode = "invalid_target"
	ErrorCodeUnknownFacet       ErrorCode = "unknown_facet"
	ErrorCodeCatalogUnavailable ErrorCode = "catalog_unavailable"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Min     *float64  `json:"min,omitempty"`
	Max     *float64  `json:"max,omitempty"`
}

// RecommendationItem is one ranked product. Quality metrics are in [0, 1].
type RecommendationItem struct {
	Rank          int     `json:"rank"`
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ColorLabel    string  `json:"color_label"`
	PersonalColor string  `json:"personal_color"`
	ProductType   string  `json:"product_type"`
	Price         string  `json:"price"`
	Score         float64 `json:"score"`
	Distance      float64 `json:"distance"`
	Popularity    float64 `json:"popularity"`
	Rating        float64 `json:"rating"`
	Pigmentation  float64 `json:"pigmentation"`
	Longevity     float64 `json:"longevity"`
	Smoothness    float64 `json:"smoothness"`
	RGBColor      string  `json:"rgb_color"`
}

// PlotPoint is a scatter marker in unit hue/saturation space.
type PlotPoint struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	RGBColor   string  `json:"rgb_color"`
	Label      string  `json:"label"`
}

// PlotPayload carries everything a client needs to draw the scatter.
type PlotPayload struct {
	Points []PlotPoint `json:"points"`
	Target PlotPoint   `json:"target"`
	XRange [2]float64  `json:"x_range"`
	YRange [2]float64  `json:"y_range"`
}

// RecommendationsResponse is the body of GET /api/v1/recommendations.
type RecommendationsResponse struct {
	Items   []RecommendationItem `json:"items"`
	Plot    *PlotPayload         `json:"plot,omitempty"`
	Total   int                  `json:"total"`
	Dropped int                  `json:"dropped"`
	Warning string               `json:"warning,omitempty"`
}

// BoundRange is an observed range in source units with the slider default.
type BoundRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// BoundsResponse is the body of GET /api/v1/bounds.
type BoundsResponse struct {
	Hue        *BoundRange `json:"hue,omitempty"`
	Saturation *BoundRange `json:"saturation,omitempty"`
	Value      *BoundRange `json:"value,omitempty"`
	Count      int         `json:"count"`
	Warning    string      `json:"warning,omitempty"`
}

// FacetOption is one selectable facet value.
type FacetOption struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	StoreLabel string `json:"store_label,omitempty"`
}

// FacetsResponse is the body of GET /api/v1/facets.
type FacetsResponse struct {
	PersonalColors []FacetOption `json:"personal_colors"`
	ProductTypes   []FacetOption `json:"product_types"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}

func itemFromScored(rank int, s *recommendation.Scored) RecommendationItem {
	p := s.Product()
	q := p.Quality()
	return RecommendationItem{
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
		RGBColor:      recommendation.RGBString(p.Color()),
	}
}

func plotToDTO(p *recommendation.Plot) *PlotPayload {
	points := make([]PlotPoint, len(p.Points))
	for i, pt := range p.Points {
		points[i] = pointToDTO(pt)
	}
	return &PlotPayload{
		Points: points,
		Target: pointToDTO(p.Target),
		XRange: [2]float64{p.XRange.Min, p.XRange.Max},
		YRange: [2]float64{p.YRange.Min, p.YRange.Max},
	}
}

func pointToDTO(p recommendation.Point) PlotPoint {
	return PlotPoint{Hue: p.Hue, Saturation: p.Saturation, RGBColor: p.RGB, Label: p.Label}
}

func boundRange(r recommendation.Range, scale float64) *BoundRange {
	return &BoundRange{Min: r.Min * scale, Max: r.Max * scale, Default: r.Mid() * scale}
}

func boundsToDTO(b recommendation.Bounds, count int) BoundsResponse {
	return BoundsResponse{
		Hue:        boundRange(b.Hue, product.HueDegrees),
		Saturation: boundRange(b.Saturation, product.PercentScale),
		Value:      boundRange(b.Value, product.PercentScale),
		Count:      count,
	}
}
