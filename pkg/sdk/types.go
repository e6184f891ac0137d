package huematch

// Target is the color to rank against, in source units: hue in degrees
// [0, 360], saturation and value in percent [0, 100]. A nil component
// defaults to the midpoint of the observed range.
type Target struct {
	Hue        *float64
	Saturation *float64
	Value      *float64
}

// Float returns a pointer to v, for filling Target.
func Float(v float64) *float64 { return &v }

// Recommendation is one ranked product. Quality metrics are in [0, 1].
type Recommendation struct {
	Rank          int
	ID            string
	Name          string
	ColorLabel    string
	PersonalColor string
	ProductType   string
	Price         string
	Score         float64
	Distance      float64
	Popularity    float64
	Rating        float64
	Pigmentation  float64
	Longevity     float64
	Smoothness    float64
	RGB           string // "rgb(r, g, b)"
}

// Range is an observed interval in source units with its midpoint.
type Range struct {
	Min     float64
	Max     float64
	Default float64
}

// Bounds are the observed color ranges of a filtered product set.
type Bounds struct {
	Hue        Range
	Saturation Range
	Value      Range
	Count      int
}

// Result is the answer to one recommendation query.
type Result struct {
	Items   []Recommendation
	Bounds  Bounds
	Total   int // filtered products before the top-K cut
	Dropped int // catalog rows skipped as malformed
}

// Facets lists the accepted facet values by display name.
type Facets struct {
	PersonalColors []string
	ProductTypes   []string
}
