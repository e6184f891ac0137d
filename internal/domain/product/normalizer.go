package product

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/huematch/internal/domain"
)

// Source ranges of the raw color columns.
const (
	HueDegrees   = 360.0
	PercentScale = 100.0
)

// DefaultQualityScale is the native upper bound of the quality metrics.
const DefaultQualityScale = 5.0

// Normalizer converts raw catalog records into Products in canonical units.
type Normalizer struct {
	qualityScale float64
}

// NewNormalizer creates a normalizer. qualityScale is the upper bound of the
// native quality metric scale (e.g. 5 for a five-star rating).
func NewNormalizer(qualityScale float64) (*Normalizer, error) {
	if qualityScale <= 0 || math.IsInf(qualityScale, 0) || math.IsNaN(qualityScale) {
		return nil, fmt.Errorf("quality scale must be positive, got %v", qualityScale)
	}
	return &Normalizer{qualityScale: qualityScale}, nil
}

// QualityScale returns the native quality metric upper bound.
func (n *Normalizer) QualityScale() float64 { return n.qualityScale }

// Normalize maps a single record. Returns *domain.MalformedRecordError when a
// required numeric field is missing, non-numeric, or outside its source range.
func (n *Normalizer) Normalize(rec *Record) (Product, error) {
	id := rec.Key()
	if id == "" {
		return Product{}, domain.NewMalformedRecord("", "id", "missing identifier")
	}

	hue, err := parseField(rec, FieldHue, 0, HueDegrees)
	if err != nil {
		return Product{}, err
	}
	sat, err := parseField(rec, FieldSaturation, 0, PercentScale)
	if err != nil {
		return Product{}, err
	}
	val, err := parseField(rec, FieldValue, 0, PercentScale)
	if err != nil {
		return Product{}, err
	}
	pop, err := parseField(rec, FieldPopularity, 0, math.MaxFloat64)
	if err != nil {
		return Product{}, err
	}

	var q [4]float64
	for i, f := range []string{FieldRating, FieldPigmentation, FieldLongevity, FieldSmoothness} {
		raw, err := parseField(rec, f, 0, n.qualityScale)
		if err != nil {
			return Product{}, err
		}
		q[i] = raw / n.qualityScale
	}

	return Reconstruct(
		id, rec.Name, rec.ColorLabel, rec.PersonalColor, rec.ProductType, rec.Price,
		HSV{H: hue / HueDegrees, S: sat / PercentScale, V: val / PercentScale},
		pop,
		Quality{Rating: q[0], Pigmentation: q[1], Longevity: q[2], Smoothness: q[3]},
	), nil
}

// NormalizeAll maps a batch, dropping malformed rows. Load order is preserved
// among the kept products; dropped rows are returned as errors.
func (n *Normalizer) NormalizeAll(records []Record) ([]Product, []error) {
	products := make([]Product, 0, len(records))
	var dropped []error
	for i := range records {
		p, err := n.Normalize(&records[i])
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		products = append(products, p)
	}
	return products, dropped
}

func parseField(rec *Record, field string, lo, hi float64) (float64, error) {
	raw, ok := rec.Numerics[field]
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return 0, domain.NewMalformedRecord(rec.Key(), field, "missing")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewMalformedRecord(rec.Key(), field, fmt.Sprintf("not a number: %q", raw))
	}
	if v < lo || v > hi {
		return 0, domain.NewMalformedRecord(rec.Key(), field, fmt.Sprintf("%g outside [%g, %g]", v, lo, hi))
	}
	return v, nil
}
