// Package target holds the user-chosen color a query ranks against.
package target

import (
	"github.com/kailas-cloud/huematch/internal/domain"
	"github.com/kailas-cloud/huematch/internal/domain/product"
)

// Target is a (hue, saturation, value) point in unit space. Only hue and
// saturation take part in distance; value is carried for bounds checking.
type Target struct {
	hue        float64
	saturation float64
	value      float64
	hasValue   bool
}

// New validates a target already in unit space.
func New(hue, saturation float64) (Target, error) {
	if err := checkUnit("hue", hue); err != nil {
		return Target{}, err
	}
	if err := checkUnit("saturation", saturation); err != nil {
		return Target{}, err
	}
	return Target{hue: hue, saturation: saturation}, nil
}

// FromSource converts user input in source units (hue degrees, saturation
// and value percent) and validates the result. value may be nil.
func FromSource(hueDeg, satPct float64, valPct *float64) (Target, error) {
	t, err := New(hueDeg/product.HueDegrees, satPct/product.PercentScale)
	if err != nil {
		return Target{}, err
	}
	if valPct != nil {
		return t.WithValue(*valPct / product.PercentScale)
	}
	return t, nil
}

// WithValue returns a copy carrying a value component.
func (t Target) WithValue(v float64) (Target, error) {
	if err := checkUnit("value", v); err != nil {
		return Target{}, err
	}
	t.value, t.hasValue = v, true
	return t, nil
}

// Hue returns the hue in [0, 1].
func (t Target) Hue() float64 { return t.hue }

// Saturation returns the saturation in [0, 1].
func (t Target) Saturation() float64 { return t.saturation }

// Value returns the value component and whether it was supplied.
func (t Target) Value() (float64, bool) { return t.value, t.hasValue }

// HueDegrees returns the hue in source units.
func (t Target) HueDegrees() float64 { return t.hue * product.HueDegrees }

// SaturationPercent returns the saturation in source units.
func (t Target) SaturationPercent() float64 { return t.saturation * product.PercentScale }

func checkUnit(field string, v float64) error {
	// NaN fails both comparisons, so test the accepted range positively.
	if !(v >= 0 && v <= 1) {
		return domain.NewInvalidTarget(field, v, 0, 1)
	}
	return nil
}
