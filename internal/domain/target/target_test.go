package target

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/huematch/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	for _, c := range [][2]float64{{0, 0}, {1, 1}, {0.25, 0.75}} {
		tg, err := New(c[0], c[1])
		if err != nil {
			t.Fatalf("New(%v, %v): unexpected error: %v", c[0], c[1], err)
		}
		if tg.Hue() != c[0] || tg.Saturation() != c[1] {
			t.Errorf("got (%f, %f)", tg.Hue(), tg.Saturation())
		}
		if _, ok := tg.Value(); ok {
			t.Error("Value() should be unset")
		}
	}
}

func TestNew_OutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		hue, sat  float64
		wantField string
	}{
		{"hue negative", -0.01, 0.5, "hue"},
		{"hue above one", 1.2, 0.5, "hue"},
		{"saturation above one", 0.5, 1.5, "saturation"},
		{"saturation NaN", 0.5, math.NaN(), "saturation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.hue, tt.sat)
			if !errors.Is(err, domain.ErrInvalidTarget) {
				t.Fatalf("expected ErrInvalidTarget, got %v", err)
			}
			var ite *domain.InvalidTargetError
			if !errors.As(err, &ite) || ite.Field != tt.wantField {
				t.Errorf("expected field %q, got %v", tt.wantField, err)
			}
		})
	}
}

func TestFromSource(t *testing.T) {
	v := 40.0
	tg, err := FromSource(90, 60, &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(tg.Hue()-0.25) > 1e-12 || math.Abs(tg.Saturation()-0.6) > 1e-12 {
		t.Errorf("got (%f, %f), want (0.25, 0.6)", tg.Hue(), tg.Saturation())
	}
	val, ok := tg.Value()
	if !ok || math.Abs(val-0.4) > 1e-12 {
		t.Errorf("Value() = %f, %v", val, ok)
	}
	if math.Abs(tg.HueDegrees()-90) > 1e-9 || math.Abs(tg.SaturationPercent()-60) > 1e-9 {
		t.Errorf("source units round trip: %f, %f", tg.HueDegrees(), tg.SaturationPercent())
	}
}

func TestFromSource_Rejects(t *testing.T) {
	if _, err := FromSource(400, 50, nil); !errors.Is(err, domain.ErrInvalidTarget) {
		t.Errorf("hue 400: expected ErrInvalidTarget, got %v", err)
	}
	if _, err := FromSource(100, 101, nil); !errors.Is(err, domain.ErrInvalidTarget) {
		t.Errorf("sat 101: expected ErrInvalidTarget, got %v", err)
	}
	bad := 120.0
	if _, err := FromSource(100, 50, &bad); !errors.Is(err, domain.ErrInvalidTarget) {
		t.Errorf("value 120: expected ErrInvalidTarget, got %v", err)
	}
}

func TestWithValue(t *testing.T) {
	tg, _ := New(0.1, 0.2)
	withV, err := tg.WithValue(0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := withV.Value(); !ok || v != 0.3 {
		t.Errorf("Value() = %f, %v", v, ok)
	}
	if _, ok := tg.Value(); ok {
		t.Error("original target must stay unchanged")
	}
	if _, err := tg.WithValue(-1); err == nil {
		t.Error("expected error for negative value")
	}
}
