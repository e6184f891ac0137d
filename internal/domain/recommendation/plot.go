package recommendation

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/kailas-cloud/huematch/internal/domain/product"
)

// Point is a single marker of the hue/saturation scatter plot.
type Point struct {
	Hue        float64
	Saturation float64
	RGB        string
	Label      string
}

// Plot is the visualization payload: one point per product, the highlighted
// target, and axis ranges fitted to the observed data.
type Plot struct {
	Points []Point
	Target Point
	XRange Range
	YRange Range
}

// TargetMarkerColor is the fixed color of the target marker.
const TargetMarkerColor = "red"

// BuildPlot assembles the plot payload for a filtered product set.
func BuildPlot(products []product.Product, targetHue, targetSat float64, bounds Bounds) Plot {
	points := make([]Point, len(products))
	for i := range products {
		p := &products[i]
		c := p.Color()
		points[i] = Point{
			Hue:        c.H,
			Saturation: c.S,
			RGB:        RGBString(c),
			Label:      fmt.Sprintf("Name: %s<br>Color: %s", p.Name(), p.ColorLabel()),
		}
	}
	return Plot{
		Points: points,
		Target: Point{
			Hue:        targetHue,
			Saturation: targetSat,
			RGB:        TargetMarkerColor,
			Label:      "Selected Color",
		},
		XRange: bounds.Hue,
		YRange: bounds.Saturation,
	}
}

// RGBString renders a unit-space HSV color as "rgb(r, g, b)". Channels are
// truncated to 0..255, not rounded.
func RGBString(c product.HSV) string {
	// Hue 1.0 is the same angle as 0; colorful expects [0, 360).
	h := math.Mod(c.H*product.HueDegrees, product.HueDegrees)
	rgb := colorful.Hsv(h, c.S, c.V)
	return fmt.Sprintf("rgb(%d, %d, %d)", channel(rgb.R), channel(rgb.G), channel(rgb.B))
}

func channel(v float64) int {
	return int(math.Max(0, math.Min(1, v)) * 255)
}
