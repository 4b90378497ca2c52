package physics

import (
	"math"

	"github.com/san-kum/metaballs/internal/dynamo"
)

// Intensity sums r²/d² over all sources at (x, y), measuring d on the torus,
// and caps the result at ceiling. A point sitting exactly on a source center
// yields ceiling instead of a division by zero.
func Intensity(x, y float64, sources []dynamo.Source, ceiling float64) float64 {
	sum := 0.0
	for _, s := range sources {
		dx, dy := WrappedDelta(s.X, s.Y, x, y)
		d2 := dx*dx + dy*dy
		if d2 == 0 {
			return ceiling
		}
		sum += s.R * s.R / d2
	}
	if sum > ceiling || math.IsNaN(sum) {
		return ceiling
	}
	return sum
}
