package ottava

import "errors"

// ErrScaleDomain means the scale was asked to map from a
// zero-width domain, which has no defined linear image.
var ErrScaleDomain = errors.New("degenerate scale domain")

// Scale builds a pure linear mapping from [dMin,dMax] to [rMin,rMax].
// The same factory serves both glyph uses:
// value -> bar length, and bar index -> perpendicular offset.
// A degenerate domain returns ErrScaleDomain instead of a
// function that silently produces NaN or Inf.
func Scale(dMin, dMax, rMin, rMax float64) (func(float64) float64, error) {
	if dMax == dMin {
		return nil, ErrScaleDomain
	}

	slope := (rMax - rMin) / (dMax - dMin)
	return func(v float64) float64 {
		return rMin + (v-dMin)*slope
	}, nil
}
