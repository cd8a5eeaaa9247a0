// Package simplify maps web-map zoom levels to polygon simplification tolerances.
package simplify

// DefaultZoom is assumed when a caller supplies no zoom level.
const DefaultZoom = 12

// Tolerance bands in degrees. Far views can afford coarse geometry; near views
// get essentially full detail.
const (
	farTolerance    = 0.001
	mediumTolerance = 0.0001
	nearTolerance   = 0.000001
)

// ToleranceForZoom returns the simplification tolerance for a zoom level.
// The function is a step function, non-increasing in zoom: out-of-range zoom
// values clamp to the nearest band instead of failing.
func ToleranceForZoom(zoom int) float64 {
	switch {
	case zoom <= 9:
		return farTolerance
	case zoom <= 13:
		return mediumTolerance
	default:
		return nearTolerance
	}
}
