package geo

import "math"

// Obstruction is a circular exclusion zone on a roof (chimney, vent, skylight).
type Obstruction struct {
	Center LatLng  `json:"center"`
	Radius float64 `json:"radiusMeters"`
}

// IsObstructed reports whether point falls within any obstruction's radius.
// Distances use the flat-earth projection around each obstruction center.
func IsObstructed(point LatLng, obstructions []Obstruction) bool {
	return IsObstructedWithBuffer(point, obstructions, 0)
}

// IsObstructedWithBuffer is IsObstructed with every radius grown by buffer meters.
func IsObstructedWithBuffer(point LatLng, obstructions []Obstruction, buffer float64) bool {
	for _, o := range obstructions {
		d := NewProjection(o.Center).ToLocal(point).Length()
		if d <= o.Radius+buffer {
			return true
		}
	}
	return false
}

// ApproximateCircle returns a lat/lng ring approximating a circle of radius
// meters around center. Vertices are in CCW order.
func ApproximateCircle(center LatLng, radius float64, segments int) []LatLng {
	if segments < 3 {
		segments = 3
	}
	proj := NewProjection(center)
	pts := make([]LatLng, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = proj.ToLatLng(Point2D{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return pts
}
