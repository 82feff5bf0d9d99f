package geo

import "math"

// MetersPerDegree is the flat-earth conversion used throughout the engine.
// It is only valid for roof-scale geometry (a few hundred meters at most).
const MetersPerDegree = 111000.0

// LatLng is a WGS84 coordinate in decimal degrees.
type LatLng struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Position is a LatLng with an elevation in meters.
// Elevation is a placeholder until a height source is wired in.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// Projection maps LatLng to a local metric plane anchored at Origin.
// Longitude is scaled by cos(latitude of the origin).
type Projection struct {
	Origin LatLng
	cosLat float64
}

// NewProjection creates a local projection around origin.
func NewProjection(origin LatLng) Projection {
	return Projection{
		Origin: origin,
		cosLat: math.Cos(origin.Latitude * math.Pi / 180),
	}
}

// ToLocal converts a coordinate to meters east/north of the origin.
func (p Projection) ToLocal(ll LatLng) Point2D {
	return Point2D{
		X: (ll.Longitude - p.Origin.Longitude) * MetersPerDegree * p.cosLat,
		Y: (ll.Latitude - p.Origin.Latitude) * MetersPerDegree,
	}
}

// ToLatLng converts a local offset in meters back to a coordinate.
func (p Projection) ToLatLng(pt Point2D) LatLng {
	lng := p.Origin.Longitude
	if p.cosLat > 1e-12 {
		lng += pt.X / (MetersPerDegree * p.cosLat)
	}
	return LatLng{
		Latitude:  p.Origin.Latitude + pt.Y/MetersPerDegree,
		Longitude: lng,
	}
}

// Bounds is a lat/lng axis-aligned box.
type Bounds struct {
	SW LatLng `json:"sw"`
	NE LatLng `json:"ne"`
}

// IsEmpty reports whether the box has no extent.
func (b Bounds) IsEmpty() bool {
	return b.NE.Latitude <= b.SW.Latitude || b.NE.Longitude <= b.SW.Longitude
}

// Center returns the midpoint of the box.
func (b Bounds) Center() LatLng {
	return LatLng{
		Latitude:  (b.SW.Latitude + b.NE.Latitude) / 2,
		Longitude: (b.SW.Longitude + b.NE.Longitude) / 2,
	}
}

// Corners returns the four corners counterclockwise from the south-west.
func (b Bounds) Corners() []LatLng {
	return []LatLng{
		b.SW,
		{Latitude: b.SW.Latitude, Longitude: b.NE.Longitude},
		b.NE,
		{Latitude: b.NE.Latitude, Longitude: b.SW.Longitude},
	}
}

// Shrink returns the box inset by meters on every side. The result may be
// empty when the inset exceeds half the box size.
func (b Bounds) Shrink(meters float64) Bounds {
	dLat := meters / MetersPerDegree
	dLng := 0.0
	if c := math.Cos(b.Center().Latitude * math.Pi / 180); c > 1e-12 {
		dLng = meters / (MetersPerDegree * c)
	}
	return Bounds{
		SW: LatLng{Latitude: b.SW.Latitude + dLat, Longitude: b.SW.Longitude + dLng},
		NE: LatLng{Latitude: b.NE.Latitude - dLat, Longitude: b.NE.Longitude - dLng},
	}
}

// Contains reports whether ll lies inside the box, edges included.
func (b Bounds) Contains(ll LatLng) bool {
	return ll.Latitude >= b.SW.Latitude && ll.Latitude <= b.NE.Latitude &&
		ll.Longitude >= b.SW.Longitude && ll.Longitude <= b.NE.Longitude
}
