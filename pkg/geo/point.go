package geo

import "math"

// Epsilon is the tolerance for floating-point comparisons in meters.
const Epsilon = 1e-9

// Point2D is a point in a local east/north plane, in meters.
type Point2D struct {
	X float64 `json:"x"` // east
	Y float64 `json:"y"` // north
}

// Pt is a shorthand constructor for Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Y - q.Y}
}

// Scale returns p * s.
func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

// Length returns the Euclidean length of the vector.
func (p Point2D) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance from p to q.
func (p Point2D) Distance(q Point2D) float64 {
	return p.Sub(q).Length()
}

// Rotate returns p rotated counterclockwise by angle radians around the origin.
func (p Point2D) Rotate(angle float64) Point2D {
	c, s := math.Cos(angle), math.Sin(angle)
	return Point2D{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
	}
}

// RotateBearing returns p rotated clockwise by a compass bearing in degrees.
// Compass bearings grow clockwise from north, the opposite sense of Rotate.
func (p Point2D) RotateBearing(degrees float64) Point2D {
	return p.Rotate(-degrees * math.Pi / 180)
}
