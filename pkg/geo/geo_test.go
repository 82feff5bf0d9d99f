package geo

import (
	"math"
	"testing"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

var london = LatLng{Latitude: 51.5, Longitude: -0.1}

// metersNorth returns a coordinate d meters north of ll.
func metersNorth(ll LatLng, d float64) LatLng {
	return LatLng{Latitude: ll.Latitude + d/MetersPerDegree, Longitude: ll.Longitude}
}

// metersEast returns a coordinate d meters east of ll.
func metersEast(ll LatLng, d float64) LatLng {
	c := math.Cos(ll.Latitude * math.Pi / 180)
	return LatLng{Latitude: ll.Latitude, Longitude: ll.Longitude + d/(MetersPerDegree*c)}
}

// --- Point2D tests ---

func TestPointDistance(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(3, 4)
	if !approxEqual(a.Distance(b), 5.0, tolerance) {
		t.Errorf("expected distance 5.0, got %f", a.Distance(b))
	}
}

func TestPointRotateBearing(t *testing.T) {
	// North rotated 90 degrees clockwise points east.
	r := Pt(0, 1).RotateBearing(90)
	if !approxEqual(r.X, 1, tolerance) || !approxEqual(r.Y, 0, tolerance) {
		t.Errorf("expected (1,0), got (%f,%f)", r.X, r.Y)
	}
}

// --- Polygon tests ---

func TestPolygonAreaSquare(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	if !approxEqual(sq.Area(), 100, tolerance) {
		t.Errorf("expected area 100, got %f", sq.Area())
	}
}

func TestPolygonCentroid(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	c := sq.Centroid()
	if !approxEqual(c.X, 5, tolerance) || !approxEqual(c.Y, 5, tolerance) {
		t.Errorf("expected centroid (5,5), got (%f,%f)", c.X, c.Y)
	}
}

func TestPolygonContains(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	if !sq.Contains(Pt(5, 5)) {
		t.Error("expected (5,5) inside square")
	}
	if sq.Contains(Pt(15, 5)) {
		t.Error("expected (15,5) outside square")
	}
}

func TestPolygonAreaLatLng(t *testing.T) {
	d := 0.0001
	square := []LatLng{
		{51.5, -0.1},
		{51.5, -0.1 + d},
		{51.5 + d, -0.1 + d},
		{51.5 + d, -0.1},
	}
	want := d * d * MetersPerDegree * MetersPerDegree // 123.21 m²
	if got := PolygonArea(square); !approxEqual(got, want, tolerance) {
		t.Errorf("PolygonArea(square) = %f, want %f", got, want)
	}

	// Winding must not change the sign.
	reversed := []LatLng{square[3], square[2], square[1], square[0]}
	if got := PolygonArea(reversed); !approxEqual(got, want, tolerance) {
		t.Errorf("PolygonArea(clockwise) = %f, want %f", got, want)
	}

	triangle := square[:3]
	if got := PolygonArea(triangle); !approxEqual(got, want/2, tolerance) {
		t.Errorf("PolygonArea(triangle) = %f, want %f", got, want/2)
	}
}

func TestPolygonAreaDegenerate(t *testing.T) {
	if got := PolygonArea(nil); got != 0 {
		t.Errorf("PolygonArea(nil) = %f, want 0", got)
	}
	if got := PolygonArea([]LatLng{london, metersNorth(london, 5)}); got != 0 {
		t.Errorf("PolygonArea(2 vertices) = %f, want 0", got)
	}
}

// --- Projection & bounds tests ---

func TestProjectionRoundTrip(t *testing.T) {
	proj := NewProjection(london)
	ll := LatLng{Latitude: 51.50012, Longitude: -0.09985}
	back := proj.ToLatLng(proj.ToLocal(ll))
	if !approxEqual(back.Latitude, ll.Latitude, 1e-9) || !approxEqual(back.Longitude, ll.Longitude, 1e-9) {
		t.Errorf("round trip = %+v, want %+v", back, ll)
	}
}

func TestBoundsShrink(t *testing.T) {
	b := Bounds{SW: london, NE: metersEast(metersNorth(london, 10), 10)}

	inner := b.Shrink(1)
	if inner.IsEmpty() {
		t.Fatal("1 m inset of a 10 m box should not be empty")
	}
	if inner.Contains(metersEast(metersNorth(london, 0.5), 5)) {
		t.Error("point 0.5 m from the south edge should be outside the 1 m inset")
	}
	if !inner.Contains(metersEast(metersNorth(london, 5), 5)) {
		t.Error("box center should be inside the inset")
	}

	if !b.Shrink(6).IsEmpty() {
		t.Error("6 m inset of a 10 m box should be empty")
	}
}

// --- Panel corner tests ---

func TestPanelCornersSouthFacingAxisAligned(t *testing.T) {
	size := Size{Width: 0.99, Height: 1.65}
	corners := PanelCorners(london, 180, size)
	proj := NewProjection(london)

	bl := proj.ToLocal(corners[0])
	tr := proj.ToLocal(corners[2])
	if !approxEqual(bl.X, -0.495, tolerance) || !approxEqual(bl.Y, -0.825, tolerance) {
		t.Errorf("bottom-left = (%f,%f), want (-0.495,-0.825)", bl.X, bl.Y)
	}
	if !approxEqual(tr.X, 0.495, tolerance) || !approxEqual(tr.Y, 0.825, tolerance) {
		t.Errorf("top-right = (%f,%f), want (0.495,0.825)", tr.X, tr.Y)
	}
}

func TestPanelCornersRotateWithAzimuth(t *testing.T) {
	size := Size{Width: 0.99, Height: 1.65}
	corners := PanelCorners(london, 90, size)
	proj := NewProjection(london)

	maxX, maxY := 0.0, 0.0
	for _, c := range corners {
		p := proj.ToLocal(c)
		maxX = math.Max(maxX, math.Abs(p.X))
		maxY = math.Max(maxY, math.Abs(p.Y))
	}
	// East-facing: the long side runs east-west.
	if !approxEqual(maxX, 0.825, tolerance) || !approxEqual(maxY, 0.495, tolerance) {
		t.Errorf("extent = (%f,%f), want (0.825,0.495)", maxX, maxY)
	}
}

func TestPanelCornersDiagonalInvariant(t *testing.T) {
	size := Size{Width: 0.99, Height: 1.65}
	want := math.Hypot(size.Width, size.Height)
	proj := NewProjection(london)
	for _, az := range []float64{0, 45, 135, 180, 225, 300} {
		c := PanelCorners(london, az, size)
		d := proj.ToLocal(c[0]).Distance(proj.ToLocal(c[2]))
		if !approxEqual(d, want, tolerance) {
			t.Errorf("azimuth %.0f: diagonal = %f, want %f", az, d, want)
		}
	}
}

// --- Obstruction tests ---

func TestIsObstructed(t *testing.T) {
	chimney := []Obstruction{{Center: london, Radius: 1}}

	tests := []struct {
		name  string
		point LatLng
		want  bool
	}{
		{"center", london, true},
		{"half a meter north", metersNorth(london, 0.5), true},
		{"0.8 m east", metersEast(london, 0.8), true},
		{"two meters north", metersNorth(london, 2), false},
		{"1.5 m east", metersEast(london, 1.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsObstructed(tt.point, chimney); got != tt.want {
				t.Errorf("IsObstructed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsObstructedNoData(t *testing.T) {
	if IsObstructed(london, nil) {
		t.Error("no obstructions should never obstruct")
	}
}

func TestIsObstructedWithBuffer(t *testing.T) {
	chimney := []Obstruction{{Center: london, Radius: 1}}
	p := metersNorth(london, 1.2)
	if IsObstructedWithBuffer(p, chimney, 0) {
		t.Error("1.2 m should be clear without a buffer")
	}
	if !IsObstructedWithBuffer(p, chimney, 0.3) {
		t.Error("1.2 m should be blocked with a 0.3 m buffer")
	}
}

func TestApproximateCircle(t *testing.T) {
	ring := ApproximateCircle(london, 2, 64)
	proj := NewProjection(london)
	for i, ll := range ring {
		if d := proj.ToLocal(ll).Length(); !approxEqual(d, 2, tolerance) {
			t.Errorf("vertex %d at %f m, want 2", i, d)
		}
	}
}
