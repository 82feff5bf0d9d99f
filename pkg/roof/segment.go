// Package roof models planar roof faces and ranks them for installation.
package roof

import (
	"fmt"
	"math"

	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
)

// MinArea is the smallest roof face, in square meters, worth placing panels on.
const MinArea = 10.0

// Segment is one planar roof face. Segments are built once per solve and
// never modified.
type Segment struct {
	ID          string       `json:"id"`
	Index       int          `json:"index"`
	Polygon     []geo.LatLng `json:"polygon"`
	Center      geo.LatLng   `json:"center"`
	Area        float64      `json:"area"`
	Orientation float64      `json:"orientation"` // azimuth, 180 = south
	Tilt        float64      `json:"tilt"`
	PlaneHeight float64      `json:"planeHeight"`
	Bounds      *geo.Bounds  `json:"bounds,omitempty"`

	Obstructions       []geo.Obstruction `json:"obstructions,omitempty"`
	HasObstructionData bool              `json:"hasObstructionData"`

	// SunshineQuantiles are normalised to [0,1].
	SunshineQuantiles []float64 `json:"sunshineQuantiles,omitempty"`
}

// SegmentID returns the identifier for the segment at index.
func SegmentID(index int) string {
	return fmt.Sprintf("roof_section_%d", index)
}

// FromInsights builds one Segment per roof segment stat, in producer order.
func FromInsights(bi *insights.BuildingInsights) []Segment {
	stats := bi.Segments()
	if len(stats) == 0 {
		return nil
	}
	maxHours := 0.0
	if bi.SolarPotential != nil {
		maxHours = bi.SolarPotential.MaxSunshineHoursPerYear
	}

	segs := make([]Segment, len(stats))
	for i, st := range stats {
		segs[i] = newSegment(i, st, maxHours)
	}
	return segs
}

func newSegment(i int, st insights.RoofSegmentStat, maxHours float64) Segment {
	s := Segment{
		ID:                 SegmentID(i),
		Index:              i,
		Center:             st.Center,
		Area:               st.Stats.AreaMeters2,
		Orientation:        normalizeAzimuth(st.AzimuthDegrees),
		Tilt:               st.PitchDegrees,
		PlaneHeight:        st.PlaneHeightAtCenterMeters,
		Obstructions:       st.Obstructions,
		HasObstructionData: st.Obstructions != nil,
		SunshineQuantiles:  NormalizeQuantiles(st.Stats.SunshineQuantiles, maxHours),
	}

	if st.BoundingBox != nil && !st.BoundingBox.IsEmpty() {
		b := *st.BoundingBox
		s.Bounds = &b
		s.Polygon = b.Corners()
	} else {
		s.Polygon = groundSquare(st)
	}
	if s.Area <= 0 {
		s.Area = geo.PolygonArea(s.Polygon)
	}
	return s
}

// groundSquare approximates a face without a bounding box as a square of
// its ground area centred on the face.
func groundSquare(st insights.RoofSegmentStat) []geo.LatLng {
	ground := st.Stats.GroundAreaMeters2
	if ground <= 0 {
		ground = st.Stats.AreaMeters2 * math.Cos(st.PitchDegrees*math.Pi/180)
	}
	h := math.Sqrt(math.Max(ground, 0)) / 2

	proj := geo.NewProjection(st.Center)
	return []geo.LatLng{
		proj.ToLatLng(geo.Pt(-h, -h)),
		proj.ToLatLng(geo.Pt(h, -h)),
		proj.ToLatLng(geo.Pt(h, h)),
		proj.ToLatLng(geo.Pt(-h, h)),
	}
}

func normalizeAzimuth(az float64) float64 {
	az = math.Mod(az, 360)
	if az < 0 {
		az += 360
	}
	return az
}

// NormalizeQuantiles scales sunshine quantiles to [0,1]. Values given in
// hours are divided by maxHours, or by the largest quantile when maxHours
// is unknown. Fractions are returned unchanged.
func NormalizeQuantiles(q []float64, maxHours float64) []float64 {
	if len(q) == 0 {
		return nil
	}
	peak := 0.0
	for _, v := range q {
		peak = math.Max(peak, v)
	}
	scale := 1.0
	if peak > 1 {
		scale = peak
		if maxHours >= peak {
			scale = maxHours
		}
	}
	out := make([]float64, len(q))
	for i, v := range q {
		out[i] = clamp01(v / scale)
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
