package roof

import (
	"math"
	"sort"
)

// Suitability weights and pitch window.
const (
	orientationWeight = 0.4
	pitchWeight       = 0.3
	areaWeight        = 0.3

	optimalPitch = 35.0 // degrees
	minGoodPitch = 15.0 // degrees
	maxGoodPitch = 50.0 // degrees
	fullArea     = 50.0 // m², area score saturates here
)

// Suitability scores a roof face in [0,1] from how close it faces south,
// how close its pitch is to 35°, and how large it is.
func Suitability(s Segment) float64 {
	orientation := math.Max(0, (90-math.Abs(s.Orientation-180))/90) * orientationWeight

	pitch := 0.0
	if s.Tilt >= minGoodPitch && s.Tilt <= maxGoodPitch {
		pitch = math.Max(0, 1-math.Abs(s.Tilt-optimalPitch)/optimalPitch) * pitchWeight
	}

	area := math.Min(1, math.Max(0, s.Area)/fullArea) * areaWeight

	return clamp01(orientation + pitch + area)
}

// Rank returns the segments ordered by descending suitability. Equal scores
// keep their input order.
func Rank(segs []Segment) []Segment {
	type scored struct {
		seg   Segment
		score float64
	}
	tmp := make([]scored, len(segs))
	for i, s := range segs {
		tmp[i] = scored{seg: s, score: Suitability(s)}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		return tmp[i].score > tmp[j].score
	})

	ranked := make([]Segment, len(tmp))
	for i, t := range tmp {
		ranked[i] = t.seg
	}
	return ranked
}
