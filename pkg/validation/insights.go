package validation

import (
	"fmt"

	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
)

// sunshineQuantileCount is the number of quantile buckets the shading model reads.
const sunshineQuantileCount = 6

// ValidateInsights checks a producer payload for data the engine would have
// to default or skip. Errors mark out-of-range values. A payload with no roof
// data only warns: it solves to an installation with no panels.
func ValidateInsights(bi *insights.BuildingInsights) *Report {
	r := NewReport()

	if bi == nil || bi.SolarPotential == nil {
		r.AddWarning(Result{
			Level:    LevelInsights,
			Message:  "insufficient data: building insights have no solarPotential block",
			Path:     "solarPotential",
			Expected: "roofSegmentStats and solarPanels",
		})
		return r
	}

	segs := bi.Segments()
	if len(segs) == 0 {
		r.AddWarning(Result{
			Level:   LevelInsights,
			Message: "insufficient data: no roof segments in building insights",
			Path:    "solarPotential.roofSegmentStats",
		})
	}
	if len(bi.Panels()) == 0 {
		r.AddWarning(Result{
			Level:   LevelInsights,
			Message: "no candidate panels in building insights",
			Path:    "solarPotential.solarPanels",
		})
	}

	for i, s := range segs {
		validateSegment(i, s, r)
	}
	validatePanelRefs(bi, r)

	return r
}

func validateSegment(i int, s insights.RoofSegmentStat, r *Report) {
	path := fmt.Sprintf("solarPotential.roofSegmentStats[%d]", i)

	if s.Stats.AreaMeters2 < 0 {
		r.AddError(Result{
			Level:       LevelInsights,
			Message:     fmt.Sprintf("%s: area must be non-negative", path),
			Path:        path + ".stats.areaMeters2",
			ActualValue: s.Stats.AreaMeters2,
			Expected:    ">= 0",
		})
	}
	if s.PitchDegrees < 0 || s.PitchDegrees >= 90 {
		r.AddError(Result{
			Level:       LevelInsights,
			Message:     fmt.Sprintf("%s: pitch %.1f is outside 0-90", path, s.PitchDegrees),
			Path:        path + ".pitchDegrees",
			ActualValue: s.PitchDegrees,
			Expected:    "0 <= pitch < 90",
		})
	}
	if s.AzimuthDegrees < 0 || s.AzimuthDegrees > 360 {
		r.AddWarning(Result{
			Level:       LevelInsights,
			Message:     fmt.Sprintf("%s: azimuth %.1f is outside 0-360", path, s.AzimuthDegrees),
			Path:        path + ".azimuthDegrees",
			ActualValue: s.AzimuthDegrees,
			Expected:    "0-360",
		})
	}
	if n := len(s.Stats.SunshineQuantiles); n < sunshineQuantileCount {
		r.AddWarning(Result{
			Level:       LevelInsights,
			Message:     fmt.Sprintf("%s: %d sunshine quantiles; missing buckets default to moderate sun", path, n),
			Path:        path + ".stats.sunshineQuantiles",
			ActualValue: n,
			Expected:    fmt.Sprintf(">= %d", sunshineQuantileCount),
		})
	}
	if s.BoundingBox == nil {
		r.AddInfo(Result{
			Level:   LevelInsights,
			Message: fmt.Sprintf("%s: no bounding box; edge setback is not checked", path),
			Path:    path + ".boundingBox",
		})
	}
	if s.Obstructions == nil {
		r.AddInfo(Result{
			Level:   LevelInsights,
			Message: fmt.Sprintf("%s: no obstruction data; panels are not checked against obstructions", path),
			Path:    path + ".obstructions",
		})
	}
}

func validatePanelRefs(bi *insights.BuildingInsights, r *Report) {
	n := len(bi.Segments())
	orphans := 0
	for _, p := range bi.Panels() {
		if p.SegmentIndex < 0 || p.SegmentIndex >= n {
			orphans++
		}
	}
	if orphans > 0 {
		r.AddWarning(Result{
			Level:       LevelInsights,
			Message:     fmt.Sprintf("%d candidate panels reference a roof segment that does not exist and will be ignored", orphans),
			Path:        "solarPotential.solarPanels",
			ActualValue: orphans,
			Expected:    fmt.Sprintf("segmentIndex in 0..%d", n-1),
		})
	}
}
