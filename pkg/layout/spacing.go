package layout

import (
	"fmt"
	"math"

	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
	"github.com/stanrw/enerwiseuk-sub000/pkg/roof"
	"github.com/stanrw/enerwiseuk-sub000/pkg/validation"
)

// checkSpacing reports pairs of panels whose footprints overlap, and pairs
// closer than the installer's row spacing. Candidate positions come from the
// producer, so neither is fixed here; both are surfaced for review.
func checkSpacing(seg roof.Segment, panels []PlacedPanel, opts Options, report *validation.Report) {
	if len(panels) < 2 {
		return
	}
	proj := geo.NewProjection(seg.Center)
	local := make([]geo.Point2D, len(panels))
	for i, p := range panels {
		ll := geo.LatLng{Latitude: p.Position.Latitude, Longitude: p.Position.Longitude}
		// Rotate into the slope frame: X across the slope, Y up it.
		local[i] = proj.ToLocal(ll).RotateBearing(-(seg.Orientation - 180))
	}

	w, h := opts.Panel.Width, opts.Panel.Height
	gapX, gapY := opts.Constraints.PanelIntraRowSpacing, opts.Constraints.PanelInterRowSpacing
	overlaps, tight := 0, 0
	for i := 0; i < len(local); i++ {
		for j := i + 1; j < len(local); j++ {
			dx := math.Abs(local[i].X - local[j].X)
			dy := math.Abs(local[i].Y - local[j].Y)
			switch {
			case dx < w-geo.Epsilon && dy < h-geo.Epsilon:
				overlaps++
			case dx < w+gapX-geo.Epsilon && dy < h+gapY-geo.Epsilon:
				tight++
			}
		}
	}

	if overlaps > 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%s: %d panel pairs overlap at %.2fm x %.2fm", seg.ID, overlaps, w, h),
			Path:        seg.ID,
			ActualValue: overlaps,
			Expected:    "0",
			Suggestions: []string{"Check the panel size against the producer's candidate grid"},
		})
	}
	if tight > 0 {
		report.AddInfo(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%s: %d panel pairs are closer than the %.2fm row / %.2fm clamp spacing", seg.ID, tight, gapY, gapX),
			Path:        seg.ID,
			ActualValue: tight,
		})
	}
}
