package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
	"github.com/stanrw/enerwiseuk-sub000/pkg/roof"
	"github.com/stanrw/enerwiseuk-sub000/pkg/validation"
)

// Status is the outcome of arranging one roof section.
type Status string

const (
	StatusPlaced       Status = "placed"
	StatusPitchTooLow  Status = "pitch_too_low"
	StatusAreaTooSmall Status = "area_too_small"
	StatusNoCandidates Status = "no_candidates"
	StatusAllExcluded  Status = "all_excluded"
)

// Options configures an arrangement.
type Options struct {
	Constraints project.Constraints
	Panel       project.PanelSpec

	// CapacityWatts is the panel rating the producer's energy estimates
	// assume. Zero leaves estimates unscaled.
	CapacityWatts float64

	// FirstPanel is the number given to the first panel placed, so IDs stay
	// unique across sections. Values below 1 start at 1.
	FirstPanel int
}

// Section is the arrangement of one roof section.
type Section struct {
	SegmentID  string        `json:"segmentId"`
	Status     Status        `json:"status"`
	Panels     []PlacedPanel `json:"panels"`
	Candidates int           `json:"candidates"`
	Obstructed int           `json:"obstructed"`
	Setback    int           `json:"setback"`
	Rows       int           `json:"rows"`
}

// Excluded returns the number of candidates rejected by placement checks.
func (s Section) Excluded() int {
	return s.Obstructed + s.Setback
}

// Arrange places the producer's candidate panels on one roof section.
// Sections too flat or too small are rejected outright. Remaining
// candidates are ordered south to north, then west to east, checked against
// obstructions and the edge margin, and numbered into rows.
func Arrange(seg roof.Segment, candidates []insights.SolarPanel, opts Options) (Section, *validation.Report) {
	report := validation.NewReport()
	c := opts.Constraints
	sec := Section{SegmentID: seg.ID}

	// 1. Rejection rules.
	if seg.Tilt < c.MinRoofPitch {
		sec.Status = StatusPitchTooLow
		return sec, report
	}
	if seg.Area < roof.MinArea {
		sec.Status = StatusAreaTooSmall
		return sec, report
	}

	// 2. Candidates on this section, in row-major order.
	var own []insights.SolarPanel
	for _, p := range candidates {
		if p.SegmentIndex == seg.Index {
			own = append(own, p)
		}
	}
	sec.Candidates = len(own)
	if len(own) == 0 {
		sec.Status = StatusNoCandidates
		return sec, report
	}
	sort.SliceStable(own, func(i, j int) bool {
		if own[i].Center.Latitude != own[j].Center.Latitude {
			return own[i].Center.Latitude < own[j].Center.Latitude
		}
		return own[i].Center.Longitude < own[j].Center.Longitude
	})

	// 3. Placement checks.
	var edge *geo.Bounds
	if seg.Bounds != nil {
		inner := seg.Bounds.Shrink(c.EdgeMargin())
		edge = &inner
	}
	kept := own[:0:0]
	for _, p := range own {
		switch {
		case seg.HasObstructionData && geo.IsObstructedWithBuffer(p.Center, seg.Obstructions, c.ObstructionBuffer):
			sec.Obstructed++
		case edge != nil && !edge.Contains(p.Center):
			sec.Setback++
		default:
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		sec.Status = StatusAllExcluded
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%s: all %d candidate panels excluded by obstruction or edge clearance", seg.ID, len(own)),
			Path:        seg.ID,
			ActualValue: len(own),
		})
		return sec, report
	}

	// 4. Emit panels.
	perRow := c.PanelsPerRow()
	shading := seg.Shading()
	size := opts.Panel.Size()
	energyScale := 1.0
	if opts.CapacityWatts > 0 {
		energyScale = opts.Panel.Watts / opts.CapacityWatts
	}

	first := max(opts.FirstPanel, 1)
	sec.Panels = make([]PlacedPanel, len(kept))
	for i, p := range kept {
		row, col := gridPosition(i, perRow)
		sec.Panels[i] = PlacedPanel{
			ID: PanelID(first + i),
			Position: geo.Position{
				Latitude:  p.Center.Latitude,
				Longitude: p.Center.Longitude,
				Elevation: seg.PlaneHeight,
			},
			Corners:           geo.PanelCorners(p.Center, seg.Orientation, size),
			RowNumber:         row,
			ColumnNumber:      col,
			RoofSectionID:     seg.ID,
			Orientation:       seg.Orientation,
			Tilt:              seg.Tilt,
			Watts:             opts.Panel.Watts,
			YearlyEnergyDcKwh: math.Round(p.YearlyEnergyDcKwh*energyScale*100) / 100,
			Shading:           shading,
			Installation: Factors{
				Accessibility: accessibility(i, len(kept), perRow, seg.Tilt),
				Structural:    seg.Tilt >= c.MinRoofPitch,
				Electrical:    true,
				Maintenance:   true,
			},
		}
	}
	sec.Rows = (len(kept) + perRow - 1) / perRow
	sec.Status = StatusPlaced

	checkSpacing(seg, sec.Panels, opts, report)

	return sec, report
}
