package installation

import (
	"fmt"
	"math"

	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/layout"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
	"github.com/stanrw/enerwiseuk-sub000/pkg/roof"
)

func sectionNotes(seg roof.Segment, sec layout.Section, panels []layout.PlacedPanel, c project.Constraints) []string {
	switch sec.Status {
	case layout.StatusPitchTooLow:
		return []string{fmt.Sprintf("Roof section %s skipped: pitch %.1f° is below the %.0f° minimum", seg.ID, seg.Tilt, c.MinRoofPitch)}
	case layout.StatusAreaTooSmall:
		return []string{fmt.Sprintf("Roof section %s skipped: area %.1fm² is below the %.0fm² minimum", seg.ID, seg.Area, roof.MinArea)}
	case layout.StatusNoCandidates:
		return []string{fmt.Sprintf("Roof section %s: no candidate panel positions from the solar survey", seg.ID)}
	}

	var notes []string
	if !seg.HasObstructionData {
		notes = append(notes, fmt.Sprintf("Roof section %s: no obstruction data, panels not checked against chimneys or vents", seg.ID))
	}
	if sec.Status == layout.StatusAllExcluded {
		return append(notes, fmt.Sprintf("Roof section %s: all %d candidate positions excluded (%d obstructed, %d inside the %.1fm edge clearance)",
			seg.ID, sec.Candidates, sec.Obstructed, sec.Setback, c.EdgeMargin()))
	}

	first, last := panels[0].StringID, panels[len(panels)-1].StringID
	wiring := "wired on " + first
	if first != last {
		wiring = fmt.Sprintf("wired on %s to %s", first, last)
	}
	notes = append(notes, fmt.Sprintf("Roof section %s: %d panels arranged in %d rows facing %s (%.0f°, %.0f° pitch), %s",
		seg.ID, len(panels), sec.Rows, compass(seg.Orientation), seg.Orientation, seg.Tilt, wiring))

	if sec.Excluded() > 0 {
		notes = append(notes, fmt.Sprintf("Roof section %s: %d candidate positions excluded (%d obstructed, %d inside the %.1fm edge clearance)",
			seg.ID, sec.Excluded(), sec.Obstructed, sec.Setback, c.EdgeMargin()))
	}
	return notes
}

func closingNotes(bi *insights.BuildingInsights, inst *Installation, c project.Constraints) []string {
	if bi == nil || bi.SolarPotential == nil {
		return []string{"No building insights available: installation has no panels"}
	}
	if len(inst.Panels) == 0 {
		return []string{"No suitable roof sections found: installation has no panels"}
	}

	notes := []string{fmt.Sprintf("%d panels in %d strings, %.1f kWp, %.0f kWh/year DC",
		inst.Summary.TotalPanels, inst.ElectricalDesign.TotalStrings, inst.Summary.SystemCapacityKw, inst.Summary.YearlyEnergyDcKwh)}

	if c.UniformLayout {
		faces := make(map[float64]bool)
		for _, p := range inst.Panels {
			faces[p.Orientation] = true
		}
		if len(faces) > 1 {
			notes = append(notes, fmt.Sprintf("Uniform layout requested but panels face %d different directions", len(faces)))
		}
	}
	return notes
}

var compassPoints = []string{"north", "north-east", "east", "south-east", "south", "south-west", "west", "north-west"}

// compass names the nearest of the eight principal compass points.
func compass(azimuth float64) string {
	i := int(math.Round(azimuth/45)) % len(compassPoints)
	if i < 0 {
		i += len(compassPoints)
	}
	return compassPoints[i]
}
