package electrical

import (
	"fmt"

	"github.com/stanrw/enerwiseuk-sub000/pkg/layout"
	"github.com/stanrw/enerwiseuk-sub000/pkg/validation"
)

// ValidateDesign checks that strings partition the panels: every panel sits
// in exactly one string, no string exceeds maxSize, and positions run 1..N.
func ValidateDesign(panels []layout.PlacedPanel, d Design, maxSize int) *validation.Report {
	report := validation.NewReport()

	seen := make(map[string]string, len(panels))
	for _, s := range d.Strings {
		if maxSize > 0 && len(s.PanelIDs) > maxSize {
			report.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("%s has %d panels, more than the %d allowed", s.ID, len(s.PanelIDs), maxSize),
				Path:        s.ID,
				ActualValue: len(s.PanelIDs),
				Expected:    fmt.Sprintf("<= %d", maxSize),
			})
		}
		for _, id := range s.PanelIDs {
			if other, ok := seen[id]; ok {
				report.AddError(validation.Result{
					Level:        validation.LevelSpatial,
					Message:      fmt.Sprintf("%s is wired into both %s and %s", id, other, s.ID),
					Path:         id,
					ConflictWith: other,
				})
				continue
			}
			seen[id] = s.ID
		}
	}

	positions := make(map[string][]bool)
	for _, s := range d.Strings {
		positions[s.ID] = make([]bool, len(s.PanelIDs)+1)
	}
	for _, p := range panels {
		if _, ok := seen[p.ID]; !ok {
			report.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("%s is not wired into any string", p.ID),
				Path:    p.ID,
			})
			continue
		}
		slots := positions[p.StringID]
		if p.StringPosition < 1 || p.StringPosition >= len(slots) || slots[p.StringPosition] {
			report.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("%s has position %d in %s, outside a contiguous 1..%d run", p.ID, p.StringPosition, p.StringID, len(slots)-1),
				Path:        p.ID,
				ActualValue: p.StringPosition,
			})
			continue
		}
		slots[p.StringPosition] = true
	}

	return report
}
