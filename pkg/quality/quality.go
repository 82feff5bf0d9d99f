// Package quality scores a finished panel layout.
package quality

import (
	"math"

	"github.com/stanrw/enerwiseuk-sub000/pkg/layout"
)

// minEfficiency is the floor on the efficiency score, however heavy the shade.
const minEfficiency = 0.7

// Scores are the five sub-scores of an installation and their mean, each in [0,1].
type Scores struct {
	OverallScore float64 `json:"overallScore"`
	Uniformity   float64 `json:"uniformity"`
	Efficiency   float64 `json:"efficiency"`
	Practicality float64 `json:"practicality"`
	Maintenance  float64 `json:"maintenance"`
	Compliance   float64 `json:"compliance"`
}

// Perfect is the score of an installation with no panels.
func Perfect() Scores {
	return Scores{1, 1, 1, 1, 1, 1}
}

// Evaluate scores panels:
//   - uniformity: penalises a spread of orientations, 180° spread scores 0
//   - efficiency: one minus mean annual shading, floored at 0.7
//   - practicality: mean accessibility
//   - maintenance: share of panels with maintenance access
//   - compliance: share of panels passing structural and electrical checks
//
// The overall score is the unweighted mean. No panels scores 1 throughout.
func Evaluate(panels []layout.PlacedPanel) Scores {
	if len(panels) == 0 {
		return Perfect()
	}

	n := float64(len(panels))
	minOrient, maxOrient := math.Inf(1), math.Inf(-1)
	var shading, access, maintained, compliant float64
	for _, p := range panels {
		minOrient = math.Min(minOrient, p.Orientation)
		maxOrient = math.Max(maxOrient, p.Orientation)
		shading += p.Shading.Annual
		access += p.Installation.Accessibility
		if p.Installation.Maintenance {
			maintained++
		}
		if p.Installation.Structural && p.Installation.Electrical {
			compliant++
		}
	}

	s := Scores{
		Uniformity:   math.Max(0, 1-(maxOrient-minOrient)/180),
		Efficiency:   math.Max(minEfficiency, 1-shading/n),
		Practicality: access / n,
		Maintenance:  maintained / n,
		Compliance:   compliant / n,
	}
	s.OverallScore = (s.Uniformity + s.Efficiency + s.Practicality + s.Maintenance + s.Compliance) / 5
	return s
}
