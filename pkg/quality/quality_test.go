package quality

import (
	"math"
	"testing"

	"github.com/stanrw/enerwiseuk-sub000/pkg/layout"
	"github.com/stanrw/enerwiseuk-sub000/pkg/roof"
)

const tolerance = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func panel(orientation, annualShade, access float64) layout.PlacedPanel {
	return layout.PlacedPanel{
		Orientation: orientation,
		Shading:     roof.Shading{Annual: annualShade},
		Installation: layout.Factors{
			Accessibility: access,
			Structural:    true,
			Electrical:    true,
			Maintenance:   true,
		},
	}
}

func TestEvaluateNoPanels(t *testing.T) {
	s := Evaluate(nil)
	if s != Perfect() {
		t.Errorf("Evaluate(nil) = %+v, want all 1", s)
	}
	if s.OverallScore != 1 {
		t.Errorf("overall = %v, want 1", s.OverallScore)
	}
}

func TestEvaluateEfficiencyFloor(t *testing.T) {
	panels := []layout.PlacedPanel{panel(180, 1, 1), panel(180, 1, 1)}
	s := Evaluate(panels)
	if s.Efficiency < 0.7 {
		t.Errorf("efficiency = %v, must not drop below 0.7", s.Efficiency)
	}
	if !approxEqual(s.Efficiency, 0.7, tolerance) {
		t.Errorf("efficiency = %v, want floor 0.7", s.Efficiency)
	}
}

func TestEvaluateScores(t *testing.T) {
	panels := []layout.PlacedPanel{
		panel(180, 0.1, 1.0),
		panel(180, 0.2, 0.9),
		panel(90, 0.3, 0.8),
		panel(90, 0.2, 0.5),
	}
	panels[3].Installation.Structural = false
	panels[2].Installation.Maintenance = false

	s := Evaluate(panels)
	checks := []struct {
		name      string
		got, want float64
	}{
		{"uniformity", s.Uniformity, 0.5},
		{"efficiency", s.Efficiency, 0.8},
		{"practicality", s.Practicality, 0.8},
		{"maintenance", s.Maintenance, 0.75},
		{"compliance", s.Compliance, 0.75},
		{"overall", s.OverallScore, (0.5 + 0.8 + 0.8 + 0.75 + 0.75) / 5},
	}
	for _, c := range checks {
		if !approxEqual(c.got, c.want, tolerance) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestEvaluateUniformityFloor(t *testing.T) {
	s := Evaluate([]layout.PlacedPanel{panel(0, 0, 1), panel(270, 0, 1)})
	if s.Uniformity != 0 {
		t.Errorf("uniformity = %v, want 0 for a 270° spread", s.Uniformity)
	}
}

func TestEvaluateBounds(t *testing.T) {
	for _, shade := range []float64{0, 0.5, 1} {
		for _, orient := range []float64{0, 90, 180, 359} {
			s := Evaluate([]layout.PlacedPanel{panel(180, shade, 0.5), panel(orient, shade, 1)})
			for name, v := range map[string]float64{
				"overall": s.OverallScore, "uniformity": s.Uniformity, "efficiency": s.Efficiency,
				"practicality": s.Practicality, "maintenance": s.Maintenance, "compliance": s.Compliance,
			} {
				if v < 0 || v > 1 {
					t.Errorf("%s = %v outside [0,1] (shade %v, orientation %v)", name, v, shade, orient)
				}
			}
		}
	}
}
