package scene2d

import (
	"math"
	"testing"
	"time"

	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
)

const tolerance = 0.01

func assembleTestScene2D(t *testing.T) *Scene2D {
	t.Helper()
	p, err := project.LoadProject("../../examples/south-roof")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	bi, err := insights.Load(p.Insights)
	if err != nil {
		t.Fatalf("insights.Load failed: %v", err)
	}
	return Assemble2D(bi, installation.Generate(bi, p.Constraints, p.Panel), time.Time{})
}

func TestAssemble2DMetadata(t *testing.T) {
	sc := assembleTestScene2D(t)

	if sc.Metadata.Building != "buildings/ChIJexampleSouthRoof" {
		t.Errorf("building = %q", sc.Metadata.Building)
	}
	if sc.Metadata.SectionCount != 3 {
		t.Errorf("expected section_count 3, got %d", sc.Metadata.SectionCount)
	}
	if sc.Metadata.PanelCount != 12 {
		t.Errorf("expected panel_count 12, got %d", sc.Metadata.PanelCount)
	}
	if sc.Metadata.StringCount != 2 {
		t.Errorf("expected string_count 2, got %d", sc.Metadata.StringCount)
	}
	if sc.Metadata.GeneratedAt != "" {
		t.Errorf("generated_at = %q, want empty for a zero time", sc.Metadata.GeneratedAt)
	}
}

func TestAssemble2DGeneratedAt(t *testing.T) {
	p, err := project.LoadProject("../../examples/south-roof")
	if err != nil {
		t.Fatal(err)
	}
	bi, err := insights.Load(p.Insights)
	if err != nil {
		t.Fatal(err)
	}
	inst := installation.Generate(bi, p.Constraints, p.Panel)
	at := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)

	a := Assemble2D(bi, inst, at)
	b := Assemble2D(bi, inst, at)
	if a.Metadata != b.Metadata {
		t.Errorf("metadata differs between calls: %+v vs %+v", a.Metadata, b.Metadata)
	}
	if a.Metadata.GeneratedAt != "2026-03-14T08:30:00Z" {
		t.Errorf("generated_at = %q", a.Metadata.GeneratedAt)
	}
}

func TestAssemble2DSections(t *testing.T) {
	sc := assembleTestScene2D(t)

	placed := 0
	for _, s := range sc.Sections {
		if len(s.Boundary) < 3 {
			t.Errorf("section %s has %d boundary points", s.ID, len(s.Boundary))
		}
		placed += s.Placed
	}
	if placed != 12 {
		t.Errorf("sections report %d placed panels, want 12", placed)
	}
	if sc.Sections[0].ID != "roof_section_0" || sc.Sections[0].Status != "placed" {
		t.Errorf("first section = %s (%s), want roof_section_0 (placed)", sc.Sections[0].ID, sc.Sections[0].Status)
	}
}

func TestAssemble2DObstructions(t *testing.T) {
	sc := assembleTestScene2D(t)
	if len(sc.Obstructions) != 1 {
		t.Fatalf("expected 1 obstruction, got %d", len(sc.Obstructions))
	}
	if sc.Obstructions[0].Radius <= 0 {
		t.Errorf("obstruction radius = %f", sc.Obstructions[0].Radius)
	}
}

func TestAssemble2DPanelFootprints(t *testing.T) {
	sc := assembleTestScene2D(t)
	want := math.Hypot(0.99, 1.65)

	for _, p := range sc.Panels {
		if len(p.Corners) != 4 {
			t.Fatalf("panel %s has %d corners", p.ID, len(p.Corners))
		}
		d := math.Hypot(p.Corners[2][0]-p.Corners[0][0], p.Corners[2][1]-p.Corners[0][1])
		if math.Abs(d-want) > tolerance {
			t.Errorf("panel %s diagonal = %.3f, want %.3f", p.ID, d, want)
		}
		if p.StringID == "" {
			t.Errorf("panel %s has no string", p.ID)
		}
	}
}

func TestAssemble2DStringRoutes(t *testing.T) {
	sc := assembleTestScene2D(t)

	sizes := []int{10, 2}
	total := 0.0
	for i, s := range sc.Strings {
		if len(s.Panels) != sizes[i] || len(s.Route) != sizes[i] {
			t.Errorf("string %s: %d panels, %d route points, want %d", s.ID, len(s.Panels), len(s.Route), sizes[i])
		}
		// Panels do not overlap, so neighbours are at least a panel width apart.
		if minLen := float64(sizes[i]-1) * 0.99; s.LengthM < minLen-tolerance {
			t.Errorf("string %s length %.2f m, want >= %.2f", s.ID, s.LengthM, minLen)
		}
		if s.Voltage != float64(sizes[i])*48 {
			t.Errorf("string %s voltage = %.0f, want %d", s.ID, s.Voltage, sizes[i]*48)
		}
		total += s.LengthM
	}
	if math.Abs(sc.Metadata.CableLengthM-total) > tolerance {
		t.Errorf("cable_length_m = %.2f, want %.2f", sc.Metadata.CableLengthM, total)
	}
}

func TestAssemble2DExtentCoversPanels(t *testing.T) {
	sc := assembleTestScene2D(t)
	lo, hi := sc.Metadata.Extent[0], sc.Metadata.Extent[1]

	for _, p := range sc.Panels {
		for _, c := range p.Corners {
			if c[0] < lo[0]-tolerance || c[0] > hi[0]+tolerance || c[1] < lo[1]-tolerance || c[1] > hi[1]+tolerance {
				t.Errorf("panel %s corner (%.2f, %.2f) outside extent", p.ID, c[0], c[1])
			}
		}
	}
}

func TestAssemble2DNilInputs(t *testing.T) {
	sc := Assemble2D(nil, nil, time.Time{})
	if sc.Sections == nil || sc.Panels == nil || sc.Strings == nil || sc.Obstructions == nil {
		t.Error("empty plan should have non-nil slices")
	}
	if sc.Metadata.Extent != [2][2]float64{} {
		t.Errorf("empty extent = %v", sc.Metadata.Extent)
	}

	p, err := project.LoadProject("../../examples/south-roof")
	if err != nil {
		t.Fatal(err)
	}
	bi, err := insights.Load(p.Insights)
	if err != nil {
		t.Fatal(err)
	}
	sc = Assemble2D(bi, nil, time.Time{})
	if len(sc.Sections) != 3 || len(sc.Panels) != 0 {
		t.Errorf("roof without installation: %d sections, %d panels", len(sc.Sections), len(sc.Panels))
	}
}
