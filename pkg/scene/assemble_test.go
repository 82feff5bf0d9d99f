package scene

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func loadExample(tb testing.TB) (*insights.BuildingInsights, *installation.Installation) {
	tb.Helper()
	p, err := project.LoadProject("../../examples/south-roof")
	if err != nil {
		tb.Fatalf("LoadProject failed: %v", err)
	}
	bi, err := insights.Load(p.Insights)
	if err != nil {
		tb.Fatalf("insights.Load failed: %v", err)
	}
	return bi, installation.Generate(bi, p.Constraints, p.Panel)
}

func assembleExample(tb testing.TB) *Graph {
	tb.Helper()
	bi, inst := loadExample(tb)
	return Assemble(bi, inst, time.Time{})
}

func findEntity(g *Graph, id string) (Entity, bool) {
	for _, e := range g.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

func TestAssembleEntityCounts(t *testing.T) {
	g := assembleExample(t)

	// 3 roof sections, 1 chimney, 12 panels.
	if len(g.Entities) != 16 {
		t.Errorf("expected 16 entities, got %d", len(g.Entities))
	}
	counts := map[EntityType]int{
		EntityRoofSection: 3,
		EntityObstruction: 1,
		EntityPanel:       12,
	}
	for et, want := range counts {
		if got := len(g.Groups.EntityTypes[et]); got != want {
			t.Errorf("%s count = %d, want %d", et, got, want)
		}
	}
	if got := len(g.Groups.Layers[LayerArray]); got != 12 {
		t.Errorf("array layer = %d entities, want 12", got)
	}
}

func TestAssembleStringGroups(t *testing.T) {
	g := assembleExample(t)
	if len(g.Groups.Strings) != 2 {
		t.Fatalf("expected 2 string groups, got %d", len(g.Groups.Strings))
	}
	if got := len(g.Groups.Strings["string_1"]); got != 10 {
		t.Errorf("string_1 has %d panels, want 10", got)
	}
	if got := len(g.Groups.Strings["string_2"]); got != 2 {
		t.Errorf("string_2 has %d panels, want 2", got)
	}
}

func TestAssembleSectionChildren(t *testing.T) {
	g := assembleExample(t)

	sec, ok := findEntity(g, "roof_section_0")
	if !ok {
		t.Fatal("roof_section_0 not in graph")
	}
	if len(sec.Children) != 12 {
		t.Errorf("roof_section_0 has %d children, want 12", len(sec.Children))
	}
	if sec.Metadata["status"] != "placed" {
		t.Errorf("roof_section_0 status = %v, want placed", sec.Metadata["status"])
	}
	// Section group holds the face, its chimney and its panels.
	if got := len(g.Groups.Sections["roof_section_0"]); got != 14 {
		t.Errorf("roof_section_0 group = %d entities, want 14", got)
	}

	north, ok := findEntity(g, "roof_section_1")
	if !ok {
		t.Fatal("roof_section_1 not in graph")
	}
	if len(north.Children) != 0 {
		t.Errorf("roof_section_1 has %d children, want 0", len(north.Children))
	}
}

func TestAssembleSectionGeometry(t *testing.T) {
	g := assembleExample(t)
	sec, _ := findEntity(g, "roof_section_0")

	if !approxEqual(sec.Dimensions.X, 12, 0.05) || !approxEqual(sec.Dimensions.Z, 10, 0.05) {
		t.Errorf("roof_section_0 footprint = %.2f x %.2f, want 12 x 10", sec.Dimensions.X, sec.Dimensions.Z)
	}
	// Top of the slab sits at the plane height.
	if !approxEqual(sec.Position.Y+sec.Dimensions.Y, 7.4, tolerance) {
		t.Errorf("roof_section_0 top = %.2f, want 7.4", sec.Position.Y+sec.Dimensions.Y)
	}
}

func TestAssemblePanelGeometry(t *testing.T) {
	bi, inst := loadExample(t)
	g := Assemble(bi, inst, time.Time{})

	for _, p := range inst.Panels {
		e, ok := findEntity(g, p.ID)
		if !ok {
			t.Fatalf("%s not in graph", p.ID)
		}
		if !approxEqual(e.Dimensions.X, 0.99, tolerance) || !approxEqual(e.Dimensions.Z, 1.65, tolerance) {
			t.Errorf("%s footprint = %.3f x %.3f, want 0.99 x 1.65", p.ID, e.Dimensions.X, e.Dimensions.Z)
		}
		if e.Position.Y != p.Position.Elevation {
			t.Errorf("%s height = %.2f, want %.2f", p.ID, e.Position.Y, p.Position.Elevation)
		}
		if e.String != p.StringID || e.Section != p.RoofSectionID {
			t.Errorf("%s string/section = %s/%s, want %s/%s", p.ID, e.String, e.Section, p.StringID, p.RoofSectionID)
		}
	}
}

func TestAssembleBoundsEnclose(t *testing.T) {
	g := assembleExample(t)
	b := g.Metadata.Bounds
	for _, e := range g.Entities {
		if e.Position.X-e.Dimensions.X/2 < b.Min.X-1e-9 || e.Position.X+e.Dimensions.X/2 > b.Max.X+1e-9 {
			t.Errorf("%s X extent outside bounds", e.ID)
		}
		if e.Position.Z-e.Dimensions.Z/2 < b.Min.Z-1e-9 || e.Position.Z+e.Dimensions.Z/2 > b.Max.Z+1e-9 {
			t.Errorf("%s Z extent outside bounds", e.ID)
		}
	}
	if g.Metadata.Building != "buildings/ChIJexampleSouthRoof" {
		t.Errorf("building = %q, want the insights name", g.Metadata.Building)
	}
}

func TestAssembleNil(t *testing.T) {
	g := Assemble(nil, nil, time.Time{})
	if len(g.Entities) != 0 {
		t.Errorf("expected empty graph, got %d entities", len(g.Entities))
	}
	if !ValidateGraph(g).Valid {
		t.Error("empty graph should validate")
	}
}

func TestAssembleWithoutInstallation(t *testing.T) {
	bi, _ := loadExample(t)
	g := Assemble(bi, nil, time.Time{})
	if got := len(g.Groups.EntityTypes[EntityPanel]); got != 0 {
		t.Errorf("expected no panels, got %d", got)
	}
	if got := len(g.Groups.EntityTypes[EntityRoofSection]); got != 3 {
		t.Errorf("expected 3 roof sections, got %d", got)
	}
}

func TestAssembleGeneratedAt(t *testing.T) {
	bi, inst := loadExample(t)
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("BST", 3600))

	first := Assemble(bi, inst, at)
	if first.Metadata.GeneratedAt != "2026-03-14T08:30:00Z" {
		t.Errorf("generated_at = %q, want 2026-03-14T08:30:00Z", first.Metadata.GeneratedAt)
	}
	if second := Assemble(bi, inst, at); !reflect.DeepEqual(first, second) {
		t.Error("equal inputs produced different graphs")
	}
	if got := Assemble(nil, nil, at).Metadata.GeneratedAt; got != first.Metadata.GeneratedAt {
		t.Errorf("empty graph generated_at = %q", got)
	}
}

func TestToVecNorthIsNegativeZ(t *testing.T) {
	v := toVec(geo.Pt(2, 3), 5)
	if v.X != 2 || v.Y != 5 || v.Z != -3 {
		t.Errorf("toVec = %+v, want {2 5 -3}", v)
	}
}

func TestPitchedQuat(t *testing.T) {
	if q := pitchedQuat(180, 0); !quatEqual(q, identityQuat()) {
		t.Errorf("flat south panel = %v, want identity", q)
	}

	// South-facing: pure rotation about the east axis.
	q := pitchedQuat(180, 90)
	h := math.Sqrt2 / 2
	if !quatEqual(q, [4]float64{h, 0, 0, h}) {
		t.Errorf("pitchedQuat(180, 90) = %v, want [%.3f 0 0 %.3f]", q, h, h)
	}

	// East-facing and flat: a quarter turn about the vertical.
	q = pitchedQuat(90, 0)
	if !quatEqual(q, [4]float64{0, h, 0, h}) {
		t.Errorf("pitchedQuat(90, 0) = %v, want [0 %.3f 0 %.3f]", q, h, h)
	}

	for _, az := range []float64{0, 45, 135, 200, 270} {
		q := pitchedQuat(az, 35)
		n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
		if !approxEqual(n, 1, 1e-9) {
			t.Errorf("pitchedQuat(%.0f, 35) norm = %f, want 1", az, n)
		}
	}
}

func quatEqual(a, b [4]float64) bool {
	for i := range a {
		if !approxEqual(a[i], b[i], 1e-9) {
			return false
		}
	}
	return true
}

func BenchmarkAssemble(b *testing.B) {
	bi, inst := loadExample(b)
	for b.Loop() {
		Assemble(bi, inst, time.Time{})
	}
}
