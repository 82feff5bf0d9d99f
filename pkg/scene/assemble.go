package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
	"github.com/stanrw/enerwiseuk-sub000/pkg/layout"
	"github.com/stanrw/enerwiseuk-sub000/pkg/roof"
)

const (
	roofThickness     = 0.2  // meters
	panelThickness    = 0.04 // meters
	obstructionHeight = 1.0  // meters above the roof plane
)

// Assemble converts building insights and the installation designed from
// them into a scene graph. Every roof section is drawn, including those the
// installation skipped. generatedAt is stamped into the metadata; a zero
// time leaves it out so equal inputs give byte-identical graphs.
func Assemble(bi *insights.BuildingInsights, inst *installation.Installation, generatedAt time.Time) *Graph {
	g := NewGraph()
	g.Metadata.GeneratedAt = stamp(generatedAt)
	if bi == nil {
		return g
	}
	proj := geo.NewProjection(bi.Center)

	var panels []layout.PlacedPanel
	results := make(map[string]installation.SectionResult)
	if inst != nil {
		panels = inst.Panels
		for _, sec := range inst.Sections {
			results[sec.SegmentID] = sec
		}
	}

	bySection := make(map[string][]string)
	for _, p := range panels {
		bySection[p.RoofSectionID] = append(bySection[p.RoofSectionID], p.ID)
	}

	for _, seg := range roof.FromInsights(bi) {
		assembleSection(seg, results[seg.ID], bySection[seg.ID], proj, g)
		assembleObstructions(seg, proj, g)
	}
	assemblePanels(panels, proj, g)

	g.Metadata = Metadata{
		Building:    bi.Name,
		Origin:      bi.Center,
		GeneratedAt: stamp(generatedAt),
		Bounds:      computeBounds(g.Entities),
	}
	return g
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func assembleSection(seg roof.Segment, res installation.SectionResult, panelIDs []string, proj geo.Projection, g *Graph) {
	lo, hi := localExtent(seg.Polygon, proj)
	center := lo.Add(hi).Scale(0.5)

	meta := map[string]any{
		"azimuth": seg.Orientation,
		"pitch":   seg.Tilt,
		"area":    seg.Area,
	}
	if res.Status != "" {
		meta["status"] = string(res.Status)
		meta["suitability"] = res.Suitability
	}

	addEntity(g, Entity{
		ID:         seg.ID,
		Type:       EntityRoofSection,
		Position:   toVec(center, seg.PlaneHeight-roofThickness),
		Dimensions: Vec3{X: hi.X - lo.X, Y: roofThickness, Z: hi.Y - lo.Y},
		Rotation:   identityQuat(),
		Material:   "roof_tile",
		Section:    seg.ID,
		Layer:      LayerRoof,
		Metadata:   meta,
		Children:   panelIDs,
	})
}

func assembleObstructions(seg roof.Segment, proj geo.Projection, g *Graph) {
	for i, o := range seg.Obstructions {
		d := 2 * o.Radius
		addEntity(g, Entity{
			ID:         fmt.Sprintf("%s_obstruction_%d", seg.ID, i),
			Type:       EntityObstruction,
			Position:   toVec(proj.ToLocal(o.Center), seg.PlaneHeight),
			Dimensions: Vec3{X: d, Y: obstructionHeight, Z: d},
			Rotation:   identityQuat(),
			Material:   "masonry",
			Section:    seg.ID,
			Layer:      LayerRoof,
			Metadata:   map[string]any{"radius": o.Radius},
		})
	}
}

func assemblePanels(panels []layout.PlacedPanel, proj geo.Projection, g *Graph) {
	for _, p := range panels {
		c := geo.LatLng{Latitude: p.Position.Latitude, Longitude: p.Position.Longitude}
		width := proj.ToLocal(p.Corners[0]).Distance(proj.ToLocal(p.Corners[1]))
		height := proj.ToLocal(p.Corners[1]).Distance(proj.ToLocal(p.Corners[2]))

		addEntity(g, Entity{
			ID:         p.ID,
			Type:       EntityPanel,
			Position:   toVec(proj.ToLocal(c), p.Position.Elevation),
			Dimensions: Vec3{X: width, Y: panelThickness, Z: height},
			Rotation:   pitchedQuat(p.Orientation, p.Tilt),
			Material:   "monocrystalline",
			Section:    p.RoofSectionID,
			String:     p.StringID,
			Layer:      LayerArray,
			Metadata: map[string]any{
				"watts":           p.Watts,
				"yearlyEnergyKwh": p.YearlyEnergyDcKwh,
				"stringPosition":  p.StringPosition,
				"row":             p.RowNumber,
				"column":          p.ColumnNumber,
			},
		})
	}
}

// addEntity appends an entity and updates all group indices.
func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	id := e.ID

	if e.Section != "" {
		g.Groups.Sections[e.Section] = append(g.Groups.Sections[e.Section], id)
	}
	if e.String != "" {
		g.Groups.Strings[e.String] = append(g.Groups.Strings[e.String], id)
	}
	g.Groups.Layers[e.Layer] = append(g.Groups.Layers[e.Layer], id)
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], id)
}

// toVec maps a local east/north point and a height to scene coordinates.
func toVec(p geo.Point2D, height float64) Vec3 {
	return Vec3{X: p.X, Y: height, Z: -p.Y}
}

// localExtent returns the south-west and north-east corners of the polygon
// in local meters.
func localExtent(pts []geo.LatLng, proj geo.Projection) (geo.Point2D, geo.Point2D) {
	if len(pts) == 0 {
		return geo.Point2D{}, geo.Point2D{}
	}
	lo := geo.Pt(math.MaxFloat64, math.MaxFloat64)
	hi := geo.Pt(-math.MaxFloat64, -math.MaxFloat64)
	for _, ll := range pts {
		p := proj.ToLocal(ll)
		lo = geo.Pt(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y))
		hi = geo.Pt(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y))
	}
	return lo, hi
}

// computeBounds calculates the AABB of all entities.
func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	minV := Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxV := Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}

	for _, e := range entities {
		halfX := e.Dimensions.X / 2
		halfZ := e.Dimensions.Z / 2

		minV.X = math.Min(minV.X, e.Position.X-halfX)
		maxV.X = math.Max(maxV.X, e.Position.X+halfX)
		minV.Y = math.Min(minV.Y, e.Position.Y)
		maxV.Y = math.Max(maxV.Y, e.Position.Y+e.Dimensions.Y)
		minV.Z = math.Min(minV.Z, e.Position.Z-halfZ)
		maxV.Z = math.Max(maxV.Z, e.Position.Z+halfZ)
	}
	return BoundingBox{Min: minV, Max: maxV}
}

func identityQuat() [4]float64 {
	return [4]float64{0, 0, 0, 1}
}

func yawQuat(angle float64) [4]float64 {
	half := angle / 2
	return [4]float64{0, math.Sin(half), 0, math.Cos(half)}
}

func pitchQuat(angle float64) [4]float64 {
	half := angle / 2
	return [4]float64{math.Sin(half), 0, 0, math.Cos(half)}
}

// pitchedQuat orients a flat panel on a roof facing azimuth degrees with the
// given pitch. A south-facing panel is only pitched, lifting its north edge.
func pitchedQuat(azimuth, pitch float64) [4]float64 {
	const rad = math.Pi / 180
	return quatMul(yawQuat((180-azimuth)*rad), pitchQuat(pitch*rad))
}

// quatMul returns the Hamilton product a*b of [x, y, z, w] quaternions.
func quatMul(a, b [4]float64) [4]float64 {
	return [4]float64{
		a[3]*b[0] + a[0]*b[3] + a[1]*b[2] - a[2]*b[1],
		a[3]*b[1] - a[0]*b[2] + a[1]*b[3] + a[2]*b[0],
		a[3]*b[2] + a[0]*b[1] - a[1]*b[0] + a[2]*b[3],
		a[3]*b[3] - a[0]*b[0] - a[1]*b[1] - a[2]*b[2],
	}
}
