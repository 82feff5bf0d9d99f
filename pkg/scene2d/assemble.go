package scene2d

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
	"github.com/stanrw/enerwiseuk-sub000/pkg/layout"
	"github.com/stanrw/enerwiseuk-sub000/pkg/roof"
)

// Assemble2D converts building insights and the installation designed from
// them into a roof plan. Every roof section is drawn, including those the
// installation skipped; panels keep their rotated footprints. A zero
// generatedAt leaves the timestamp out of the metadata.
func Assemble2D(bi *insights.BuildingInsights, inst *installation.Installation, generatedAt time.Time) *Scene2D {
	sc := &Scene2D{
		Sections:     []Section2D{},
		Obstructions: []Obstruction2D{},
		Panels:       []Panel2D{},
		Strings:      []String2D{},
	}
	if !generatedAt.IsZero() {
		sc.Metadata.GeneratedAt = generatedAt.UTC().Format(time.RFC3339)
	}
	if bi == nil {
		return sc
	}
	proj := geo.NewProjection(bi.Center)

	results := make(map[string]installation.SectionResult)
	if inst != nil {
		for _, r := range inst.Sections {
			results[r.SegmentID] = r
		}
	}

	for _, seg := range roof.FromInsights(bi) {
		sc.Sections = append(sc.Sections, assembleSection(seg, results[seg.ID], proj))
		sc.Obstructions = append(sc.Obstructions, assembleObstructions(seg, proj)...)
	}
	if inst != nil {
		sc.Panels = assemblePanels(inst.Panels, proj)
		sc.Strings = assembleStrings(inst, sc.Panels)
	}

	sc.Metadata = assembleMetadata(bi, sc, sc.Metadata.GeneratedAt)
	return sc
}

func assembleMetadata(bi *insights.BuildingInsights, sc *Scene2D, generatedAt string) Metadata {
	m := Metadata{
		Building:     bi.Name,
		Origin:       [2]float64{bi.Center.Latitude, bi.Center.Longitude},
		SectionCount: len(sc.Sections),
		PanelCount:   len(sc.Panels),
		StringCount:  len(sc.Strings),
		Extent:       extent(sc),
		GeneratedAt:  generatedAt,
	}
	for _, s := range sc.Strings {
		m.CableLengthM += s.LengthM
	}
	return m
}

func assembleSection(seg roof.Segment, res installation.SectionResult, proj geo.Projection) Section2D {
	return Section2D{
		ID:       seg.ID,
		Boundary: latLngsToCoords(seg.Polygon, proj),
		Center:   pointToCoord(proj.ToLocal(seg.Center)),
		Azimuth:  seg.Orientation,
		Pitch:    seg.Tilt,
		AreaM2:   seg.Area,
		Status:   string(res.Status),
		Placed:   res.Placed,
	}
}

func assembleObstructions(seg roof.Segment, proj geo.Projection) []Obstruction2D {
	out := make([]Obstruction2D, 0, len(seg.Obstructions))
	for i, o := range seg.Obstructions {
		out = append(out, Obstruction2D{
			ID:        fmt.Sprintf("%s_obstruction_%d", seg.ID, i),
			SectionID: seg.ID,
			Center:    pointToCoord(proj.ToLocal(o.Center)),
			Radius:    o.Radius,
		})
	}
	return out
}

func assemblePanels(panels []layout.PlacedPanel, proj geo.Projection) []Panel2D {
	out := make([]Panel2D, 0, len(panels))
	for _, p := range panels {
		c := geo.LatLng{Latitude: p.Position.Latitude, Longitude: p.Position.Longitude}
		out = append(out, Panel2D{
			ID:             p.ID,
			SectionID:      p.RoofSectionID,
			StringID:       p.StringID,
			StringPosition: p.StringPosition,
			Row:            p.RowNumber,
			Column:         p.ColumnNumber,
			Center:         pointToCoord(proj.ToLocal(c)),
			Corners:        latLngsToCoords(p.Corners[:], proj),
		})
	}
	return out
}

// assembleStrings routes each string through its panels in string position
// order, in the order the electrical design lists the strings.
func assembleStrings(inst *installation.Installation, panels []Panel2D) []String2D {
	byString := make(map[string][]Panel2D)
	for _, p := range panels {
		if p.StringID != "" {
			byString[p.StringID] = append(byString[p.StringID], p)
		}
	}

	out := make([]String2D, 0, len(inst.ElectricalDesign.Strings))
	for _, s := range inst.ElectricalDesign.Strings {
		members := byString[s.ID]
		slices.SortFunc(members, func(a, b Panel2D) int {
			return cmp.Compare(a.StringPosition, b.StringPosition)
		})

		str := String2D{
			ID:      s.ID,
			Panels:  make([]string, 0, len(members)),
			Route:   make([][2]float64, 0, len(members)),
			Voltage: s.Voltage,
			Power:   s.Power,
		}
		for i, p := range members {
			str.Panels = append(str.Panels, p.ID)
			str.Route = append(str.Route, p.Center)
			if i > 0 {
				prev := members[i-1].Center
				str.LengthM += math.Hypot(p.Center[0]-prev[0], p.Center[1]-prev[1])
			}
		}
		out = append(out, str)
	}
	return out
}

// extent returns the bounding box of all section boundaries and panel corners.
func extent(sc *Scene2D) [2][2]float64 {
	lo := [2]float64{math.MaxFloat64, math.MaxFloat64}
	hi := [2]float64{-math.MaxFloat64, -math.MaxFloat64}
	grow := func(c [2]float64) {
		lo = [2]float64{math.Min(lo[0], c[0]), math.Min(lo[1], c[1])}
		hi = [2]float64{math.Max(hi[0], c[0]), math.Max(hi[1], c[1])}
	}
	for _, s := range sc.Sections {
		for _, c := range s.Boundary {
			grow(c)
		}
	}
	for _, p := range sc.Panels {
		for _, c := range p.Corners {
			grow(c)
		}
	}
	if lo[0] > hi[0] {
		return [2][2]float64{}
	}
	return [2][2]float64{lo, hi}
}

// latLngsToCoords projects coordinates to a [][2]float64 list in local meters.
func latLngsToCoords(pts []geo.LatLng, proj geo.Projection) [][2]float64 {
	coords := make([][2]float64, len(pts))
	for i, ll := range pts {
		coords[i] = pointToCoord(proj.ToLocal(ll))
	}
	return coords
}

func pointToCoord(p geo.Point2D) [2]float64 {
	return [2]float64{p.X, p.Y}
}
