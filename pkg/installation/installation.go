// Package installation composes roof ranking, panel placement, stringing and
// quality scoring into a complete installation design.
package installation

import (
	"github.com/stanrw/enerwiseuk-sub000/pkg/electrical"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/layout"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
	"github.com/stanrw/enerwiseuk-sub000/pkg/quality"
	"github.com/stanrw/enerwiseuk-sub000/pkg/roof"
	"github.com/stanrw/enerwiseuk-sub000/pkg/validation"
)

// Installation is the designed system for one building. It is built once by
// Generate and not modified afterwards.
type Installation struct {
	Panels              []layout.PlacedPanel `json:"panels"`
	ElectricalDesign    electrical.Design    `json:"electricalDesign"`
	InstallationQuality quality.Scores       `json:"installationQuality"`
	InstallationNotes   []string             `json:"installationNotes"`
	Summary             Summary              `json:"summary"`
	Sections            []SectionResult      `json:"sections"`
	Validation          *validation.Report   `json:"validation"`
}

// Summary holds headline figures for display and persistence.
type Summary struct {
	TotalPanels       int     `json:"totalPanels"`
	SystemCapacityKw  float64 `json:"systemCapacityKw"`
	YearlyEnergyDcKwh float64 `json:"yearlyEnergyDcKwh"`
	SectionsUsed      int     `json:"sectionsUsed"`
	SectionsSkipped   int     `json:"sectionsSkipped"`
}

// SectionResult records what happened to one roof section, in the order
// sections were considered.
type SectionResult struct {
	SegmentID   string        `json:"segmentId"`
	Suitability float64       `json:"suitability"`
	Orientation float64       `json:"orientation"`
	Tilt        float64       `json:"tilt"`
	Area        float64       `json:"area"`
	Status      layout.Status `json:"status"`
	Candidates  int           `json:"candidates"`
	Placed      int           `json:"placed"`
	Excluded    int           `json:"excluded"`
}

// accumulator carries state from one roof section to the next.
type accumulator struct {
	panels    []layout.PlacedPanel
	notes     []string
	sections  []SectionResult
	cursor    electrical.Cursor
	nextPanel int
	report    *validation.Report
}

// Generate designs an installation from building insights. It never fails:
// unusable roof sections are skipped with a note, and a building with no
// usable roof yields an installation with no panels and perfect scores.
func Generate(bi *insights.BuildingInsights, c project.Constraints, p project.PanelSpec) *Installation {
	acc := accumulator{
		cursor:    electrical.NewCursor(),
		nextPanel: 1,
		report:    validation.NewReport(),
	}

	segs := roof.Rank(roof.FromInsights(bi))
	candidates := bi.Panels()
	capacity := 0.0
	if bi != nil && bi.SolarPotential != nil {
		capacity = bi.SolarPotential.PanelCapacityWatts
	}
	opts := layout.Options{Constraints: c, Panel: p, CapacityWatts: capacity}

	for _, seg := range segs {
		acc = placeSection(acc, seg, candidates, opts)
	}

	design := electrical.GenerateDesign(acc.panels, p)
	acc.report.Merge(electrical.ValidateDesign(acc.panels, design, c.StringSize()))

	inst := &Installation{
		Panels:              acc.panels,
		ElectricalDesign:    design,
		InstallationQuality: quality.Evaluate(acc.panels),
		InstallationNotes:   acc.notes,
		Sections:            acc.sections,
		Validation:          acc.report,
	}
	if inst.Panels == nil {
		inst.Panels = []layout.PlacedPanel{}
	}
	if inst.Sections == nil {
		inst.Sections = []SectionResult{}
	}
	inst.Summary = summarize(inst, p)
	inst.InstallationNotes = append(inst.InstallationNotes, closingNotes(bi, inst, c)...)
	return inst
}

// placeSection arranges one roof section, wires its panels into strings and
// returns the updated accumulator.
func placeSection(acc accumulator, seg roof.Segment, candidates []insights.SolarPanel, opts layout.Options) accumulator {
	opts.FirstPanel = acc.nextPanel
	sec, report := layout.Arrange(seg, candidates, opts)
	acc.report.Merge(report)

	panels, cursor := electrical.Assign(sec.Panels, acc.cursor, opts.Constraints.StringSize())

	acc.panels = append(acc.panels, panels...)
	acc.cursor = cursor
	acc.nextPanel += len(panels)
	acc.notes = append(acc.notes, sectionNotes(seg, sec, panels, opts.Constraints)...)
	acc.sections = append(acc.sections, SectionResult{
		SegmentID:   seg.ID,
		Suitability: roof.Suitability(seg),
		Orientation: seg.Orientation,
		Tilt:        seg.Tilt,
		Area:        seg.Area,
		Status:      sec.Status,
		Candidates:  sec.Candidates,
		Placed:      len(panels),
		Excluded:    sec.Excluded(),
	})
	return acc
}

func summarize(inst *Installation, p project.PanelSpec) Summary {
	s := Summary{
		TotalPanels:      len(inst.Panels),
		SystemCapacityKw: float64(len(inst.Panels)) * p.Watts / 1000,
	}
	for _, panel := range inst.Panels {
		s.YearlyEnergyDcKwh += panel.YearlyEnergyDcKwh
	}
	for _, sec := range inst.Sections {
		if sec.Status == layout.StatusPlaced {
			s.SectionsUsed++
		} else {
			s.SectionsSkipped++
		}
	}
	return s
}
