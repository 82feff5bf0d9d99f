package project

import "github.com/stanrw/enerwiseuk-sub000/pkg/geo"

// Project is the top-level description of one installation job.
type Project struct {
	Name        string      `yaml:"name" json:"name"`
	Address     string      `yaml:"address" json:"address,omitempty"`
	Location    geo.LatLng  `yaml:"location" json:"location"`
	Insights    string      `yaml:"insights" json:"insights,omitempty"`
	Constraints Constraints `yaml:"constraints" json:"constraints"`
	Panel       PanelSpec   `yaml:"panel" json:"panel"`
	Tariff      Tariff      `yaml:"tariff" json:"tariff"`
}

// Constraints are installer rules applied to every roof section. Distances
// are in meters and angles in degrees.
type Constraints struct {
	RoofEdgeSetback      float64 `yaml:"roof_edge_setback" json:"roofEdgeSetback" validate:"gte=0,lte=5"`
	FireServiceAccess    float64 `yaml:"fire_service_access" json:"fireServiceAccess" validate:"gte=0,lte=5"`
	PanelInterRowSpacing float64 `yaml:"panel_inter_row_spacing" json:"panelInterRowSpacing" validate:"gte=0,lte=5"`
	PanelIntraRowSpacing float64 `yaml:"panel_intra_row_spacing" json:"panelIntraRowSpacing" validate:"gte=0,lte=1"`
	ObstructionBuffer    float64 `yaml:"obstruction_buffer" json:"obstructionBuffer" validate:"gte=0,lte=5"`
	MaxPanelsPerString   int     `yaml:"max_panels_per_string" json:"maxPanelsPerString" validate:"gte=1,lte=50"`
	PreferredStringSize  int     `yaml:"preferred_string_size" json:"preferredStringSize" validate:"gte=1,lte=50"`
	MaxRowLength         int     `yaml:"max_row_length" json:"maxRowLength" validate:"gte=0,lte=100"`
	MinRoofPitch         float64 `yaml:"min_roof_pitch" json:"minRoofPitch" validate:"gte=0,lt=90"`
	AccessRequirements   bool    `yaml:"access_requirements" json:"accessRequirements"`
	MaintenanceAccess    bool    `yaml:"maintenance_access" json:"maintenanceAccess"`
	UniformLayout        bool    `yaml:"uniform_layout" json:"uniformLayout"`
}

// PanelSpec is a single panel SKU. Height runs up the roof slope.
type PanelSpec struct {
	Model   string  `yaml:"model" json:"model,omitempty"`
	Width   float64 `yaml:"width" json:"width" validate:"gt=0,lte=3"`
	Height  float64 `yaml:"height" json:"height" validate:"gt=0,lte=3"`
	Watts   float64 `yaml:"watts" json:"watts" validate:"gt=0,lte=1000"`
	Voltage float64 `yaml:"voltage" json:"voltage" validate:"gt=0,lte=100"`
	Current float64 `yaml:"current" json:"current" validate:"gt=0,lte=30"`
}

// Tariff holds the figures for a simple linear savings projection.
type Tariff struct {
	ImportPencePerKwh    float64 `yaml:"import_pence_per_kwh" json:"importPencePerKwh" validate:"gte=0"`
	ExportPencePerKwh    float64 `yaml:"export_pence_per_kwh" json:"exportPencePerKwh" validate:"gte=0"`
	SelfConsumptionRatio float64 `yaml:"self_consumption_ratio" json:"selfConsumptionRatio" validate:"gte=0,lte=1"`
	InstallCostPerKwp    float64 `yaml:"install_cost_per_kwp" json:"installCostPerKwp" validate:"gte=0"`

	// Optional financing. A zero term means the system is paid for upfront.
	LoanInterestRate float64 `yaml:"loan_interest_rate" json:"loanInterestRate" validate:"gte=0,lte=1"`
	LoanTermYears    int     `yaml:"loan_term_years" json:"loanTermYears" validate:"gte=0,lte=40"`
}

// Size returns the panel footprint.
func (p PanelSpec) Size() geo.Size {
	return geo.Size{Width: p.Width, Height: p.Height}
}

// StringSize returns the number of panels each string is filled to: the
// preferred size, capped by the maximum.
func (c Constraints) StringSize() int {
	n := c.PreferredStringSize
	if c.MaxPanelsPerString > 0 && n > c.MaxPanelsPerString {
		n = c.MaxPanelsPerString
	}
	if n < 1 {
		n = 1
	}
	return n
}

// PanelsPerRow returns the row width used for row/column numbering.
func (c Constraints) PanelsPerRow() int {
	if c.MaxRowLength > 0 {
		return c.MaxRowLength
	}
	return DefaultPanelsPerRow
}

// EdgeMargin returns the clearance kept from the roof edge, widened to the
// fire service access path when access is required.
func (c Constraints) EdgeMargin() float64 {
	if c.AccessRequirements && c.FireServiceAccess > c.RoofEdgeSetback {
		return c.FireServiceAccess
	}
	return c.RoofEdgeSetback
}
