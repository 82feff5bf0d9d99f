package project

// DefaultPanelsPerRow is the row width used when MaxRowLength is unset.
const DefaultPanelsPerRow = 6

// UK installer defaults (MCS guidance and common fire service practice).
const (
	defaultRoofEdgeSetback      = 0.4  // m
	defaultFireServiceAccess    = 0.5  // m
	defaultPanelInterRowSpacing = 0.5  // m
	defaultPanelIntraRowSpacing = 0.02 // m, clamp gap
	defaultObstructionBuffer    = 0.3  // m
	defaultMaxPanelsPerString   = 12
	defaultPreferredStringSize  = 10
	defaultMaxRowLength         = 6
	defaultMinRoofPitch         = 15.0 // degrees
)

// Panel SKU defaults.
const (
	defaultPanelWidth   = 0.99 // m
	defaultPanelHeight  = 1.65 // m
	defaultPanelWatts   = 400  // W
	defaultPanelVoltage = 48   // V
	defaultPanelCurrent = 10   // A
)

// Tariff defaults (pence, GBP).
const (
	defaultImportPencePerKwh    = 24.5
	defaultExportPencePerKwh    = 15.0
	defaultSelfConsumptionRatio = 0.5
	defaultInstallCostPerKwp    = 1500.0
)

// DefaultConstraints returns the UK-standard installer constraints.
func DefaultConstraints() Constraints {
	return Constraints{
		RoofEdgeSetback:      defaultRoofEdgeSetback,
		FireServiceAccess:    defaultFireServiceAccess,
		PanelInterRowSpacing: defaultPanelInterRowSpacing,
		PanelIntraRowSpacing: defaultPanelIntraRowSpacing,
		ObstructionBuffer:    defaultObstructionBuffer,
		MaxPanelsPerString:   defaultMaxPanelsPerString,
		PreferredStringSize:  defaultPreferredStringSize,
		MaxRowLength:         defaultMaxRowLength,
		MinRoofPitch:         defaultMinRoofPitch,
		AccessRequirements:   true,
		MaintenanceAccess:    true,
		UniformLayout:        true,
	}
}

// DefaultPanel returns the standard 400 W panel.
func DefaultPanel() PanelSpec {
	return PanelSpec{
		Model:   "generic-400",
		Width:   defaultPanelWidth,
		Height:  defaultPanelHeight,
		Watts:   defaultPanelWatts,
		Voltage: defaultPanelVoltage,
		Current: defaultPanelCurrent,
	}
}

// DefaultTariff returns typical UK tariff figures.
func DefaultTariff() Tariff {
	return Tariff{
		ImportPencePerKwh:    defaultImportPencePerKwh,
		ExportPencePerKwh:    defaultExportPencePerKwh,
		SelfConsumptionRatio: defaultSelfConsumptionRatio,
		InstallCostPerKwp:    defaultInstallCostPerKwp,
	}
}

// Default returns a project with every section at its default.
func Default() *Project {
	return &Project{
		Constraints: DefaultConstraints(),
		Panel:       DefaultPanel(),
		Tariff:      DefaultTariff(),
	}
}
