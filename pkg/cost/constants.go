package cost

// Unit figures for the linear projection. Money is in GBP unless a name
// says pence.
const (
	PanelShare      = 0.45 // fraction of install cost for modules
	InverterShare   = 0.15 // string inverter and isolators
	MountingShare   = 0.12 // rails, hooks, flashing
	ElectricalShare = 0.08 // DC cable, AC side, metering
	LabourShare     = 0.20 // installer time

	ScaffoldingPerSection = 450.0 // GBP per roof section worked on

	DcToAcDerate       = 0.85  // inverter, cable and soiling losses
	AnnualDegradation  = 0.005 // fraction of year-one output lost per year
	ProjectionYears    = 25
	GridCarbonKgPerKwh = 0.207 // UK grid average
	PencePerPound      = 100.0
)
