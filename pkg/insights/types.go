package insights

import "github.com/stanrw/enerwiseuk-sub000/pkg/geo"

// BuildingInsights is the producer payload for one building, in the shape of
// the Google Solar API buildingInsights resource.
type BuildingInsights struct {
	Name           string          `json:"name,omitempty"`
	Center         geo.LatLng      `json:"center"`
	BoundingBox    *geo.Bounds     `json:"boundingBox,omitempty"`
	ImageryDate    *Date           `json:"imageryDate,omitempty"`
	ImageryQuality string          `json:"imageryQuality,omitempty"`
	RegionCode     string          `json:"regionCode,omitempty"`
	PostalCode     string          `json:"postalCode,omitempty"`
	SolarPotential *SolarPotential `json:"solarPotential,omitempty"`
}

// Date is a calendar date as returned by the API.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// SolarPotential holds the roof faces and candidate panel positions.
type SolarPotential struct {
	MaxArrayPanelsCount        int               `json:"maxArrayPanelsCount,omitempty"`
	MaxArrayAreaMeters2        float64           `json:"maxArrayAreaMeters2,omitempty"`
	MaxSunshineHoursPerYear    float64           `json:"maxSunshineHoursPerYear,omitempty"`
	CarbonOffsetFactorKgPerMwh float64           `json:"carbonOffsetFactorKgPerMwh,omitempty"`
	PanelCapacityWatts         float64           `json:"panelCapacityWatts,omitempty"`
	PanelHeightMeters          float64           `json:"panelHeightMeters,omitempty"`
	PanelWidthMeters           float64           `json:"panelWidthMeters,omitempty"`
	PanelLifetimeYears         int               `json:"panelLifetimeYears,omitempty"`
	WholeRoofStats             *SizeAndSunshine  `json:"wholeRoofStats,omitempty"`
	RoofSegmentStats           []RoofSegmentStat `json:"roofSegmentStats"`
	SolarPanels                []SolarPanel      `json:"solarPanels"`
}

// SizeAndSunshine is the area and sunshine distribution of a roof region.
// SunshineQuantiles holds evenly spaced quantiles of annual sunshine, either
// as hours per year (Google) or as fractions in [0,1].
type SizeAndSunshine struct {
	AreaMeters2       float64   `json:"areaMeters2"`
	SunshineQuantiles []float64 `json:"sunshineQuantiles,omitempty"`
	GroundAreaMeters2 float64   `json:"groundAreaMeters2,omitempty"`
}

// RoofSegmentStat describes one planar roof face.
type RoofSegmentStat struct {
	PitchDegrees              float64         `json:"pitchDegrees"`
	AzimuthDegrees            float64         `json:"azimuthDegrees"`
	Stats                     SizeAndSunshine `json:"stats"`
	Center                    geo.LatLng      `json:"center"`
	BoundingBox               *geo.Bounds     `json:"boundingBox,omitempty"`
	PlaneHeightAtCenterMeters float64         `json:"planeHeightAtCenterMeters,omitempty"`

	// Obstructions is not part of the Google payload. A nil slice means the
	// producer has no obstruction data for this face; an empty, non-nil slice
	// means the face was surveyed and is clear.
	Obstructions []geo.Obstruction `json:"obstructions,omitempty"`
}

// SolarPanel is a candidate panel position suggested by the producer.
type SolarPanel struct {
	Center            geo.LatLng `json:"center"`
	Orientation       string     `json:"orientation,omitempty"`
	YearlyEnergyDcKwh float64    `json:"yearlyEnergyDcKwh"`
	SegmentIndex      int        `json:"segmentIndex"`
}

// Panel orientations as reported by the producer.
const (
	OrientationLandscape = "LANDSCAPE"
	OrientationPortrait  = "PORTRAIT"
)

// Segments returns the roof segment stats, or nil when there is no solar potential.
func (b *BuildingInsights) Segments() []RoofSegmentStat {
	if b == nil || b.SolarPotential == nil {
		return nil
	}
	return b.SolarPotential.RoofSegmentStats
}

// Panels returns the candidate panels, or nil when there is no solar potential.
func (b *BuildingInsights) Panels() []SolarPanel {
	if b == nil || b.SolarPotential == nil {
		return nil
	}
	return b.SolarPotential.SolarPanels
}
