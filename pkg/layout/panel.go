package layout

import (
	"fmt"

	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
	"github.com/stanrw/enerwiseuk-sub000/pkg/roof"
)

// PlacedPanel is a panel fixed to a roof section. StringID and
// StringPosition are empty until the panel is assigned to a string.
type PlacedPanel struct {
	ID                string        `json:"id"`
	Position          geo.Position  `json:"position"`
	Corners           [4]geo.LatLng `json:"corners"`
	StringID          string        `json:"stringId"`
	StringPosition    int           `json:"stringPosition"`
	RowNumber         int           `json:"rowNumber"`
	ColumnNumber      int           `json:"columnNumber"`
	RoofSectionID     string        `json:"roofSectionId"`
	Orientation       float64       `json:"orientation"`
	Tilt              float64       `json:"tilt"`
	Watts             float64       `json:"watts"`
	YearlyEnergyDcKwh float64       `json:"yearlyEnergyDcKwh"`
	Shading           roof.Shading  `json:"shading"`
	Installation      Factors       `json:"installation"`
}

// Factors are per-panel installation checks.
type Factors struct {
	Accessibility float64 `json:"accessibility"`
	Structural    bool    `json:"structural"`
	Electrical    bool    `json:"electrical"`
	Maintenance   bool    `json:"maintenance"`
}

// PanelID returns the identifier of the n-th panel of an installation (1-based).
func PanelID(n int) string {
	return fmt.Sprintf("panel_%d", n)
}
