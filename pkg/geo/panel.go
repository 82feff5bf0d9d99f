package geo

// Size is a rectangle footprint in meters. Height runs up the roof slope.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PanelCorners returns the four corners of a panel rectangle centered at
// center, in the order bottom-left, bottom-right, top-right, top-left as
// seen looking up a south-facing slope.
//
// The rectangle is rotated by (orientation - 180) degrees clockwise, so a
// panel on a south-facing roof (azimuth 180) is axis aligned and its long
// side always runs up the slope.
func PanelCorners(center LatLng, orientation float64, size Size) [4]LatLng {
	hw, hh := size.Width/2, size.Height/2
	offsets := [4]Point2D{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}

	proj := NewProjection(center)
	var corners [4]LatLng
	for i, off := range offsets {
		corners[i] = proj.ToLatLng(off.RotateBearing(orientation - 180))
	}
	return corners
}
