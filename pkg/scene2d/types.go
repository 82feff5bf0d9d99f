package scene2d

// Scene2D is the top-down roof plan for an SVG renderer. Coordinates are
// meters east (x) and north (y) of the building center.
type Scene2D struct {
	Metadata     Metadata        `json:"metadata"`
	Sections     []Section2D     `json:"sections"`
	Obstructions []Obstruction2D `json:"obstructions"`
	Panels       []Panel2D       `json:"panels"`
	Strings      []String2D      `json:"strings"`
}

// Metadata holds building-level summary data.
type Metadata struct {
	Building     string        `json:"building,omitempty"`
	Origin       [2]float64    `json:"origin"` // latitude, longitude
	SectionCount int           `json:"section_count"`
	PanelCount   int           `json:"panel_count"`
	StringCount  int           `json:"string_count"`
	CableLengthM float64       `json:"cable_length_m"`
	Extent       [2][2]float64 `json:"extent"` // min, max
	GeneratedAt  string        `json:"generated_at,omitempty"`
}

// Section2D is one roof face.
type Section2D struct {
	ID       string       `json:"id"`
	Boundary [][2]float64 `json:"boundary"`
	Center   [2]float64   `json:"center"`
	Azimuth  float64      `json:"azimuth"`
	Pitch    float64      `json:"pitch"`
	AreaM2   float64      `json:"area_m2"`
	Status   string       `json:"status,omitempty"`
	Placed   int          `json:"placed"`
}

// Obstruction2D is a circular keep-out zone.
type Obstruction2D struct {
	ID        string     `json:"id"`
	SectionID string     `json:"section_id"`
	Center    [2]float64 `json:"center"`
	Radius    float64    `json:"radius"`
}

// Panel2D is one placed panel footprint.
type Panel2D struct {
	ID             string       `json:"id"`
	SectionID      string       `json:"section_id"`
	StringID       string       `json:"string_id"`
	StringPosition int          `json:"string_position"`
	Row            int          `json:"row"`
	Column         int          `json:"column"`
	Center         [2]float64   `json:"center"`
	Corners        [][2]float64 `json:"corners"`
}

// String2D is the wiring route of one string, through its panel centers in
// series order.
type String2D struct {
	ID      string       `json:"id"`
	Panels  []string     `json:"panels"`
	Route   [][2]float64 `json:"route"`
	LengthM float64      `json:"length_m"`
	Voltage float64      `json:"voltage"`
	Power   float64      `json:"power"`
}
