// Package scene builds a render graph of a roof installation: roof sections,
// obstructions and panels in a local metric frame around the building.
//
// The frame is right-handed with X east, Y up and Z south, in meters from
// the building center.
package scene

import "github.com/stanrw/enerwiseuk-sub000/pkg/geo"

// LayerType identifies a vertical layer.
type LayerType string

const (
	LayerRoof  LayerType = "roof"
	LayerArray LayerType = "array"
)

// EntityType identifies the kind of entity.
type EntityType string

const (
	EntityRoofSection EntityType = "roof_section"
	EntityObstruction EntityType = "obstruction"
	EntityPanel       EntityType = "panel"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Entity is a single element in the scene graph. Position is the center of
// the footprint at the entity's base.
type Entity struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	Position   Vec3           `json:"position"`
	Dimensions Vec3           `json:"dimensions"`
	Rotation   [4]float64     `json:"rotation"` // quaternion [x, y, z, w]
	Material   string         `json:"material"`
	Section    string         `json:"section,omitempty"`
	String     string         `json:"string,omitempty"`
	Layer      LayerType      `json:"layer"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Children   []string       `json:"children,omitempty"`
}

// Graph is the complete scene graph for one installation.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	Building    string      `json:"building,omitempty"`
	Origin      geo.LatLng  `json:"origin"`
	GeneratedAt string      `json:"generated_at,omitempty"`
	Bounds      BoundingBox `json:"bounds"`
}

// Groups organizes entity IDs by various axes for fast filtering.
type Groups struct {
	Sections    map[string][]string     `json:"sections"`
	Strings     map[string][]string     `json:"strings"`
	Layers      map[LayerType][]string  `json:"layers"`
	EntityTypes map[EntityType][]string `json:"entity_types"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Sections:    make(map[string][]string),
			Strings:     make(map[string][]string),
			Layers:      make(map[LayerType][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}
