package scene

import (
	"fmt"

	"github.com/stanrw/enerwiseuk-sub000/pkg/validation"
)

// ValidateGraph performs structural validation on a scene graph output.
// It checks entity integrity, group index consistency, and bounds enclosure.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "scene graph is nil",
		})
		return r
	}

	validateEntityIDs(g, r)
	validateGroupIndices(g, r)
	validateGroupMembership(g, r)
	validateBoundsEnclosure(g, r)
	validateEntityDimensions(g, r)
	validatePanelStrings(g, r)

	return r
}

func validateEntityIDs(g *Graph, r *validation.Report) {
	seen := make(map[string]int, len(g.Entities))

	for i, e := range g.Entities {
		if e.ID == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity at index %d has empty ID", i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[e.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("duplicate entity ID %q at indices %d and %d", e.ID, prev, i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: e.ID,
			})
		}
		seen[e.ID] = i
	}
}

// groupIndex flattens the typed group maps to name -> member IDs.
type groupIndex map[string][]string

func indexOf[K ~string](m map[K][]string) groupIndex {
	idx := make(groupIndex, len(m))
	for k, ids := range m {
		idx[string(k)] = ids
	}
	return idx
}

func (gi groupIndex) members() map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(gi))
	for name, ids := range gi {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		out[name] = m
	}
	return out
}

func groups(g *Graph) map[string]groupIndex {
	return map[string]groupIndex{
		"sections":     indexOf(g.Groups.Sections),
		"strings":      indexOf(g.Groups.Strings),
		"layers":       indexOf(g.Groups.Layers),
		"entity_types": indexOf(g.Groups.EntityTypes),
	}
}

func validateGroupIndices(g *Graph, r *validation.Report) {
	entityIDs := make(map[string]bool, len(g.Entities))
	for _, e := range g.Entities {
		entityIDs[e.ID] = true
	}

	for groupType, idx := range groups(g) {
		for groupName, ids := range idx {
			for _, id := range ids {
				if !entityIDs[id] {
					r.AddError(validation.Result{
						Level:       validation.LevelSpatial,
						Message:     fmt.Sprintf("group %s.%s references non-existent entity %q", groupType, groupName, id),
						Path:        fmt.Sprintf("groups.%s.%s", groupType, groupName),
						ActualValue: id,
						Expected:    "existing entity ID",
					})
				}
			}
		}
	}
}

func validateGroupMembership(g *Graph, r *validation.Report) {
	all := groups(g)
	members := make(map[string]map[string]map[string]bool, len(all))
	for groupType, idx := range all {
		members[groupType] = idx.members()
	}

	check := func(e Entity, groupType, field, value string) {
		if value == "" {
			return
		}
		m, ok := members[groupType][value]
		if !ok {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has %s %q but no such %s group exists", e.ID, field, value, groupType),
				Path:        "groups." + groupType,
				ActualValue: value,
			})
			return
		}
		if !m[e.ID] {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has %s %q but is not in %s group", e.ID, field, value, groupType),
				Path:        fmt.Sprintf("groups.%s.%s", groupType, value),
				ActualValue: e.ID,
			})
		}
	}

	for _, e := range g.Entities {
		if e.ID == "" {
			continue
		}
		check(e, "layers", "layer", string(e.Layer))
		check(e, "entity_types", "type", string(e.Type))
		check(e, "sections", "section", e.Section)
		check(e, "strings", "string", e.String)
	}
}

func validateBoundsEnclosure(g *Graph, r *validation.Report) {
	bounds := g.Metadata.Bounds
	tolerance := 0.05

	for _, e := range g.Entities {
		halfX := e.Dimensions.X / 2
		halfZ := e.Dimensions.Z / 2

		if e.Position.X-halfX < bounds.Min.X-tolerance || e.Position.X+halfX > bounds.Max.X+tolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q X extent [%.2f, %.2f] outside scene bounds [%.2f, %.2f]", e.ID, e.Position.X-halfX, e.Position.X+halfX, bounds.Min.X, bounds.Max.X),
				Path:        "metadata.bounds",
				ActualValue: e.Position.X,
			})
			break
		}
		if e.Position.Z-halfZ < bounds.Min.Z-tolerance || e.Position.Z+halfZ > bounds.Max.Z+tolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q Z extent [%.2f, %.2f] outside scene bounds [%.2f, %.2f]", e.ID, e.Position.Z-halfZ, e.Position.Z+halfZ, bounds.Min.Z, bounds.Max.Z),
				Path:        "metadata.bounds",
				ActualValue: e.Position.Z,
			})
			break
		}
	}
}

func validateEntityDimensions(g *Graph, r *validation.Report) {
	for _, e := range g.Entities {
		if e.Dimensions.X <= 0 || e.Dimensions.Y <= 0 || e.Dimensions.Z <= 0 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has zero or negative dimension (%.2f, %.2f, %.2f)", e.ID, e.Dimensions.X, e.Dimensions.Y, e.Dimensions.Z),
				Path:        fmt.Sprintf("entities.%s.dimensions", e.ID),
				ActualValue: fmt.Sprintf("%.2f x %.2f x %.2f", e.Dimensions.X, e.Dimensions.Y, e.Dimensions.Z),
				Expected:    "all dimensions > 0",
			})
		}
	}
}

// validatePanelStrings flags panels that were never wired into a string.
func validatePanelStrings(g *Graph, r *validation.Report) {
	for _, e := range g.Entities {
		if e.Type == EntityPanel && e.String == "" {
			r.AddError(validation.Result{
				Level:    validation.LevelSpatial,
				Message:  fmt.Sprintf("panel %q is not assigned to a string", e.ID),
				Path:     fmt.Sprintf("entities.%s.string", e.ID),
				Expected: "string ID",
			})
		}
	}
}
