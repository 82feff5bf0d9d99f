// Package electrical groups placed panels into series strings and derives
// string and system electrical totals.
package electrical

import (
	"fmt"

	"github.com/stanrw/enerwiseuk-sub000/pkg/layout"
)

// Cursor is the next free slot in the string being filled. It is threaded
// from one roof section to the next so strings continue across sections.
type Cursor struct {
	StringID int `json:"stringId"`
	Position int `json:"position"`
}

// NewCursor returns a cursor at the first slot of the first string.
func NewCursor() Cursor {
	return Cursor{StringID: 1, Position: 1}
}

// StringID returns the identifier of the n-th string (1-based).
func StringID(n int) string {
	return fmt.Sprintf("string_%d", n)
}

// Assign places panels into strings of at most size panels, in order,
// starting at cur. It returns copies of the panels with StringID and
// StringPosition set, and the cursor for the next panel.
func Assign(panels []layout.PlacedPanel, cur Cursor, size int) ([]layout.PlacedPanel, Cursor) {
	if size < 1 {
		size = 1
	}
	if cur.StringID < 1 {
		cur.StringID = 1
	}
	if cur.Position < 1 {
		cur.Position = 1
	}

	out := make([]layout.PlacedPanel, len(panels))
	for i, p := range panels {
		if cur.Position > size {
			cur.StringID++
			cur.Position = 1
		}
		p.StringID = StringID(cur.StringID)
		p.StringPosition = cur.Position
		out[i] = p
		cur.Position++
	}
	return out, cur
}
