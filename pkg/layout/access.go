package layout

import "math"

// Accessibility model: panels lose 0.1 per row/column of depth into the
// array, never dropping below 0.5, and steep roofs lose a further 20%.
const (
	accessPerDepth   = 0.1
	minAccessibility = 0.5
	steepRoofPitch   = 45.0 // degrees
	steepRoofPenalty = 0.8
)

// gridPosition returns the 1-based row and column of the i-th panel in a
// section laid out perRow panels wide.
func gridPosition(i, perRow int) (row, col int) {
	return i/perRow + 1, i%perRow + 1
}

// depth is how many rows or columns separate a panel from the nearest edge
// of its array. Edge panels have depth 0.
func depth(i, n, perRow int) int {
	row, col := gridPosition(i, perRow)
	rows := (n + perRow - 1) / perRow
	cols := perRow
	if row == rows && n%perRow != 0 {
		cols = n % perRow
	}
	return min(row-1, rows-row, col-1, cols-col)
}

// accessibility scores how easily an installer can reach the i-th of n panels.
func accessibility(i, n, perRow int, tilt float64) float64 {
	a := math.Max(minAccessibility, 1-accessPerDepth*float64(depth(i, n, perRow)))
	if tilt > steepRoofPitch {
		a *= steepRoofPenalty
	}
	return a
}
