// Package sheet implements the heuristic extraction pipeline that turns a
// semi-structured spreadsheet grid into normalized ingestion candidates.
// Nothing in this package touches the store; it is pure input processing.
//
// Partner exports have no fixed schema: metadata floats near the top of the
// sheet, the header row moves around, and column titles vary per source.
// Extraction is therefore keyword-driven rather than positional.
package sheet

import "strings"

// Grid is a rectangular view over decoded spreadsheet cells. Rows may be
// ragged; out-of-bounds reads report absence instead of panicking.
type Grid [][]string

// Cell returns the raw value at (row, col) and whether the position exists.
func (g Grid) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(g) {
		return "", false
	}
	if col < 0 || col >= len(g[row]) {
		return "", false
	}
	return g[row][col], true
}

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}

// normalize uppercases and trims a cell for keyword matching.
func normalize(cell string) string {
	return strings.ToUpper(strings.TrimSpace(cell))
}

// isMissing reports whether a normalized cell value carries no information.
// Exports produced from dataframes leak their null markers as literal text.
func isMissing(normalized string) bool {
	switch normalized {
	case "", "NAN", "NAT", "NONE":
		return true
	}
	return false
}
