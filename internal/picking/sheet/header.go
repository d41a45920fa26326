package sheet

import (
	"errors"
	"strings"
)

// headerScanRows bounds the header search window.
const headerScanRows = 25

// ErrHeaderNotFound means no row in the scan window qualified as a header
// row. Without a header the column mapping is meaningless, so ingestion of
// the whole file must be aborted.
var ErrHeaderNotFound = errors.New("no header row found in scan window")

var (
	headerCodeKeywords        = []string{"CÓDIGO", "CODIGO", "ITEM"}
	headerDescriptionKeywords = []string{"DESCRIPCI", "DETALLE"}
)

// LocateHeader returns the index of the first row that contains both a
// code-family cell and a description-family cell. The scan runs top to
// bottom and the first qualifying row is never reconsidered.
func LocateHeader(grid Grid) (int, error) {
	limit := grid.Rows()
	if limit > headerScanRows {
		limit = headerScanRows
	}

	for row := 0; row < limit; row++ {
		var hasCode, hasDescription bool
		for _, cell := range grid[row] {
			value := normalize(cell)
			if value == "" {
				continue
			}
			if !hasCode && containsAny(value, headerCodeKeywords) {
				hasCode = true
			}
			if !hasDescription && containsAny(value, headerDescriptionKeywords) {
				hasDescription = true
			}
			if hasCode && hasDescription {
				return row, nil
			}
		}
	}

	return 0, ErrHeaderNotFound
}

func containsAny(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}
