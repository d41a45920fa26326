package sheet

import (
	"strconv"
	"strings"
)

// Candidate is a validated line item ready for ingestion. The invariant
// Quantity > 0 holds for every candidate this package emits.
type Candidate struct {
	ProductCode string
	Description string
	Quantity    int
}

// ExtractRows walks every data row below the header and applies the
// per-row cleaning rules:
//
//   - rows without a product code are skipped
//   - rows whose code echoes a header alias are skipped
//   - quantity is coerced leniently; anything unparseable counts as zero
//   - zero-quantity rows are dropped (noise, not valid work)
//
// Description defaults to the empty string when the column is absent.
func ExtractRows(grid Grid, headerRow int, cm ColumnMap) []Candidate {
	var out []Candidate

	for row := headerRow + 1; row < grid.Rows(); row++ {
		rawCode, _ := cm.Value(grid[row], FieldCode)
		code := strings.TrimSpace(rawCode)
		if code == "" || isMissing(normalize(code)) || isHeaderEcho(code) {
			continue
		}

		rawQty, _ := cm.Value(grid[row], FieldQuantity)
		qty := coerceQuantity(rawQty)
		if qty <= 0 {
			continue
		}

		rawDesc, _ := cm.Value(grid[row], FieldDescription)
		desc := strings.TrimSpace(rawDesc)
		if isMissing(normalize(desc)) {
			desc = ""
		}

		out = append(out, Candidate{
			ProductCode: code,
			Description: desc,
			Quantity:    qty,
		})
	}

	return out
}

// coerceQuantity parses a quantity cell, tolerating float formatting like
// "5.0" or "2,5" that spreadsheet tools produce for integer columns. A comma
// only counts as a decimal separator when a one- or two-digit fraction
// follows it; thousands grouping like "1,234" is rejected rather than read
// as 1.234. Unparseable values coerce to zero so the row is dropped by the
// caller.
func coerceQuantity(raw string) int {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0
	}

	if n, err := strconv.Atoi(value); err == nil {
		return n
	}

	if i := strings.LastIndex(value, ","); i >= 0 {
		frac := value[i+1:]
		if len(frac) == 0 || len(frac) > 2 || strings.Contains(value[:i], ",") {
			return 0
		}
		value = value[:i] + "." + frac
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}

	return 0
}
