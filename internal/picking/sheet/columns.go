package sheet

import "strings"

// Field names a canonical column the pipeline cares about.
type Field string

const (
	// FieldCode is the product code column.
	FieldCode Field = "product_code"
	// FieldDescription is the product description column.
	FieldDescription Field = "product_description"
	// FieldQuantity is the planned quantity column.
	FieldQuantity Field = "planned_quantity"
)

// columnAbsent marks a canonical field with no matching column; every row
// yields an empty value for it and downstream validation decides the fate
// of the row.
const columnAbsent = -1

// fieldAliases maps each canonical field to its ordered alias list. Adding
// support for a new partner's column naming is a data change here, not a
// code change. Aliases are matched as lowercase substrings.
var fieldAliases = []struct {
	field   Field
	aliases []string
}{
	{FieldCode, []string{"código", "codigo", "item"}},
	{FieldDescription, []string{"descripción", "descripcion", "detalle"}},
	{FieldQuantity, []string{"cantidad", "unid", "cant"}},
}

// ColumnMap binds canonical fields to actual column indexes.
type ColumnMap map[Field]int

// MapColumns resolves the header row's arbitrary column titles to canonical
// fields. For each field, aliases are tried in priority order and columns
// left to right; the first title containing an alias binds the column.
// Unmatched fields bind to an always-absent column.
func MapColumns(headerRow []string) ColumnMap {
	titles := make([]string, len(headerRow))
	for i, cell := range headerRow {
		titles[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	cm := make(ColumnMap, len(fieldAliases))
	for _, entry := range fieldAliases {
		cm[entry.field] = matchColumn(titles, entry.aliases)
	}
	return cm
}

func matchColumn(titles []string, aliases []string) int {
	for _, alias := range aliases {
		for col, title := range titles {
			if title != "" && strings.Contains(title, alias) {
				return col
			}
		}
	}
	return columnAbsent
}

// Value reads the cell bound to the field from a data row. Absent bindings
// and short rows both report absence.
func (cm ColumnMap) Value(row []string, field Field) (string, bool) {
	col, ok := cm[field]
	if !ok || col == columnAbsent || col >= len(row) {
		return "", false
	}
	return row[col], true
}

// isHeaderEcho reports whether a code cell repeats a header alias, which
// happens when a mis-detected header row shows up again among the data.
func isHeaderEcho(code string) bool {
	lowered := strings.ToLower(strings.TrimSpace(code))
	for _, entry := range fieldAliases {
		if entry.field != FieldCode {
			continue
		}
		for _, alias := range entry.aliases {
			if lowered == alias {
				return true
			}
		}
	}
	return false
}
