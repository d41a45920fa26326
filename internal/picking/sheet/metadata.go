package sheet

// metadataScanRows bounds the metadata scan; file-level labels always sit
// near the top of partner exports.
const metadataScanRows = 20

// OrderIDUnassigned is the sentinel stored when no order id label is found.
const OrderIDUnassigned = "UNASSIGNED"

// Metadata is the file-level information extracted from the region above
// the header row. Empty fields were not found. Date labels are opaque
// passthrough text, never parsed.
type Metadata struct {
	OrderID      string
	Zone         string
	CreatedLabel string
	DueLabel     string
}

// metadataRule matches a label cell by substring and reads its value at a
// fixed offset from the label.
type metadataRule struct {
	keywords  []string
	rowOffset int
	colOffset int
	assign    func(*Metadata, string)
}

// Label conventions observed across partner exports: the order id sits
// below its label, the rest sit a fixed number of columns to the right.
var metadataRules = []metadataRule{
	{
		keywords:  []string{"PLANILA", "PLANILLA"},
		rowOffset: 1, colOffset: 0,
		assign: func(m *Metadata, v string) {
			if m.OrderID == "" {
				m.OrderID = v
			}
		},
	},
	{
		keywords:  []string{"OBSERVACI"},
		rowOffset: 0, colOffset: 3,
		assign: func(m *Metadata, v string) {
			if m.Zone == "" {
				m.Zone = v
			}
		},
	},
	{
		keywords:  []string{"CREACI", "GENERADO"},
		rowOffset: 0, colOffset: 4,
		assign: func(m *Metadata, v string) {
			if m.CreatedLabel == "" {
				m.CreatedLabel = v
			}
		},
	},
	{
		keywords:  []string{"ENTREGA", "DESPACHO"},
		rowOffset: 0, colOffset: 4,
		assign: func(m *Metadata, v string) {
			if m.DueLabel == "" {
				m.DueLabel = v
			}
		},
	},
}

// ScanMetadata folds the metadata rules over the scan window and returns a
// single record. The first match wins per field; later occurrences of the
// same label are ignored. Malformed or missing values are silently skipped,
// leaving the field unset.
func ScanMetadata(grid Grid) Metadata {
	var meta Metadata

	limit := grid.Rows()
	if limit > metadataScanRows {
		limit = metadataScanRows
	}

	for row := 0; row < limit; row++ {
		for col := range grid[row] {
			label := normalize(grid[row][col])
			if label == "" {
				continue
			}
			for _, rule := range metadataRules {
				if !containsAny(label, rule.keywords) {
					continue
				}
				raw, ok := grid.Cell(row+rule.rowOffset, col+rule.colOffset)
				if !ok {
					continue
				}
				value := normalize(raw)
				if isMissing(value) {
					continue
				}
				rule.assign(&meta, value)
			}
		}
	}

	if meta.OrderID == "" {
		meta.OrderID = OrderIDUnassigned
	}
	return meta
}
