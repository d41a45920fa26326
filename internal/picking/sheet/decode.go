package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// DecodeWorkbook reads an xlsx workbook and returns the first sheet as a
// Grid of raw cell strings. Only the first sheet is considered; partner
// exports never carry data on additional sheets.
func DecodeWorkbook(r io.Reader) (Grid, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return Grid(rows), nil
}
