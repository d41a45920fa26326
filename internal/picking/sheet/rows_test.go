package sheet

import "testing"

func pipelineFixture(t *testing.T, grid Grid) []Candidate {
	t.Helper()
	headerRow, err := LocateHeader(grid)
	if err != nil {
		t.Fatalf("locate header: %v", err)
	}
	cm := MapColumns(grid[headerRow])
	return ExtractRows(grid, headerRow, cm)
}

func TestExtractRowsDropsZeroQuantity(t *testing.T) {
	grid := Grid{
		{"Código", "Descripción", "Cantidad"},
		{"A", "Caja grande", "5"},
		{"B", "Caja mediana", "0"},
		{"C", "Caja chica", "7"},
	}

	rows := pipelineFixture(t, grid)

	if len(rows) != 2 {
		t.Fatalf("expected 2 surviving rows, got %d", len(rows))
	}
	if rows[0].ProductCode != "A" || rows[0].Quantity != 5 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].ProductCode != "C" || rows[1].Quantity != 7 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	for _, r := range rows {
		if r.Quantity <= 0 {
			t.Fatalf("invariant violated: candidate with quantity %d", r.Quantity)
		}
	}
}

func TestExtractRowsSkipsHeaderEcho(t *testing.T) {
	grid := Grid{
		{"Código", "Descripción", "Cantidad"},
		{"codigo", "descripcion", "cantidad"},
		{"A-1", "Tornillo", "3"},
	}

	rows := pipelineFixture(t, grid)

	if len(rows) != 1 || rows[0].ProductCode != "A-1" {
		t.Fatalf("expected header echo to be skipped, got %+v", rows)
	}
}

func TestExtractRowsSkipsMissingCode(t *testing.T) {
	grid := Grid{
		{"Código", "Descripción", "Cantidad"},
		{"", "sin codigo", "4"},
		{"nan", "marcador nulo", "4"},
		{"B-2", "Tuerca", "4"},
	}

	rows := pipelineFixture(t, grid)

	if len(rows) != 1 || rows[0].ProductCode != "B-2" {
		t.Fatalf("expected only B-2 to survive, got %+v", rows)
	}
}

func TestExtractRowsDefaultsDescription(t *testing.T) {
	grid := Grid{
		{"Código", "Cantidad"},
		{"C-3", "2"},
	}

	headerRow := 0
	cm := MapColumns(grid[headerRow])
	rows := ExtractRows(grid, headerRow, cm)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Description != "" {
		t.Fatalf("expected empty description, got %q", rows[0].Description)
	}
}

func TestCoerceQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{" 12 ", 12},
		{"5.0", 5},
		{"3,0", 3},
		{"2,5", 2},
		{"7.9", 7},
		{"1,234", 0},
		{"1,234,567", 0},
		{"9,", 0},
		{"", 0},
		{"abc", 0},
		{"-2", -2},
	}

	for _, tc := range cases {
		if got := coerceQuantity(tc.in); got != tc.want {
			t.Fatalf("coerceQuantity(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestExtractRowsDropsNegativeQuantity(t *testing.T) {
	grid := Grid{
		{"Código", "Descripción", "Cantidad"},
		{"D-4", "Devolución", "-2"},
	}

	rows := pipelineFixture(t, grid)

	if len(rows) != 0 {
		t.Fatalf("expected negative quantity row to be dropped, got %+v", rows)
	}
}
