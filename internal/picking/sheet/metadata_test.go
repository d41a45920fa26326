package sheet

import "testing"

func TestScanMetadataReadsOrderIDBelowLabel(t *testing.T) {
	grid := Grid{
		{},
		{},
		{"PLANILLA DE PICKING"},
		{"PED-99"},
	}

	meta := ScanMetadata(grid)

	if meta.OrderID != "PED-99" {
		t.Fatalf("expected order id PED-99, got %q", meta.OrderID)
	}
}

func TestScanMetadataReadsOffsetFields(t *testing.T) {
	grid := Grid{
		{"OBSERVACIONES", "", "", "ZONA NORTE"},
		{"FECHA CREACION", "", "", "", "2024-03-01"},
		{"FECHA ENTREGA", "", "", "", "2024-03-05"},
	}

	meta := ScanMetadata(grid)

	if meta.Zone != "ZONA NORTE" {
		t.Fatalf("expected zone ZONA NORTE, got %q", meta.Zone)
	}
	if meta.CreatedLabel != "2024-03-01" {
		t.Fatalf("expected created label 2024-03-01, got %q", meta.CreatedLabel)
	}
	if meta.DueLabel != "2024-03-05" {
		t.Fatalf("expected due label 2024-03-05, got %q", meta.DueLabel)
	}
}

func TestScanMetadataFirstMatchWins(t *testing.T) {
	grid := Grid{
		{"PLANILLA"},
		{"PED-1"},
		{"PLANILLA"},
		{"PED-2"},
	}

	meta := ScanMetadata(grid)

	if meta.OrderID != "PED-1" {
		t.Fatalf("expected first match PED-1 to win, got %q", meta.OrderID)
	}
}

func TestScanMetadataDiscardsDataframeNullMarkers(t *testing.T) {
	grid := Grid{
		{"OBSERVACIONES", "", "", "nan"},
		{"FECHA CREACION", "", "", "", "NaT"},
	}

	meta := ScanMetadata(grid)

	if meta.Zone != "" {
		t.Fatalf("expected nan zone to be discarded, got %q", meta.Zone)
	}
	if meta.CreatedLabel != "" {
		t.Fatalf("expected NaT created label to be discarded, got %q", meta.CreatedLabel)
	}
}

func TestScanMetadataOutOfBoundsReadIsDiscarded(t *testing.T) {
	// Label on the last row: the value row below it does not exist.
	grid := Grid{
		{"PLANILLA"},
	}

	meta := ScanMetadata(grid)

	if meta.OrderID != OrderIDUnassigned {
		t.Fatalf("expected sentinel %q, got %q", OrderIDUnassigned, meta.OrderID)
	}
}

func TestScanMetadataDefaultsOrderIDToSentinel(t *testing.T) {
	grid := Grid{
		{"CODIGO", "DESCRIPCION", "CANTIDAD"},
	}

	meta := ScanMetadata(grid)

	if meta.OrderID != OrderIDUnassigned {
		t.Fatalf("expected sentinel %q, got %q", OrderIDUnassigned, meta.OrderID)
	}
	if meta.Zone != "" || meta.CreatedLabel != "" || meta.DueLabel != "" {
		t.Fatalf("expected optional fields unset, got %+v", meta)
	}
}

func TestScanMetadataIgnoresLabelsBelowScanWindow(t *testing.T) {
	grid := make(Grid, 30)
	for i := range grid {
		grid[i] = []string{""}
	}
	grid[25] = []string{"PLANILLA"}
	grid[26] = []string{"PED-LATE"}

	meta := ScanMetadata(grid)

	if meta.OrderID != OrderIDUnassigned {
		t.Fatalf("expected label below scan window to be ignored, got %q", meta.OrderID)
	}
}
