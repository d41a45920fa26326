package service

import (
	"context"
	"errors"
	"time"

	"picking_portal_backend/internal/events"
	"picking_portal_backend/internal/picking/repository"
	"picking_portal_backend/internal/picking/sheet"
	"picking_portal_backend/internal/picking/transport"
	"picking_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

const (
	msgHeaderNotFound = "no header row found in the first rows of the sheet"
	msgStoreFailure   = "failed to store imported items"
)

// Ingest runs the whole extraction pipeline over a decoded grid and
// persists the surviving rows as pending work items for the tenant.
//
// Structural failures (no header row) abort the file with nothing written.
// A file whose rows are all rejected by validation is not an error: the
// result simply reports zero inserted rows.
func (s *Service) Ingest(ctx context.Context, tenantID uuid.UUID, filename string, grid sheet.Grid) (*transport.ImportResult, error) {
	headerRow, err := sheet.LocateHeader(grid)
	if err != nil {
		if errors.Is(err, sheet.ErrHeaderNotFound) {
			return nil, apperr.Validation(msgHeaderNotFound).WithOp("picking.Ingest")
		}
		return nil, apperr.Wrap(apperr.KindInternal, msgStoreFailure, err)
	}

	meta := sheet.ScanMetadata(grid)
	columns := sheet.MapColumns(grid[headerRow])
	candidates := sheet.ExtractRows(grid, headerRow, columns)

	result := &transport.ImportResult{
		OrderID:      meta.OrderID,
		Zone:         meta.Zone,
		CreatedLabel: meta.CreatedLabel,
		DueLabel:     meta.DueLabel,
	}

	if len(candidates) == 0 {
		return result, nil
	}

	now := time.Now()
	items := make([]repository.WorkItem, len(candidates))
	for i, c := range candidates {
		items[i] = repository.WorkItem{
			ID:                 uuid.New(),
			TenantID:           tenantID,
			SourceFile:         filename,
			OrderID:            meta.OrderID,
			ProductCode:        c.ProductCode,
			ProductDescription: c.Description,
			PlannedQuantity:    c.Quantity,
			Zone:               nilIfEmpty(meta.Zone),
			Warehouse:          s.cfg.GetDefaultWarehouse(),
			OrderCreatedAt:     nilIfEmpty(meta.CreatedLabel),
			OrderDueAt:         nilIfEmpty(meta.DueLabel),
			Status:             string(transport.ItemStatusPending),
			CreatedAt:          now,
		}
	}

	if err := s.store.InsertBatch(ctx, items); err != nil {
		// The batch rolled back; surface a generic message and keep the
		// cause wrapped for logs.
		return nil, apperr.Wrap(apperr.KindInternal, msgStoreFailure, err).WithOp("picking.Ingest")
	}

	result.RowsInserted = len(items)

	s.publish(ctx, events.FileIngested{
		BaseEvent:    events.NewBaseEvent(),
		TenantID:     tenantID,
		SourceFile:   filename,
		OrderID:      meta.OrderID,
		RowsInserted: len(items),
	})

	return result, nil
}
