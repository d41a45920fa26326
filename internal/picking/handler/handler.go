package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"picking_portal_backend/internal/archive"
	"picking_portal_backend/internal/picking/service"
	"picking_portal_backend/internal/picking/sheet"
	"picking_portal_backend/internal/picking/transport"
	"picking_portal_backend/platform/httpkit"
	"picking_portal_backend/platform/logger"
	"picking_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidWorkbook  = "could not read workbook"

	defaultMaxImportBytes = 10 << 20
)

// Handler handles HTTP requests for the picking module.
type Handler struct {
	svc            *service.Service
	val            *validator.Validator
	log            *logger.Logger
	archiver       archive.Archiver // optional; nil disables source archival
	maxImportBytes int64
}

// New creates a new picking handler.
func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log, maxImportBytes: defaultMaxImportBytes}
}

// SetArchiver injects the optional source file archiver.
func (h *Handler) SetArchiver(a archive.Archiver) {
	h.archiver = a
}

// SetMaxImportBytes overrides the upload size limit.
func (h *Handler) SetMaxImportBytes(n int64) {
	if n > 0 {
		h.maxImportBytes = n
	}
}

// RoleSupervisor gates the tenant dashboards; operators work the queue,
// supervisors read the numbers.
const RoleSupervisor = "supervisor"

// RegisterRoutes registers the picking routes. The import route carries the
// stricter rate limit passed by the module; the dashboard routes require
// the supervisor role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, importLimit gin.HandlerFunc) {
	rg.POST("/imports", importLimit, h.Import)
	rg.GET("/orders", h.ListActiveOrders)
	rg.POST("/orders/:orderId/assign", h.AssignOrder)
	rg.GET("/orders/:orderId/items", h.ListOrderItems)
	rg.POST("/items/:id/confirm", h.ConfirmItem)

	dashboard := rg.Group("/dashboard")
	dashboard.Use(httpkit.RequireRole(RoleSupervisor))
	dashboard.GET("/kpis", h.KPIs)
	dashboard.GET("/operators", h.OperatorRollups)
}

// Import ingests a partner spreadsheet for the caller's tenant. The body is
// either a multipart form with an xlsx "file" field or a JSON payload with
// an already-decoded grid.
func (h *Handler) Import(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	filename, grid, payload, ok := h.readImportBody(c)
	if !ok {
		return
	}

	result, err := h.svc.Ingest(c.Request.Context(), identity.TenantID(), filename, grid)
	if httpkit.HandleError(c, err) {
		return
	}

	if h.archiver != nil && payload != nil {
		// Archival is best-effort; the queue rows are already committed.
		if err := h.archiver.StoreSourceFile(c.Request.Context(), identity.TenantID(), filename, payload); err != nil {
			h.log.Warn("source file archival failed", "file", filename, "error", err)
		}
	}

	h.log.IngestResult(identity.TenantID().String(), filename, result.OrderID, result.RowsInserted)
	httpkit.Created(c, result)
}

func (h *Handler) readImportBody(c *gin.Context) (string, sheet.Grid, []byte, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return h.readWorkbookUpload(c)
	}

	var req transport.ImportGridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return "", nil, nil, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return "", nil, nil, false
	}
	return req.Filename, sheet.Grid(req.Grid), nil, true
}

func (h *Handler) readWorkbookUpload(c *gin.Context) (string, sheet.Grid, []byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImportBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "missing file field")
		return "", nil, nil, false
	}

	payload, err := readAll(fileHeader)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidWorkbook, err.Error())
		return "", nil, nil, false
	}

	grid, err := sheet.DecodeWorkbook(bytes.NewReader(payload))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidWorkbook, err.Error())
		return "", nil, nil, false
	}

	return fileHeader.Filename, grid, payload, true
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ListActiveOrders returns the operator's queue of unfinished orders.
func (h *Handler) ListActiveOrders(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	orders, err := h.svc.ListActiveOrders(c.Request.Context(), identity.TenantID(), identity.OperatorID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, orders)
}

// ListOrderItems returns the items of one order, unfinished first.
func (h *Handler) ListOrderItems(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	items, err := h.svc.ListOrderItems(c.Request.Context(), identity.TenantID(), c.Param("orderId"), identity.OperatorID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// AssignOrder claims an order's unassigned items for the caller.
func (h *Handler) AssignOrder(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	resp, err := h.svc.AssignOrder(c.Request.Context(), identity.TenantID(), c.Param("orderId"), identity.OperatorID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// ConfirmItem marks a work item completed with the reported quantity.
func (h *Handler) ConfirmItem(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "invalid item id")
		return
	}

	var req transport.ConfirmItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.ConfirmItem(c.Request.Context(), itemID, identity.TenantID(), identity.OperatorID(), req.ReportedQuantity); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"ok": true})
}

// KPIs returns the tenant dashboard counters.
func (h *Handler) KPIs(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	kpis, err := h.svc.KPIs(c.Request.Context(), identity.TenantID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, kpis)
}

// OperatorRollups returns the per-operator dashboard table.
func (h *Handler) OperatorRollups(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	rollups, err := h.svc.OperatorRollups(c.Request.Context(), identity.TenantID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rollups)
}
