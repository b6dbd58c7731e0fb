package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billscan/internal/csvexport"
	"billscan/internal/observability/metrics"
	"billscan/internal/service"
	"billscan/internal/xlsxexport"
)

// BillHandler handles bill scanning and retrieval endpoints.
type BillHandler struct {
	billService service.BillService
	metrics     *metrics.HTTPServerMetrics
}

// NewBillHandler creates a new BillHandler. Metrics may be nil.
func NewBillHandler(billService service.BillService, m *metrics.HTTPServerMetrics) *BillHandler {
	return &BillHandler{billService: billService, metrics: m}
}

// Scan handles POST /api/v1/bills/scan
func (h *BillHandler) Scan(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	bill, err := h.billService.ScanAndParse(c.Request.Context(), service.ScanInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordScan("unknown", "failed")
		}
		HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordScan(bill.Engine, string(bill.Status))
		h.metrics.RecordParsedBill(bill.DocumentType)
	}

	RespondCreated(c, bill)
}

// parseRequest is the body for POST /api/v1/bills/parse.
type parseRequest struct {
	Text string `json:"text" binding:"required"`
}

// Parse handles POST /api/v1/bills/parse
func (h *BillHandler) Parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text field is required")
		return
	}

	parsed, err := h.billService.ParseText(c.Request.Context(), req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, parsed)
}

// GetByID handles GET /api/v1/bills/:id
func (h *BillHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	bill, err := h.billService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// List handles GET /api/v1/bills
func (h *BillHandler) List(c *gin.Context) {
	offset, limit := paginationParams(c)

	bills, total, err := h.billService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// File handles GET /api/v1/bills/:id/file
func (h *BillHandler) File(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	url, err := h.billService.GetFileURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, url)
}

// Delete handles DELETE /api/v1/bills/:id
func (h *BillHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	if err := h.billService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "bill deleted"})
}

// Export handles GET /api/v1/bills/export?format=csv|xlsx
func (h *BillHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	bills, err := h.billService.ListAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	switch format {
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename("csv")+`"`)
		c.Status(http.StatusOK)

		_, _ = c.Writer.Write(csvexport.BOM)
		w := csvexport.NewWriter(c.Writer)
		if err := w.WriteHeader(); err != nil {
			return
		}
		if err := w.WriteBills(bills); err != nil {
			return
		}
		w.Flush()

	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename("xlsx")+`"`)
		c.Status(http.StatusOK)

		if err := xlsxexport.Write(c.Writer, bills); err != nil {
			return
		}

	default:
		RespondError(c, http.StatusBadRequest, "INVALID_EXPORT_FORMAT", "invalid export format; allowed: csv, xlsx")
	}
}

// paginationParams reads offset/limit query params with sane bounds.
func paginationParams(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
