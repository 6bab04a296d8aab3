package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"equitylens/internal/csvexport"
	"equitylens/internal/domain"
	"equitylens/internal/service"
)

// StatementHandler handles statement upload and analysis history endpoints.
type StatementHandler struct {
	svc         service.StatementService
	maxFileSize int64
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(svc service.StatementService, maxFileSize int64) *StatementHandler {
	return &StatementHandler{svc: svc, maxFileSize: maxFileSize}
}

// Analyze handles POST /api/v1/statements/analyze
// @Summary Analyze a balance sheet
// @Description Upload one statement (csv, xls, xlsx, pdf, jpg, png) and get asset and liability totals
// @Tags statements
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Statement file"
// @Success 200 {object} APIResponse{data=domain.Analysis} "Classification result"
// @Failure 400 {object} APIResponse "Missing file"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 422 {object} APIResponse "Empty, unreadable or unclassifiable statement"
// @Failure 502 {object} APIResponse "Vision service failure"
// @Router /statements/analyze [post]
func (h *StatementHandler) Analyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}
		HandleError(c, domain.ErrMissingFile)
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	// One byte past the limit is enough for the service to reject the file.
	var r io.Reader = file
	if h.maxFileSize > 0 {
		r = io.LimitReader(file, h.maxFileSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		log.Printf("statementHandler.Analyze: reading upload %s: %v", header.Filename, err)
		HandleError(c, domain.ErrUnreadableFormat)
		return
	}

	analysis, err := h.svc.Analyze(c.Request.Context(), service.AnalyzeInput{
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, analysis)
}

// List handles GET /api/v1/analyses
// @Summary List analyses
// @Description List past analyses, newest first
// @Tags analyses
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Analysis,meta=PagMeta} "List of analyses"
// @Router /analyses [get]
func (h *StatementHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	analyses, total, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, analyses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/analyses/:id
// @Summary Get analysis
// @Description Get one analysis, with a download link for the archived source file when available
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} APIResponse{data=domain.Analysis} "Analysis"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Not found"
// @Router /analyses/{id} [get]
func (h *StatementHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	analysis, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, analysis)
}

// exportBatchSize is the page size used while streaming the history export.
const exportBatchSize = 100

// Export handles GET /api/v1/analyses/export
// @Summary Export analyses
// @Description Download the analysis history as CSV, newest first
// @Tags analyses
// @Produce text/csv
// @Success 200 {file} file "CSV export"
// @Router /analyses/export [get]
func (h *StatementHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	// Fetch the first page before writing headers so errors still get JSON.
	batch, total, err := h.svc.List(ctx, 0, exportBatchSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	writeCSVHeaders(c, csvexport.BuildFilename("analyses", time.Now()))
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Printf("statementHandler.Export: writing header: %v", err)
		return
	}

	for offset := 0; len(batch) > 0; {
		if err := w.WriteAnalyses(batch); err != nil {
			log.Printf("statementHandler.Export: writing rows at offset %d: %v", offset, err)
			return
		}
		offset += len(batch)
		if offset >= total {
			break
		}
		batch, _, err = h.svc.List(ctx, offset, exportBatchSize)
		if err != nil {
			log.Printf("statementHandler.Export: listing at offset %d: %v", offset, err)
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("statementHandler.Export: flushing: %v", err)
	}
}

// ExportDetail handles GET /api/v1/analyses/:id/export
// @Summary Export analysis detail
// @Description Download the classified lines and totals of one analysis as CSV
// @Tags analyses
// @Produce text/csv
// @Param id path string true "Analysis ID"
// @Success 200 {file} file "CSV export"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Not found"
// @Router /analyses/{id}/export [get]
func (h *StatementHandler) ExportDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	analysis, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	writeCSVHeaders(c, csvexport.BuildFilename(analysis.FileName, analysis.CreatedAt))
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteDetail(analysis); err != nil {
		log.Printf("statementHandler.ExportDetail: writing %s: %v", id, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("statementHandler.ExportDetail: flushing %s: %v", id, err)
	}
}

func writeCSVHeaders(c *gin.Context, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	_, _ = c.Writer.Write(csvexport.BOM)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// isBodyTooLarge reports whether err came from a request body cut off by
// http.MaxBytesReader. The multipart reader does not always keep the
// original error in the chain.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
