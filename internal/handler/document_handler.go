package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"claimlens/internal/export"
	"claimlens/internal/service"
)

// DocumentHandler handles document extraction and retrieval endpoints.
type DocumentHandler struct {
	extractionService service.ExtractionService
	answerService     service.AnswerService
	exportService     service.ExportService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(
	extractionService service.ExtractionService,
	answerService service.AnswerService,
	exportService service.ExportService,
) *DocumentHandler {
	return &DocumentHandler{
		extractionService: extractionService,
		answerService:     answerService,
		exportService:     exportService,
	}
}

// Extract handles POST /api/v1/documents/extract
// @Summary Extract structured data from a claim document
// @Description Upload an image or PDF and receive the structured record recognized from it
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Claim document (PDF, JPG, or PNG)"
// @Success 201 {object} APIResponse "Extraction result"
// @Failure 400 {object} APIResponse "Missing file, unsupported type, or OCR failure"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 422 {object} APIResponse "No recognizable text"
// @Router /documents/extract [post]
func (h *DocumentHandler) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	doc, err := h.extractionService.Extract(c.Request.Context(), service.ExtractInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		FileBytes:   data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{
		"document_id": doc.ID,
		"structure":   doc.Structure,
	})
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get an extracted document
// @Description Retrieve a previously extracted document by ID, including its raw OCR text
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse "Document"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID format")
		return
	}

	doc, err := h.extractionService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// List handles GET /api/v1/documents
// @Summary List extracted documents
// @Tags documents
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} APIResponse "Documents"
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	docs, total, err := h.extractionService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// askRequest is the JSON body for the ask endpoint.
type askRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
	Question   string `json:"question"`
}

// Ask handles POST /api/v1/documents/ask
// @Summary Ask about an extracted document
// @Description Answer a question about a previously extracted document
// @Tags documents
// @Accept json
// @Produce json
// @Param request body askRequest true "Ask request"
// @Success 200 {object} APIResponse "Answer"
// @Failure 400 {object} APIResponse "Invalid request body"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/ask [post]
func (h *DocumentHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document_id is required")
		return
	}

	id, err := uuid.Parse(req.DocumentID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID format")
		return
	}

	result, err := h.answerService.Ask(c.Request.Context(), id, req.Question)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"document_id": result.DocumentID,
		"question":    result.Question,
		"answer":      result.Answer,
	})
}

// Export handles GET /api/v1/documents/export
// @Summary Export extracted documents
// @Description Download all extracted documents as CSV (default) or XLSX
// @Tags documents
// @Produce text/csv
// @Param format query string false "Export format: csv or xlsx" default(csv)
// @Success 200 {file} file "Export file"
// @Router /documents/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	switch format {
	case "csv":
		filename := export.BuildFilename("claim_documents", "csv")
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := h.exportService.ExportCSV(c.Request.Context(), c.Writer); err != nil {
			HandleError(c, err)
		}
	case "xlsx":
		filename := export.BuildFilename("claim_documents", "xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := h.exportService.ExportXLSX(c.Request.Context(), c.Writer); err != nil {
			HandleError(c, err)
		}
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
	}
}
