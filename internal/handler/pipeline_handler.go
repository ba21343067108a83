package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"firmdesk/internal/domain"
	"firmdesk/internal/service"
)

// PipelineHandler handles classification and approval-gate endpoints.
type PipelineHandler struct {
	pipelineService service.PipelineService
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(pipelineService service.PipelineService) *PipelineHandler {
	return &PipelineHandler{pipelineService: pipelineService}
}

// overrideRequest is the body for classification override.
type overrideRequest struct {
	Classification domain.Classification `json:"classification" binding:"required"`
}

func (h *PipelineHandler) docID(c *gin.Context) (uuid.UUID, bool) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document id")
		return uuid.Nil, false
	}
	return docID, true
}

// Process handles POST /api/v1/documents/:id/process
// It runs the OCR and classification stage synchronously.
func (h *PipelineHandler) Process(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := h.docID(c)
	if !ok {
		return
	}

	result, err := h.pipelineService.Process(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Approve handles POST /api/v1/documents/:id/approve
func (h *PipelineHandler) Approve(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := h.docID(c)
	if !ok {
		return
	}

	result, err := h.pipelineService.Approve(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Override handles POST /api/v1/documents/:id/override
func (h *PipelineHandler) Override(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := h.docID(c)
	if !ok {
		return
	}

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.pipelineService.Override(c.Request.Context(), userID, docID, req.Classification)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Preview handles GET /api/v1/documents/:id/preview
func (h *PipelineHandler) Preview(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := h.docID(c)
	if !ok {
		return
	}

	url, err := h.pipelineService.GetPreviewURL(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}
