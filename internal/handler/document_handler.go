package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
	"firmdesk/internal/service"
)

// DocumentHandler handles document upload and management endpoints.
type DocumentHandler struct {
	uploadService   service.UploadService
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(uploadService service.UploadService, documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{uploadService: uploadService, documentService: documentService}
}

// uploadResponse is the per-file wire shape for upload results.
type uploadResponse struct {
	Document *domain.Document       `json:"document"`
	Progress []domain.UploadProgress `json:"progress"`
	Error    string                 `json:"error,omitempty"`
}

// Upload handles POST /api/v1/documents/upload
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	opts, err := uploadOptionsFromForm(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var checkpoints []domain.UploadProgress
	doc, err := h.uploadService.Upload(c.Request.Context(), userID, uploadInputFromHeader(file, header), opts, func(p domain.UploadProgress) {
		checkpoints = append(checkpoints, p)
	})
	if err != nil {
		status, code, msg := MapDomainError(err)
		c.JSON(status, APIResponse{
			Success: false,
			Data:    uploadResponse{Progress: checkpoints, Error: msg},
			Error:   &APIError{Code: code, Message: msg},
		})
		return
	}

	RespondCreated(c, uploadResponse{Document: doc, Progress: checkpoints})
}

// UploadBatch handles POST /api/v1/documents/upload-batch
func (h *DocumentHandler) UploadBatch(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "files field is required")
		return
	}

	opts, err := uploadOptionsFromForm(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	responses := make([]uploadResponse, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			responses = append(responses, uploadResponse{Error: fmt.Sprintf("opening %s: %v", header.Filename, err)})
			continue
		}

		var checkpoints []domain.UploadProgress
		doc, err := h.uploadService.Upload(c.Request.Context(), userID, uploadInputFromHeader(file, header), opts, func(p domain.UploadProgress) {
			checkpoints = append(checkpoints, p)
		})
		_ = file.Close()

		resp := uploadResponse{Document: doc, Progress: checkpoints}
		if err != nil {
			_, _, msg := MapDomainError(err)
			resp.Error = msg
		}
		responses = append(responses, resp)
	}

	RespondOK(c, responses)
}

func uploadInputFromHeader(file multipart.File, header *multipart.FileHeader) service.UploadFileInput {
	contentType := header.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return service.UploadFileInput{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}
}

func uploadOptionsFromForm(c *gin.Context) (service.UploadOptions, error) {
	opts := service.UploadOptions{
		RunOCR: c.DefaultPostForm("run_ocr", "true") == "true",
		RunAI:  c.DefaultPostForm("run_ai", "true") == "true",
	}
	if clientIDStr := c.PostForm("client_id"); clientIDStr != "" {
		clientID, err := uuid.Parse(clientIDStr)
		if err != nil {
			return opts, fmt.Errorf("invalid client_id format")
		}
		opts.ClientID = &clientID
	}
	if categoryStr := c.PostForm("category"); categoryStr != "" {
		category := domain.DocumentCategory(categoryStr)
		if !domain.ValidCategories[category] {
			return opts, fmt.Errorf("invalid category %q", categoryStr)
		}
		opts.Category = &category
	}
	return opts, nil
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	filter := port.DocumentFilter{}
	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := uuid.Parse(clientIDStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid client_id format")
			return
		}
		filter.ClientID = &clientID
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		category := domain.DocumentCategory(categoryStr)
		if !domain.ValidCategories[category] {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid category")
			return
		}
		filter.Category = &category
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	list, err := h.documentService.List(c.Request.Context(), userID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, list.Documents, PagMeta{Total: list.Total, Offset: list.Offset, Limit: list.Limit})
}

// Get handles GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document id")
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Download handles GET /api/v1/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document id")
		return
	}

	data, contentType, err := h.documentService.Download(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// Delete handles DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document id")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), userID, docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": docID})
}
