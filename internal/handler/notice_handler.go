package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"firmdesk/internal/domain"
	"firmdesk/internal/service"
)

// NoticeHandler handles tax-authority notice endpoints.
type NoticeHandler struct {
	noticeService service.NoticeService
}

// NewNoticeHandler creates a new NoticeHandler.
func NewNoticeHandler(noticeService service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// List handles GET /api/v1/notices
func (h *NoticeHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var status *domain.NoticeStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := domain.NoticeStatus(statusStr)
		if !domain.ValidNoticeStatuses[s] {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid status")
			return
		}
		status = &s
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	list, err := h.noticeService.List(c.Request.Context(), userID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, list.Notices, PagMeta{Total: list.Total, Offset: list.Offset, Limit: list.Limit})
}

// Get handles GET /api/v1/notices/:id
func (h *NoticeHandler) Get(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	noticeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid notice id")
		return
	}

	notice, err := h.noticeService.Get(c.Request.Context(), userID, noticeID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, notice)
}

// Update handles PATCH /api/v1/notices/:id
func (h *NoticeHandler) Update(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	noticeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid notice id")
		return
	}

	var input service.NoticeUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	notice, err := h.noticeService.Update(c.Request.Context(), userID, noticeID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, notice)
}

// Delete handles DELETE /api/v1/notices/:id
func (h *NoticeHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	noticeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid notice id")
		return
	}

	if err := h.noticeService.Delete(c.Request.Context(), userID, noticeID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": noticeID})
}
