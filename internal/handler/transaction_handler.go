package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"firmdesk/internal/service"
)

// TransactionHandler handles unified ledger endpoints.
type TransactionHandler struct {
	transactionService service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// ListByDocument handles GET /api/v1/documents/:id/transactions
func (h *TransactionHandler) ListByDocument(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document id")
		return
	}

	txns, err := h.transactionService.ListByDocument(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, txns)
}

// ListByClient handles GET /api/v1/clients/:id/transactions
func (h *TransactionHandler) ListByClient(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid client id")
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	list, err := h.transactionService.ListByClient(c.Request.Context(), userID, clientID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, list.Transactions, PagMeta{Total: list.Total, Offset: list.Offset, Limit: list.Limit})
}

// ExportByClient handles GET /api/v1/clients/:id/transactions/export
func (h *TransactionHandler) ExportByClient(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid client id")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transactions_%s.xlsx", clientID))

	if err := h.transactionService.ExportByClient(c.Request.Context(), c.Writer, userID, clientID); err != nil {
		HandleError(c, err)
		return
	}
}
