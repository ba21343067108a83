package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"firmdesk/internal/domain"
	"firmdesk/internal/handler"
	"firmdesk/internal/middleware"
	"firmdesk/internal/service"
	"firmdesk/mocks"
)

func authedContext(t *testing.T, method, path string, body interface{}, userID, docID uuid.UUID) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextKeyUserID, userID)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	return w, c
}

func TestPipelineHandler_Approve_Success(t *testing.T) {
	mockPipeline := new(mocks.MockPipelineService)
	h := handler.NewPipelineHandler(mockPipeline)
	userID := uuid.New()
	docID := uuid.New()

	outcome := domain.OutcomeCompleted
	mockPipeline.On("Approve", mock.Anything, userID, docID).
		Return(&service.ApprovalResult{
			Outcome:  outcome,
			Document: &domain.Document{ID: docID, Outcome: &outcome},
		}, nil)

	w, c := authedContext(t, http.MethodPost, "/api/v1/documents/"+docID.String()+"/approve", nil, userID, docID)

	h.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockPipeline.AssertExpectations(t)
}

func TestPipelineHandler_Approve_ConcurrentConflict(t *testing.T) {
	mockPipeline := new(mocks.MockPipelineService)
	h := handler.NewPipelineHandler(mockPipeline)
	userID := uuid.New()
	docID := uuid.New()

	mockPipeline.On("Approve", mock.Anything, userID, docID).
		Return(nil, domain.ErrProcessingInProgress)

	w, c := authedContext(t, http.MethodPost, "/api/v1/documents/"+docID.String()+"/approve", nil, userID, docID)

	h.Approve(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "PROCESSING_IN_PROGRESS", resp.Error.Code)
}

func TestPipelineHandler_Approve_NotClassified(t *testing.T) {
	mockPipeline := new(mocks.MockPipelineService)
	h := handler.NewPipelineHandler(mockPipeline)
	userID := uuid.New()
	docID := uuid.New()

	mockPipeline.On("Approve", mock.Anything, userID, docID).
		Return(nil, domain.ErrNotClassified)

	w, c := authedContext(t, http.MethodPost, "/api/v1/documents/"+docID.String()+"/approve", nil, userID, docID)

	h.Approve(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPipelineHandler_Override_Success(t *testing.T) {
	mockPipeline := new(mocks.MockPipelineService)
	h := handler.NewPipelineHandler(mockPipeline)
	userID := uuid.New()
	docID := uuid.New()

	mockPipeline.On("Override", mock.Anything, userID, docID, domain.ClassTax).
		Return(&service.ApprovalResult{Outcome: domain.OutcomeCompleted, Document: &domain.Document{ID: docID}}, nil)

	w, c := authedContext(t, http.MethodPost, "/api/v1/documents/"+docID.String()+"/override",
		map[string]string{"classification": "Tax"}, userID, docID)

	h.Override(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockPipeline.AssertExpectations(t)
}

func TestPipelineHandler_Override_MissingClassification(t *testing.T) {
	mockPipeline := new(mocks.MockPipelineService)
	h := handler.NewPipelineHandler(mockPipeline)
	userID := uuid.New()
	docID := uuid.New()

	w, c := authedContext(t, http.MethodPost, "/api/v1/documents/"+docID.String()+"/override",
		map[string]string{}, userID, docID)

	h.Override(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPipeline.AssertNotCalled(t, "Override", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPipelineHandler_Override_InvalidLabel(t *testing.T) {
	mockPipeline := new(mocks.MockPipelineService)
	h := handler.NewPipelineHandler(mockPipeline)
	userID := uuid.New()
	docID := uuid.New()

	mockPipeline.On("Override", mock.Anything, userID, docID, domain.Classification("Unknown")).
		Return(nil, domain.ErrInvalidClassification)

	w, c := authedContext(t, http.MethodPost, "/api/v1/documents/"+docID.String()+"/override",
		map[string]string{"classification": "Unknown"}, userID, docID)

	h.Override(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "INVALID_CLASSIFICATION", resp.Error.Code)
}

func TestPipelineHandler_Process_InvalidDocumentID(t *testing.T) {
	mockPipeline := new(mocks.MockPipelineService)
	h := handler.NewPipelineHandler(mockPipeline)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/not-a-uuid/process", nil)
	c.Set(middleware.ContextKeyUserID, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.Process(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPipeline.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipelineHandler_Preview_ReturnsURL(t *testing.T) {
	mockPipeline := new(mocks.MockPipelineService)
	h := handler.NewPipelineHandler(mockPipeline)
	userID := uuid.New()
	docID := uuid.New()

	mockPipeline.On("GetPreviewURL", mock.Anything, userID, docID).
		Return("https://s3.example/preview", nil)

	w, c := authedContext(t, http.MethodGet, "/api/v1/documents/"+docID.String()+"/preview", nil, userID, docID)

	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://s3.example/preview")
}

func TestPipelineHandler_MissingUserContext(t *testing.T) {
	mockPipeline := new(mocks.MockPipelineService)
	h := handler.NewPipelineHandler(mockPipeline)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/abc/process", nil)

	h.Process(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
