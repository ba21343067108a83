package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

func newDocRepoWithMock(t *testing.T) (port.DocumentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return NewDocumentRepo(sqlx.NewDb(db, "sqlmock")), mock, func() { _ = db.Close() }
}

func TestDocumentRepo_GetByID_NotFound(t *testing.T) {
	repo, mock, done := newDocRepoWithMock(t)
	defer done()

	ownerID := uuid.New()
	docID := uuid.New()

	mock.ExpectQuery("SELECT \\* FROM documents").
		WithArgs(docID, ownerID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), ownerID, docID)
	if err != domain.ErrDocumentNotFound {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDocumentRepo_BeginProcessing_ClaimsApprovalStep(t *testing.T) {
	repo, mock, done := newDocRepoWithMock(t)
	defer done()

	ownerID := uuid.New()
	docID := uuid.New()

	mock.ExpectExec("UPDATE documents SET pipeline_step").
		WithArgs(domain.StepSpecificProcessing, sqlmock.AnyArg(), docID, ownerID, domain.StepNeedsApproval).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.BeginProcessing(context.Background(), ownerID, docID); err != nil {
		t.Fatalf("expected claim to succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDocumentRepo_BeginProcessing_LostRace(t *testing.T) {
	repo, mock, done := newDocRepoWithMock(t)
	defer done()

	ownerID := uuid.New()
	docID := uuid.New()

	mock.ExpectExec("UPDATE documents SET pipeline_step").
		WithArgs(domain.StepSpecificProcessing, sqlmock.AnyArg(), docID, ownerID, domain.StepNeedsApproval).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT pipeline_step FROM documents").
		WithArgs(docID, ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"pipeline_step"}).AddRow(string(domain.StepSpecificProcessing)))

	err := repo.BeginProcessing(context.Background(), ownerID, docID)
	if err != domain.ErrProcessingInProgress {
		t.Fatalf("expected ErrProcessingInProgress, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDocumentRepo_BeginProcessing_MissingDocument(t *testing.T) {
	repo, mock, done := newDocRepoWithMock(t)
	defer done()

	ownerID := uuid.New()
	docID := uuid.New()

	mock.ExpectExec("UPDATE documents SET pipeline_step").
		WithArgs(domain.StepSpecificProcessing, sqlmock.AnyArg(), docID, ownerID, domain.StepNeedsApproval).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT pipeline_step FROM documents").
		WithArgs(docID, ownerID).
		WillReturnError(sql.ErrNoRows)

	err := repo.BeginProcessing(context.Background(), ownerID, docID)
	if err != domain.ErrDocumentNotFound {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDocumentRepo_BeginProcessing_NotAwaitingApproval(t *testing.T) {
	repo, mock, done := newDocRepoWithMock(t)
	defer done()

	ownerID := uuid.New()
	docID := uuid.New()

	mock.ExpectExec("UPDATE documents SET pipeline_step").
		WithArgs(domain.StepSpecificProcessing, sqlmock.AnyArg(), docID, ownerID, domain.StepNeedsApproval).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT pipeline_step FROM documents").
		WithArgs(docID, ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"pipeline_step"}).AddRow(string(domain.StepIdle)))

	err := repo.BeginProcessing(context.Background(), ownerID, docID)
	if err != domain.ErrNotClassified {
		t.Fatalf("expected ErrNotClassified, got %v", err)
	}
}

func TestDocumentRepo_BeginProcessing_AlreadyCompleted(t *testing.T) {
	repo, mock, done := newDocRepoWithMock(t)
	defer done()

	ownerID := uuid.New()
	docID := uuid.New()

	mock.ExpectExec("UPDATE documents SET pipeline_step").
		WithArgs(domain.StepSpecificProcessing, sqlmock.AnyArg(), docID, ownerID, domain.StepNeedsApproval).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT pipeline_step FROM documents").
		WithArgs(docID, ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"pipeline_step"}).AddRow(string(domain.StepCompleted)))

	err := repo.BeginProcessing(context.Background(), ownerID, docID)
	if err != domain.ErrAlreadyProcessed {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestDocumentRepo_UpdateExtraction_NotFound(t *testing.T) {
	repo, mock, done := newDocRepoWithMock(t)
	defer done()

	doc := &domain.Document{ID: uuid.New(), OwnerID: uuid.New()}

	mock.ExpectExec("UPDATE documents SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateExtraction(context.Background(), doc)
	if err != domain.ErrDocumentNotFound {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDocumentRepo_DeleteWithNotice_SingleTransaction(t *testing.T) {
	repo, mock, done := newDocRepoWithMock(t)
	defer done()

	ownerID := uuid.New()
	docID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM notices WHERE document_id").
		WithArgs(docID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM documents WHERE id").
		WithArgs(docID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteWithNotice(context.Background(), ownerID, docID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDocumentRepo_DeleteWithNotice_MissingDocumentRollsBack(t *testing.T) {
	repo, mock, done := newDocRepoWithMock(t)
	defer done()

	ownerID := uuid.New()
	docID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM notices WHERE document_id").
		WithArgs(docID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM documents WHERE id").
		WithArgs(docID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteWithNotice(context.Background(), ownerID, docID)
	if err != domain.ErrDocumentNotFound {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
