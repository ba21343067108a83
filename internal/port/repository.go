package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"firmdesk/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// ClientRepository defines the contract for client record persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, ownerID, clientID uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, ownerID, clientID uuid.UUID) error
}

// NoticeRepository defines the contract for notice persistence.
type NoticeRepository interface {
	Create(ctx context.Context, notice *domain.Notice) error
	GetByID(ctx context.Context, ownerID, noticeID uuid.UUID) (*domain.Notice, error)
	GetByDocumentID(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Notice, error)
	List(ctx context.Context, ownerID uuid.UUID, status *domain.NoticeStatus, offset, limit int) ([]domain.Notice, int, error)
	ListDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Notice, error)
	Update(ctx context.Context, notice *domain.Notice) error
	Delete(ctx context.Context, ownerID, noticeID uuid.UUID) error
}

// TransactionRepository defines the contract for the unified transaction ledger.
type TransactionRepository interface {
	CreateBatch(ctx context.Context, txns []domain.Transaction) error
	ListByDocument(ctx context.Context, ownerID, docID uuid.UUID) ([]domain.Transaction, error)
	ListByClient(ctx context.Context, ownerID, clientID uuid.UUID, offset, limit int) ([]domain.Transaction, int, error)
}

// VendorRepository defines the contract for vendor 1099/W-9 persistence.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, ownerID, vendorID uuid.UUID) (*domain.Vendor, error)
	ListByClient(ctx context.Context, ownerID, clientID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error)
	List1099Due(ctx context.Context, ownerID uuid.UUID, threshold float64) ([]domain.Vendor, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
	Delete(ctx context.Context, ownerID, vendorID uuid.UUID) error
}
