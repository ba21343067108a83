package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

// Reporting1099Threshold is the year-to-date payment total above which a
// vendor needs a 1099.
const Reporting1099Threshold = 600.0

// VendorInput is the DTO for creating or updating a vendor.
type VendorInput struct {
	ClientID       uuid.UUID       `json:"client_id" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	TaxID          string          `json:"tax_id"`
	W9Status       domain.W9Status `json:"w9_status"`
	Requires1099   bool            `json:"requires_1099"`
	PaidYearToDate float64         `json:"paid_year_to_date"`
}

// VendorList is a paged vendor listing.
type VendorList struct {
	Vendors []domain.Vendor `json:"vendors"`
	Total   int             `json:"total"`
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
}

// VendorService tracks vendor W-9 collection and 1099 obligations.
type VendorService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input VendorInput) (*domain.Vendor, error)
	Get(ctx context.Context, ownerID, vendorID uuid.UUID) (*domain.Vendor, error)
	ListByClient(ctx context.Context, ownerID, clientID uuid.UUID, offset, limit int) (*VendorList, error)
	List1099Due(ctx context.Context, ownerID uuid.UUID) ([]domain.Vendor, error)
	Update(ctx context.Context, ownerID, vendorID uuid.UUID, input VendorInput) (*domain.Vendor, error)
	Delete(ctx context.Context, ownerID, vendorID uuid.UUID) error
}

type vendorService struct {
	vendorRepo port.VendorRepository
}

// NewVendorService creates a new VendorService implementation.
func NewVendorService(vendorRepo port.VendorRepository) VendorService {
	return &vendorService{vendorRepo: vendorRepo}
}

func (s *vendorService) Create(ctx context.Context, ownerID uuid.UUID, input VendorInput) (*domain.Vendor, error) {
	w9 := input.W9Status
	if w9 == "" {
		w9 = domain.W9Missing
	}
	if !domain.ValidW9Statuses[w9] {
		return nil, fmt.Errorf("vendorService.Create: invalid w9 status %q", w9)
	}

	now := time.Now().UTC()
	vendor := &domain.Vendor{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		ClientID:       input.ClientID,
		Name:           input.Name,
		TaxID:          input.TaxID,
		W9Status:       w9,
		Requires1099:   input.Requires1099,
		PaidYearToDate: input.PaidYearToDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("vendorService.Create: %w", err)
	}
	return vendor, nil
}

func (s *vendorService) Get(ctx context.Context, ownerID, vendorID uuid.UUID) (*domain.Vendor, error) {
	return s.vendorRepo.GetByID(ctx, ownerID, vendorID)
}

func (s *vendorService) ListByClient(ctx context.Context, ownerID, clientID uuid.UUID, offset, limit int) (*VendorList, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	vendors, total, err := s.vendorRepo.ListByClient(ctx, ownerID, clientID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("vendorService.ListByClient: %w", err)
	}
	return &VendorList{Vendors: vendors, Total: total, Offset: offset, Limit: limit}, nil
}

func (s *vendorService) List1099Due(ctx context.Context, ownerID uuid.UUID) ([]domain.Vendor, error) {
	vendors, err := s.vendorRepo.List1099Due(ctx, ownerID, Reporting1099Threshold)
	if err != nil {
		return nil, fmt.Errorf("vendorService.List1099Due: %w", err)
	}
	return vendors, nil
}

func (s *vendorService) Update(ctx context.Context, ownerID, vendorID uuid.UUID, input VendorInput) (*domain.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, ownerID, vendorID)
	if err != nil {
		return nil, err
	}
	if input.W9Status != "" {
		if !domain.ValidW9Statuses[input.W9Status] {
			return nil, fmt.Errorf("vendorService.Update: invalid w9 status %q", input.W9Status)
		}
		vendor.W9Status = input.W9Status
	}
	vendor.Name = input.Name
	vendor.TaxID = input.TaxID
	vendor.Requires1099 = input.Requires1099
	vendor.PaidYearToDate = input.PaidYearToDate
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, fmt.Errorf("vendorService.Update: %w", err)
	}
	return vendor, nil
}

func (s *vendorService) Delete(ctx context.Context, ownerID, vendorID uuid.UUID) error {
	return s.vendorRepo.Delete(ctx, ownerID, vendorID)
}
