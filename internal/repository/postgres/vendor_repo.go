package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

type vendorRepo struct {
	db *sqlx.DB
}

// NewVendorRepo creates a new PostgreSQL-backed VendorRepository.
func NewVendorRepo(db *sqlx.DB) port.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *domain.Vendor) error {
	now := time.Now().UTC()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vendors (id, owner_id, client_id, name, tax_id, w9_status,
			requires_1099, paid_year_to_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		vendor.ID, vendor.OwnerID, vendor.ClientID, vendor.Name, vendor.TaxID,
		vendor.W9Status, vendor.Requires1099, vendor.PaidYearToDate,
		vendor.CreatedAt, vendor.UpdatedAt)
	if err != nil {
		return fmt.Errorf("vendorRepo.Create: %w", err)
	}
	return nil
}

func (r *vendorRepo) GetByID(ctx context.Context, ownerID, vendorID uuid.UUID) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := r.db.GetContext(ctx, &vendor,
		"SELECT * FROM vendors WHERE id = $1 AND owner_id = $2", vendorID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendorRepo.GetByID: %w", err)
	}
	return &vendor, nil
}

func (r *vendorRepo) ListByClient(ctx context.Context, ownerID, clientID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM vendors WHERE owner_id = $1 AND client_id = $2",
		ownerID, clientID)
	if err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.ListByClient count: %w", err)
	}

	var vendors []domain.Vendor
	err = r.db.SelectContext(ctx, &vendors,
		`SELECT * FROM vendors WHERE owner_id = $1 AND client_id = $2
		 ORDER BY name ASC LIMIT $3 OFFSET $4`,
		ownerID, clientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.ListByClient: %w", err)
	}
	return vendors, total, nil
}

func (r *vendorRepo) List1099Due(ctx context.Context, ownerID uuid.UUID, threshold float64) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	err := r.db.SelectContext(ctx, &vendors,
		`SELECT * FROM vendors
		 WHERE owner_id = $1 AND requires_1099 = TRUE AND paid_year_to_date >= $2
		 ORDER BY paid_year_to_date DESC`,
		ownerID, threshold)
	if err != nil {
		return nil, fmt.Errorf("vendorRepo.List1099Due: %w", err)
	}
	return vendors, nil
}

func (r *vendorRepo) Update(ctx context.Context, vendor *domain.Vendor) error {
	vendor.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE vendors SET name = $1, tax_id = $2, w9_status = $3,
			requires_1099 = $4, paid_year_to_date = $5, updated_at = $6
		 WHERE id = $7 AND owner_id = $8`,
		vendor.Name, vendor.TaxID, vendor.W9Status,
		vendor.Requires1099, vendor.PaidYearToDate, vendor.UpdatedAt,
		vendor.ID, vendor.OwnerID)
	if err != nil {
		return fmt.Errorf("vendorRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

func (r *vendorRepo) Delete(ctx context.Context, ownerID, vendorID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM vendors WHERE id = $1 AND owner_id = $2", vendorID, ownerID)
	if err != nil {
		return fmt.Errorf("vendorRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}
