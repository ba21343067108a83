package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

// ClientInput is the DTO for creating or updating a client.
type ClientInput struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	EntityType string `json:"entity_type"`
	TaxID      string `json:"tax_id"`
}

// ClientList is a paged client listing.
type ClientList struct {
	Clients []domain.Client `json:"clients"`
	Total   int             `json:"total"`
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
}

// ClientService manages the firm's client records.
type ClientService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input ClientInput) (*domain.Client, error)
	Get(ctx context.Context, ownerID, clientID uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, ownerID uuid.UUID, offset, limit int) (*ClientList, error)
	Update(ctx context.Context, ownerID, clientID uuid.UUID, input ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, ownerID, clientID uuid.UUID) error
}

type clientService struct {
	clientRepo port.ClientRepository
}

// NewClientService creates a new ClientService implementation.
func NewClientService(clientRepo port.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) Create(ctx context.Context, ownerID uuid.UUID, input ClientInput) (*domain.Client, error) {
	now := time.Now().UTC()
	client := &domain.Client{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		EntityType: input.EntityType,
		TaxID:      input.TaxID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("clientService.Create: %w", err)
	}
	return client, nil
}

func (s *clientService) Get(ctx context.Context, ownerID, clientID uuid.UUID) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, ownerID, clientID)
}

func (s *clientService) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) (*ClientList, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	clients, total, err := s.clientRepo.List(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("clientService.List: %w", err)
	}
	return &ClientList{Clients: clients, Total: total, Offset: offset, Limit: limit}, nil
}

func (s *clientService) Update(ctx context.Context, ownerID, clientID uuid.UUID, input ClientInput) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}
	client.Name = input.Name
	client.Email = input.Email
	client.Phone = input.Phone
	client.EntityType = input.EntityType
	client.TaxID = input.TaxID
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("clientService.Update: %w", err)
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, ownerID, clientID uuid.UUID) error {
	return s.clientRepo.Delete(ctx, ownerID, clientID)
}
