package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nyomansunima/federation-service/internal/models"
	"github.com/nyomansunima/federation-service/internal/store"

	"github.com/google/uuid"
)

var (
	ErrProviderNotFound      = errors.New("auth provider not found")
	ErrDuplicateProviderName = errors.New("auth provider name already exists")
)

// UpdateProviderInput carries the updatable provider fields.
type UpdateProviderInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Image       *string `json:"image"`
}

// ProviderService manages the supported authentication methods on the
// identity partition.
type ProviderService struct {
	store *store.AuthStore
}

func NewProviderService(s *store.AuthStore) *ProviderService {
	return &ProviderService{store: s}
}

// FindByID loads a provider by id regardless of status.
func (s *ProviderService) FindByID(ctx context.Context, id string) (*models.Provider, error) {
	provider, err := s.store.GetProviderByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: auth provider with id %s", ErrProviderNotFound, id)
	}
	return provider, nil
}

// List returns a page of providers with pagination metadata.
func (s *ProviderService) List(
	ctx context.Context,
	params store.PaginationParams,
	ids []string,
) ([]models.Provider, store.PaginationResult, error) {
	providers, total, err := s.store.ListProviders(params, ids)
	if err != nil {
		return nil, store.PaginationResult{}, err
	}
	return providers, store.Paginate(total, params), nil
}

// Create registers a new authentication provider in created status.
func (s *ProviderService) Create(
	ctx context.Context,
	name, description, icon, image string,
) (*models.Provider, error) {
	provider := &models.Provider{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Icon:        icon,
		Image:       image,
		Status:      models.StatusCreated,
	}
	if err := s.store.CreateProvider(provider); err != nil {
		if errors.Is(err, store.ErrNameConflict) {
			return nil, fmt.Errorf(
				"%w: a provider named %s already exists", ErrDuplicateProviderName, name)
		}
		return nil, err
	}
	return provider, nil
}

// Activate makes the provider usable for new signups.
func (s *ProviderService) Activate(ctx context.Context, id string) (*models.Provider, error) {
	return s.setStatus(ctx, id, models.StatusActive)
}

// Disable blocks the provider from new signups without removing it.
func (s *ProviderService) Disable(ctx context.Context, id string) (*models.Provider, error) {
	return s.setStatus(ctx, id, models.StatusDisable)
}

func (s *ProviderService) setStatus(
	ctx context.Context,
	id, status string,
) (*models.Provider, error) {
	provider, err := s.store.GetProviderByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: auth provider with id %s", ErrProviderNotFound, id)
	}

	provider.Status = status
	if err := s.store.UpdateProvider(provider); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessableUpdate, err)
	}
	return provider, nil
}

// Delete removes a provider and returns the deleted record.
func (s *ProviderService) Delete(ctx context.Context, id string) (*models.Provider, error) {
	provider, err := s.store.GetProviderByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: auth provider with id %s", ErrProviderNotFound, id)
	}

	if err := s.store.DeleteProvider(id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedFailure, err)
	}
	return provider, nil
}

// Update applies the given changes to an existing provider.
func (s *ProviderService) Update(
	ctx context.Context,
	id string,
	input UpdateProviderInput,
) (*models.Provider, error) {
	provider, err := s.store.GetProviderByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: auth provider with id %s", ErrProviderNotFound, id)
	}

	if input.Name != nil {
		provider.Name = *input.Name
	}
	if input.Description != nil {
		provider.Description = *input.Description
	}
	if input.Icon != nil {
		provider.Icon = *input.Icon
	}
	if input.Image != nil {
		provider.Image = *input.Image
	}

	if err := s.store.UpdateProvider(provider); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessableUpdate, err)
	}
	return provider, nil
}
