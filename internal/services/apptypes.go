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
	ErrAppTypeNotFound  = errors.New("application type not found")
	ErrDuplicateAppType = errors.New("application type already exists")
)

// AppTypeService manages application type records on the application
// partition.
type AppTypeService struct {
	store *store.MasterStore
}

func NewAppTypeService(s *store.MasterStore) *AppTypeService {
	return &AppTypeService{store: s}
}

// FindByID loads an application type by id.
func (s *AppTypeService) FindByID(ctx context.Context, id string) (*models.AppType, error) {
	appType, err := s.store.GetAppTypeByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: application type with id %s", ErrAppTypeNotFound, id)
	}
	return appType, nil
}

// List returns a page of application types with pagination metadata.
func (s *AppTypeService) List(
	ctx context.Context,
	params store.PaginationParams,
	ids []string,
) ([]models.AppType, store.PaginationResult, error) {
	appTypes, total, err := s.store.ListAppTypes(params, ids)
	if err != nil {
		return nil, store.PaginationResult{}, err
	}
	return appTypes, store.Paginate(total, params), nil
}

// Create registers a new application type.
func (s *AppTypeService) Create(
	ctx context.Context,
	typeName, description string,
) (*models.AppType, error) {
	appType := &models.AppType{
		ID:          uuid.New().String(),
		Type:        typeName,
		Description: description,
	}
	if err := s.store.CreateAppType(appType); err != nil {
		if errors.Is(err, store.ErrNameConflict) {
			return nil, fmt.Errorf(
				"%w: a type named %s already exists", ErrDuplicateAppType, typeName)
		}
		return nil, err
	}
	return appType, nil
}

// Update applies changes to an existing application type.
func (s *AppTypeService) Update(
	ctx context.Context,
	id, typeName, description string,
) (*models.AppType, error) {
	appType, err := s.store.GetAppTypeByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: application type with id %s", ErrAppTypeNotFound, id)
	}

	if typeName != "" {
		appType.Type = typeName
	}
	if description != "" {
		appType.Description = description
	}

	if err := s.store.UpdateAppType(appType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessableUpdate, err)
	}
	return appType, nil
}

// Delete removes an application type and returns the deleted record.
func (s *AppTypeService) Delete(ctx context.Context, id string) (*models.AppType, error) {
	appType, err := s.store.GetAppTypeByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: application type with id %s", ErrAppTypeNotFound, id)
	}

	if err := s.store.DeleteAppType(id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedFailure, err)
	}
	return appType, nil
}
