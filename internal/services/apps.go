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
	ErrAppNotFound      = errors.New("application not found")
	ErrDuplicateAppName = errors.New("application name already exists")

	// ErrUnprocessableUpdate wraps a persistence failure during update so
	// the raw storage error never leaks to the caller
	ErrUnprocessableUpdate = errors.New("cannot update the record")

	// ErrUnexpectedFailure wraps an unexpected persistence failure during
	// delete
	ErrUnexpectedFailure = errors.New("unexpected failure")
)

// UpdateAppInput carries the updatable application fields. Nil pointers
// leave the stored value untouched.
type UpdateAppInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Image       *string `json:"image"`
	TypeID      *string `json:"typeId"`
	Version     *string `json:"version"`
}

// AppService manages registered applications on the application partition.
type AppService struct {
	store *store.MasterStore
}

func NewAppService(s *store.MasterStore) *AppService {
	return &AppService{store: s}
}

// FindByID loads an application by id regardless of status.
func (s *AppService) FindByID(ctx context.Context, id string) (*models.Application, error) {
	app, err := s.store.GetApplicationByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: application with id %s", ErrAppNotFound, id)
	}
	return app, nil
}

// FindBySecretKey loads an application by its secret key. Only active
// applications resolve by secret; anything else is not found even when the
// secret string matches.
func (s *AppService) FindBySecretKey(ctx context.Context, secretKey string) (*models.Application, error) {
	app, err := s.store.GetActiveApplicationBySecretKey(secretKey)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: no active application matches the given secret key", ErrAppNotFound)
	}
	return app, nil
}

// List returns a page of applications with pagination metadata.
func (s *AppService) List(
	ctx context.Context,
	params store.PaginationParams,
	ids []string,
) ([]models.Application, store.PaginationResult, error) {
	apps, total, err := s.store.ListApplications(params, ids)
	if err != nil {
		return nil, store.PaginationResult{}, err
	}
	return apps, store.Paginate(total, params), nil
}

// Create registers a new application. The name must be unique; the secret
// key is generated server-side and returned exactly once in the created
// record.
func (s *AppService) Create(
	ctx context.Context,
	name, description, icon, image, typeID, version string,
) (*models.Application, error) {
	if _, err := s.store.GetApplicationByName(name); err == nil {
		return nil, fmt.Errorf(
			"%w: an application named %s already exists", ErrDuplicateAppName, name)
	}

	secretKey, err := store.GenerateSecretKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedFailure, err)
	}

	if version == "" {
		version = "1.0.0"
	}
	app := &models.Application{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Icon:        icon,
		Image:       image,
		TypeID:      typeID,
		Version:     version,
		SecretKey:   secretKey,
		Status:      models.StatusCreated,
	}
	if err := s.store.CreateApplication(app); err != nil {
		if errors.Is(err, store.ErrNameConflict) {
			return nil, fmt.Errorf(
				"%w: an application named %s already exists", ErrDuplicateAppName, name)
		}
		return nil, err
	}
	return s.FindByID(ctx, app.ID)
}

// Activate moves an application to active status so it can authenticate
// requests bound to it.
func (s *AppService) Activate(ctx context.Context, id string) (*models.Application, error) {
	app, err := s.store.GetApplicationByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: application with id %s", ErrAppNotFound, id)
	}

	app.Status = models.StatusActive
	if err := s.store.UpdateApplication(app); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessableUpdate, err)
	}
	return app, nil
}

// Update applies the given changes to an existing application. A
// persistence failure is wrapped rather than leaked raw.
func (s *AppService) Update(
	ctx context.Context,
	id string,
	input UpdateAppInput,
) (*models.Application, error) {
	app, err := s.store.GetApplicationByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: application with id %s", ErrAppNotFound, id)
	}

	if input.Name != nil {
		app.Name = *input.Name
	}
	if input.Description != nil {
		app.Description = *input.Description
	}
	if input.Icon != nil {
		app.Icon = *input.Icon
	}
	if input.Image != nil {
		app.Image = *input.Image
	}
	if input.TypeID != nil {
		app.TypeID = *input.TypeID
	}
	if input.Version != nil {
		app.Version = *input.Version
	}

	if err := s.store.UpdateApplication(app); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessableUpdate, err)
	}
	return s.FindByID(ctx, id)
}

// Delete removes an application and returns the deleted record.
func (s *AppService) Delete(ctx context.Context, id string) (*models.Application, error) {
	app, err := s.store.GetApplicationByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: application with id %s", ErrAppNotFound, id)
	}

	if err := s.store.DeleteApplication(id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedFailure, err)
	}
	return app, nil
}
