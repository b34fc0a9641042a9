package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nyomansunima/federation-service/internal/core"
	"github.com/nyomansunima/federation-service/internal/models"
	"github.com/nyomansunima/federation-service/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EmailProviderName is the provider required for email/password signup.
const EmailProviderName = "Email"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProviderUnavailable = errors.New("email provider is not active")
	ErrDuplicateIdentity   = errors.New("identity already exists")
	ErrHashingFailure      = errors.New("failed to hash password")
)

// UserService handles identity lookups and creation on the identity
// partition.
type UserService struct {
	store      *store.AuthStore
	bcryptCost int

	// providerCache keeps the hot active-provider lookup off the database.
	// Nil disables caching.
	providerCache core.Cache[models.Provider]
	providerTTL   time.Duration
}

func NewUserService(s *store.AuthStore, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{store: s, bcryptCost: bcryptCost}
}

// WithProviderCache enables cache-aside lookups of active providers.
func (s *UserService) WithProviderCache(
	c core.Cache[models.Provider],
	ttl time.Duration,
) *UserService {
	s.providerCache = c
	s.providerTTL = ttl
	return s
}

// activeProvider resolves an active provider by name, through the cache
// when one is configured.
func (s *UserService) activeProvider(
	ctx context.Context,
	name string,
) (*models.Provider, error) {
	if s.providerCache == nil {
		return s.store.GetActiveProviderByName(name)
	}

	provider, err := s.providerCache.GetWithFetch(
		ctx,
		"provider:active:"+name,
		s.providerTTL,
		func(ctx context.Context, _ string) (models.Provider, error) {
			p, err := s.store.GetActiveProviderByName(name)
			if err != nil {
				return models.Provider{}, err
			}
			return *p, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// FindByID loads an identity by its unique id.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.Identity, error) {
	identity, err := s.store.GetIdentityByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: user with id %s", ErrUserNotFound, id)
	}
	return identity, nil
}

// FindByUsername loads an identity by its unique handle.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.Identity, error) {
	identity, err := s.store.GetIdentityByHandle(username)
	if err != nil {
		return nil, fmt.Errorf("%w: user with username %s", ErrUserNotFound, username)
	}
	return identity, nil
}

// FindByEmail loads an identity by email address.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	identity, err := s.store.GetIdentityByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: user with email %s", ErrUserNotFound, email)
	}
	return identity, nil
}

// List returns a page of identities with pagination metadata.
func (s *UserService) List(
	ctx context.Context,
	params store.PaginationParams,
	ids []string,
) ([]models.Identity, store.PaginationResult, error) {
	identities, total, err := s.store.ListIdentities(params, ids)
	if err != nil {
		return nil, store.PaginationResult{}, err
	}
	return identities, store.Paginate(total, params), nil
}

// HashPassword produces a one-way bcrypt hash of the raw password.
func (s *UserService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}
	return string(hash), nil
}

// CreateWithEmailPassword creates a new identity whose handle and email
// are the given address, linked to the active Email provider.
//
// Signup through a provider whose status is not active fails with
// ErrProviderUnavailable and leaves no partial state. Re-signup with an
// existing handle is rejected with ErrDuplicateIdentity.
func (s *UserService) CreateWithEmailPassword(
	ctx context.Context,
	email, password string,
) (*models.Identity, error) {
	provider, err := s.activeProvider(ctx, EmailProviderName)
	if err != nil {
		return nil, ErrProviderUnavailable
	}

	if _, err := s.store.GetIdentityByHandle(email); err == nil {
		return nil, fmt.Errorf(
			"%w: the email %s is already taken", ErrDuplicateIdentity, email)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	identity := &models.Identity{
		ID:           uuid.New().String(),
		Handle:       email,
		Email:        email,
		PasswordHash: hash,
		Providers:    []models.Provider{*provider},
		Status:       models.StatusActive,
	}
	if err := s.store.CreateIdentity(identity); err != nil {
		if errors.Is(err, store.ErrHandleConflict) {
			return nil, fmt.Errorf(
				"%w: the email %s is already taken", ErrDuplicateIdentity, email)
		}
		return nil, err
	}

	return identity, nil
}
