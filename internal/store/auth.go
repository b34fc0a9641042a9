package store

import (
	"errors"
	"log"
	"strings"

	"github.com/nyomansunima/federation-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthStore owns the identity partition: identities, providers, and
// authorization scopes. All operations are atomic at the single-record
// level; no multi-record transactions are required by the callers.
type AuthStore struct {
	db *gorm.DB
}

// NewAuthStore opens the identity partition database, migrates its schema,
// and seeds the default providers.
func NewAuthStore(driver, dsn string) (*AuthStore, error) {
	db, err := open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Identity{},
		&models.Provider{},
		&models.AuthorizationScope{},
	); err != nil {
		return nil, err
	}

	s := &AuthStore{db: db}
	if err := s.seedData(); err != nil {
		log.Printf("Warning: failed to seed auth data: %v", err)
	}
	return s, nil
}

// seedData creates the built-in Email provider so email/password signup
// works on a fresh database.
func (s *AuthStore) seedData() error {
	var count int64
	s.db.Model(&models.Provider{}).Where("name = ?", "Email").Count(&count)
	if count > 0 {
		return nil
	}

	provider := &models.Provider{
		ID:          uuid.New().String(),
		Name:        "Email",
		Description: "Sign in with email and password",
		Status:      models.StatusActive,
	}
	if err := s.db.Create(provider).Error; err != nil {
		return err
	}
	log.Printf("Created default provider: Email (active)")
	return nil
}

// GetIdentityByID loads an identity by primary key. Deleted identities are
// excluded; they are terminal and must never resolve again.
func (s *AuthStore) GetIdentityByID(id string) (*models.Identity, error) {
	var identity models.Identity
	err := s.db.Where("id = ? AND status <> ?", id, models.StatusDeleted).
		First(&identity).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &identity, nil
}

// GetIdentityByHandle loads an identity by its unique handle.
func (s *AuthStore) GetIdentityByHandle(handle string) (*models.Identity, error) {
	var identity models.Identity
	err := s.db.Where("handle = ? AND status <> ?", handle, models.StatusDeleted).
		First(&identity).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &identity, nil
}

// GetIdentityByEmail loads an identity by email address.
func (s *AuthStore) GetIdentityByEmail(email string) (*models.Identity, error) {
	var identity models.Identity
	err := s.db.Where("email = ? AND status <> ?", email, models.StatusDeleted).
		First(&identity).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &identity, nil
}

// CreateIdentity persists a new identity together with its provider links.
func (s *AuthStore) CreateIdentity(identity *models.Identity) error {
	err := s.db.Create(identity).Error
	if err != nil && isUniqueViolation(err) {
		return ErrHandleConflict
	}
	return err
}

// DeleteIdentity removes an identity record. Used as the compensating
// action when scope creation fails after the identity was persisted.
func (s *AuthStore) DeleteIdentity(id string) error {
	return s.db.Where("id = ?", id).Delete(&models.Identity{}).Error
}

// LoadProviders populates the identity's linked providers.
func (s *AuthStore) LoadProviders(identity *models.Identity) error {
	return s.db.Model(identity).Association("Providers").Find(&identity.Providers)
}

// ListIdentities returns a page of identities matching the optional filter.
// Match compares against the handle exactly; ids restricts to the given
// primary keys.
func (s *AuthStore) ListIdentities(
	params PaginationParams,
	ids []string,
) ([]models.Identity, int64, error) {
	params = params.Normalized()

	query := s.db.Model(&models.Identity{}).
		Where("status <> ?", models.StatusDeleted)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	if params.Match != "" {
		query = query.Where("handle = ?", params.Match)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var identities []models.Identity
	err := query.
		Limit(params.PageSize).
		Offset(params.offset()).
		Find(&identities).Error
	if err != nil {
		return nil, 0, err
	}
	return identities, total, nil
}

// GetActiveProviderByName loads a provider by name, restricted to active
// status. Inactive providers must not create new identities.
func (s *AuthStore) GetActiveProviderByName(name string) (*models.Provider, error) {
	var provider models.Provider
	err := s.db.Where("name = ? AND status = ?", name, models.StatusActive).
		First(&provider).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &provider, nil
}

// GetProviderByID loads a provider by primary key regardless of status.
func (s *AuthStore) GetProviderByID(id string) (*models.Provider, error) {
	var provider models.Provider
	if err := s.db.Where("id = ?", id).First(&provider).Error; err != nil {
		return nil, notFound(err)
	}
	return &provider, nil
}

// CreateProvider persists a new provider.
func (s *AuthStore) CreateProvider(provider *models.Provider) error {
	err := s.db.Create(provider).Error
	if err != nil && isUniqueViolation(err) {
		return ErrNameConflict
	}
	return err
}

// UpdateProvider saves provider changes.
func (s *AuthStore) UpdateProvider(provider *models.Provider) error {
	return s.db.Save(provider).Error
}

// DeleteProvider removes a provider record.
func (s *AuthStore) DeleteProvider(id string) error {
	return s.db.Where("id = ?", id).Delete(&models.Provider{}).Error
}

// ListProviders returns a page of providers matching the optional filter.
func (s *AuthStore) ListProviders(
	params PaginationParams,
	ids []string,
) ([]models.Provider, int64, error) {
	params = params.Normalized()

	query := s.db.Model(&models.Provider{})
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	if params.Match != "" {
		query = query.Where("name = ?", params.Match)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var providers []models.Provider
	err := query.
		Limit(params.PageSize).
		Offset(params.offset()).
		Find(&providers).Error
	if err != nil {
		return nil, 0, err
	}
	return providers, total, nil
}

// GetAuthorizationScope loads the scope binding an identity to one
// application secret. The pair is the lookup key for token validation.
func (s *AuthStore) GetAuthorizationScope(
	identityID, appsSecretKey string,
) (*models.AuthorizationScope, error) {
	var scope models.AuthorizationScope
	err := s.db.
		Where("identity_id = ? AND apps_secret_key = ?", identityID, appsSecretKey).
		First(&scope).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &scope, nil
}

// CreateAuthorizationScope persists a new scope record.
func (s *AuthStore) CreateAuthorizationScope(scope *models.AuthorizationScope) error {
	return s.db.Create(scope).Error
}

// Health checks database connectivity.
func (s *AuthStore) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// DB exposes the underlying GORM handle for migrations and tests.
func (s *AuthStore) DB() *gorm.DB {
	return s.db
}

// notFound converts GORM's not found error into the store sentinel so
// callers never depend on gorm directly.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// GORM surfaces ErrDuplicatedKey for drivers with translated errors; the
// sqlite driver reports the raw constraint message instead.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}
