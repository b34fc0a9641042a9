package store

import (
	"log"

	"github.com/nyomansunima/federation-service/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MasterStore owns the application partition: registered applications and
// application types. It never touches identity records; the two partitions
// are stitched only through the federation layer.
type MasterStore struct {
	db *gorm.DB
}

// NewMasterStore opens the application partition database, migrates its
// schema, and seeds the default application type.
func NewMasterStore(driver, dsn string) (*MasterStore, error) {
	db, err := open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.AppType{},
		&models.Application{},
	); err != nil {
		return nil, err
	}

	s := &MasterStore{db: db}
	if err := s.seedData(); err != nil {
		log.Printf("Warning: failed to seed master data: %v", err)
	}
	return s, nil
}

func (s *MasterStore) seedData() error {
	var count int64
	s.db.Model(&models.AppType{}).Count(&count)
	if count > 0 {
		return nil
	}

	appType := &models.AppType{
		ID:          uuid.New().String(),
		Type:        "web",
		Description: "Web application",
	}
	if err := s.db.Create(appType).Error; err != nil {
		return err
	}
	log.Printf("Created default app type: web")
	return nil
}

// GenerateSecretKey produces a fresh application secret: a random uuid
// passed through bcrypt so the stored value is high entropy and never
// guessable from the id space.
func GenerateSecretKey() (string, error) {
	seed := uuid.New().String()
	hashed, err := bcrypt.GenerateFromPassword([]byte(seed), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// GetApplicationByID loads an application, with its type, by primary key
// regardless of status.
func (s *MasterStore) GetApplicationByID(id string) (*models.Application, error) {
	var app models.Application
	err := s.db.Preload("Type").Where("id = ?", id).First(&app).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

// GetActiveApplicationBySecretKey loads an application by its secret key,
// restricted to active status. Non-active applications are unresolvable by
// secret even when the secret string matches.
func (s *MasterStore) GetActiveApplicationBySecretKey(
	secretKey string,
) (*models.Application, error) {
	var app models.Application
	err := s.db.Preload("Type").
		Where("secret_key = ? AND status = ?", secretKey, models.StatusActive).
		First(&app).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

// GetApplicationByName loads an application by its unique name.
func (s *MasterStore) GetApplicationByName(name string) (*models.Application, error) {
	var app models.Application
	err := s.db.Preload("Type").Where("name = ?", name).First(&app).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

// CreateApplication persists a new application.
func (s *MasterStore) CreateApplication(app *models.Application) error {
	err := s.db.Create(app).Error
	if err != nil && isUniqueViolation(err) {
		return ErrNameConflict
	}
	return err
}

// UpdateApplication saves application changes.
func (s *MasterStore) UpdateApplication(app *models.Application) error {
	return s.db.Save(app).Error
}

// DeleteApplication removes an application record.
func (s *MasterStore) DeleteApplication(id string) error {
	return s.db.Where("id = ?", id).Delete(&models.Application{}).Error
}

// ListApplications returns a page of applications matching the optional
// filter, with their types preloaded.
func (s *MasterStore) ListApplications(
	params PaginationParams,
	ids []string,
) ([]models.Application, int64, error) {
	params = params.Normalized()

	query := s.db.Model(&models.Application{})
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

	var apps []models.Application
	err := query.Preload("Type").
		Limit(params.PageSize).
		Offset(params.offset()).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// GetAppTypeByID loads an application type by primary key.
func (s *MasterStore) GetAppTypeByID(id string) (*models.AppType, error) {
	var appType models.AppType
	if err := s.db.Where("id = ?", id).First(&appType).Error; err != nil {
		return nil, notFound(err)
	}
	return &appType, nil
}

// CreateAppType persists a new application type.
func (s *MasterStore) CreateAppType(appType *models.AppType) error {
	err := s.db.Create(appType).Error
	if err != nil && isUniqueViolation(err) {
		return ErrNameConflict
	}
	return err
}

// UpdateAppType saves application type changes.
func (s *MasterStore) UpdateAppType(appType *models.AppType) error {
	return s.db.Save(appType).Error
}

// DeleteAppType removes an application type record.
func (s *MasterStore) DeleteAppType(id string) error {
	return s.db.Where("id = ?", id).Delete(&models.AppType{}).Error
}

// ListAppTypes returns a page of application types matching the optional
// filter.
func (s *MasterStore) ListAppTypes(
	params PaginationParams,
	ids []string,
) ([]models.AppType, int64, error) {
	params = params.Normalized()

	query := s.db.Model(&models.AppType{})
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	if params.Match != "" {
		query = query.Where("type = ?", params.Match)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appTypes []models.AppType
	err := query.
		Limit(params.PageSize).
		Offset(params.offset()).
		Find(&appTypes).Error
	if err != nil {
		return nil, 0, err
	}
	return appTypes, total, nil
}

// Health checks database connectivity.
func (s *MasterStore) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// DB exposes the underlying GORM handle for migrations and tests.
func (s *MasterStore) DB() *gorm.DB {
	return s.db
}
