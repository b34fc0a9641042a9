package store

import "errors"

var (
	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")

	// ErrHandleConflict is returned when an identity handle already exists
	ErrHandleConflict = errors.New("handle already exists")

	// ErrNameConflict is returned when a unique name (provider, application,
	// or app type) already exists
	ErrNameConflict = errors.New("name already exists")
)
