package models

import (
	"time"
)

// Record status values shared by identities, providers, and applications.
// Status moves forward only (created -> active -> disable), except that
// disable and active may toggle administratively. Deleted is terminal.
const (
	StatusCreated = "created"
	StatusActive  = "active"
	StatusDisable = "disable"
	StatusDeleted = "deleted"
)

// Identity is a subject capable of authenticating. The handle is unique
// across all identities and may be an email address or any other unique
// identifier. PasswordHash is a one-way bcrypt hash; the raw secret is
// never stored.
type Identity struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Handle       string `gorm:"uniqueIndex;not null" json:"handle"`
	Email        string `gorm:"index" json:"email"`
	PasswordHash string `json:"-"`
	Credentials  string `json:"-"` // opaque external-credential marker

	Providers []Provider `gorm:"many2many:identity_providers" json:"providers,omitempty"`

	Status string `gorm:"not null;default:'active'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsActive reports whether the identity may authenticate.
func (i *Identity) IsActive() bool {
	return i.Status == StatusActive
}

// IsDeleted reports whether the identity is terminally removed and must be
// excluded from validation.
func (i *Identity) IsDeleted() bool {
	return i.Status == StatusDeleted
}
