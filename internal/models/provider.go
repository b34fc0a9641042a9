package models

import "time"

// Provider is a supported authentication method, e.g. "Email" for
// email/password signup. Only providers with status active may be used to
// create new identities through that method.
type Provider struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`

	Status string `gorm:"not null;default:'created'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsActive reports whether the provider may be used for new signups.
func (p *Provider) IsActive() bool {
	return p.Status == StatusActive
}
