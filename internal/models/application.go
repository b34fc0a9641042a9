package models

import "time"

// Application is a registered client entitled to issue and consume tokens.
// The secret key is generated server-side at creation time and hashed
// before storage; it is never guessable and never regenerated.
type Application struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`

	TypeID string  `gorm:"index" json:"typeId"`
	Type   AppType `gorm:"foreignKey:TypeID" json:"type"`

	Version   string `gorm:"not null;default:'1.0.0'" json:"version"`
	SecretKey string `gorm:"index;not null" json:"secretKey"`

	Status  string     `gorm:"not null;default:'created'" json:"status"`
	Expires *time.Time `json:"expires,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsActive reports whether the application may authenticate requests bound
// to it. An expired application is never active.
func (a *Application) IsActive() bool {
	if a.Status != StatusActive {
		return false
	}
	if a.Expires != nil && a.Expires.Before(time.Now()) {
		return false
	}
	return true
}

// AppType categorizes registered applications (e.g. web, mobile, service).
type AppType struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Type        string `gorm:"uniqueIndex;not null" json:"type"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
