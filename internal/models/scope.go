package models

import "time"

// AuthorizationScope is the role/permission/group bundle binding one
// identity to one application. The (IdentityID, AppsSecretKey) pair is the
// lookup key during token validation; at most one scope per pair is
// semantically valid even though the store does not enforce it structurally.
type AuthorizationScope struct {
	ID         string `gorm:"primaryKey" json:"id"`
	IdentityID string `gorm:"index;not null" json:"identityId"`

	Roles       []string `gorm:"serializer:json" json:"roles"`
	Permissions []string `gorm:"serializer:json" json:"permissions"`
	Groups      []string `gorm:"serializer:json" json:"groups"`

	// AppsSecretKey identifies which application this scope is valid for.
	AppsSecretKey string `gorm:"index;not null" json:"appsSecretKey"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
