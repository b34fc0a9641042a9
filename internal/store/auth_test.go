package store

import (
	"testing"

	"github.com/nyomansunima/federation-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthStore(t *testing.T) *AuthStore {
	t.Helper()
	s, err := NewAuthStore("sqlite", ":memory:")
	require.NoError(t, err)
	return s
}

func makeIdentity(t *testing.T, s *AuthStore, handle string) *models.Identity {
	t.Helper()
	identity := &models.Identity{
		ID:           uuid.New().String(),
		Handle:       handle,
		Email:        handle,
		PasswordHash: "$2a$10$hash",
		Status:       models.StatusActive,
	}
	require.NoError(t, s.CreateIdentity(identity))
	return identity
}

func TestSeedCreatesActiveEmailProvider(t *testing.T) {
	s := setupAuthStore(t)

	provider, err := s.GetActiveProviderByName("Email")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, provider.Status)
}

func TestGetIdentityLookups(t *testing.T) {
	s := setupAuthStore(t)
	identity := makeIdentity(t, s, "alice@example.com")

	byID, err := s.GetIdentityByID(identity.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.Handle, byID.Handle)

	byHandle, err := s.GetIdentityByHandle("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, byHandle.ID)

	byEmail, err := s.GetIdentityByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, byEmail.ID)

	_, err = s.GetIdentityByID("missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeletedIdentityNeverResolves(t *testing.T) {
	s := setupAuthStore(t)
	identity := makeIdentity(t, s, "gone@example.com")

	identity.Status = models.StatusDeleted
	require.NoError(t, s.db.Save(identity).Error)

	_, err := s.GetIdentityByID(identity.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.GetIdentityByHandle("gone@example.com")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCreateIdentityDuplicateHandle(t *testing.T) {
	s := setupAuthStore(t)
	makeIdentity(t, s, "dup@example.com")

	err := s.CreateIdentity(&models.Identity{
		ID:     uuid.New().String(),
		Handle: "dup@example.com",
		Email:  "dup@example.com",
		Status: models.StatusActive,
	})
	assert.ErrorIs(t, err, ErrHandleConflict)
}

func TestDeleteIdentityCompensation(t *testing.T) {
	s := setupAuthStore(t)
	identity := makeIdentity(t, s, "undo@example.com")

	require.NoError(t, s.DeleteIdentity(identity.ID))

	_, err := s.GetIdentityByID(identity.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCreateIdentityLinksProviders(t *testing.T) {
	s := setupAuthStore(t)
	provider, err := s.GetActiveProviderByName("Email")
	require.NoError(t, err)

	identity := &models.Identity{
		ID:        uuid.New().String(),
		Handle:    "linked@example.com",
		Email:     "linked@example.com",
		Providers: []models.Provider{*provider},
		Status:    models.StatusActive,
	}
	require.NoError(t, s.CreateIdentity(identity))

	loaded, err := s.GetIdentityByID(identity.ID)
	require.NoError(t, err)
	require.NoError(t, s.LoadProviders(loaded))
	require.Len(t, loaded.Providers, 1)
	assert.Equal(t, "Email", loaded.Providers[0].Name)
}

func TestAuthorizationScopeLookupByPair(t *testing.T) {
	s := setupAuthStore(t)
	identity := makeIdentity(t, s, "scoped@example.com")

	scope := &models.AuthorizationScope{
		ID:            uuid.New().String(),
		IdentityID:    identity.ID,
		Roles:         []string{"member"},
		Permissions:   []string{},
		Groups:        []string{},
		AppsSecretKey: "app-secret",
	}
	require.NoError(t, s.CreateAuthorizationScope(scope))

	found, err := s.GetAuthorizationScope(identity.ID, "app-secret")
	require.NoError(t, err)
	assert.Equal(t, scope.ID, found.ID)
	assert.Equal(t, []string{"member"}, found.Roles)

	// The same identity bound to a different application secret does not
	// resolve.
	_, err = s.GetAuthorizationScope(identity.ID, "other-secret")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestListIdentitiesFilters(t *testing.T) {
	s := setupAuthStore(t)
	a := makeIdentity(t, s, "a@example.com")
	makeIdentity(t, s, "b@example.com")
	makeIdentity(t, s, "c@example.com")

	all, total, err := s.ListIdentities(PaginationParams{Page: 1, PageSize: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	byIDs, total, err := s.ListIdentities(PaginationParams{Page: 1, PageSize: 10}, []string{a.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, byIDs, 1)
	assert.Equal(t, a.ID, byIDs[0].ID)

	paged, total, err := s.ListIdentities(PaginationParams{Page: 2, PageSize: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, paged, 1)
}
