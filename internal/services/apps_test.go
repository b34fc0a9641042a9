package services

import (
	"context"
	"testing"

	"github.com/nyomansunima/federation-service/internal/models"
	"github.com/nyomansunima/federation-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAppService(t *testing.T) (*AppService, *store.MasterStore) {
	t.Helper()
	s, err := store.NewMasterStore("sqlite", ":memory:")
	require.NoError(t, err)
	return NewAppService(s), s
}

func webTypeID(t *testing.T, s *store.MasterStore) string {
	t.Helper()
	types, _, err := s.ListAppTypes(store.PaginationParams{Page: 1, PageSize: 1}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, types)
	return types[0].ID
}

func TestCreateApplication(t *testing.T) {
	apps, s := setupAppService(t)
	ctx := context.Background()

	app, err := apps.Create(ctx, "Storefront", "Shop frontend", "", "", webTypeID(t, s), "")
	require.NoError(t, err)

	assert.Equal(t, "Storefront", app.Name)
	assert.Equal(t, models.StatusCreated, app.Status)
	assert.Equal(t, "1.0.0", app.Version)
	assert.NotEmpty(t, app.SecretKey)
	assert.Equal(t, "web", app.Type.Type)
}

func TestCreateApplicationDuplicateName(t *testing.T) {
	apps, s := setupAppService(t)
	ctx := context.Background()

	_, err := apps.Create(ctx, "Twice", "", "", "", webTypeID(t, s), "")
	require.NoError(t, err)

	_, err = apps.Create(ctx, "Twice", "", "", "", webTypeID(t, s), "")
	assert.ErrorIs(t, err, ErrDuplicateAppName)
}

func TestFindBySecretKeyRequiresActive(t *testing.T) {
	apps, s := setupAppService(t)
	ctx := context.Background()

	app, err := apps.Create(ctx, "Gated", "", "", "", webTypeID(t, s), "")
	require.NoError(t, err)

	// Freshly created applications are not yet active; the secret does not
	// resolve.
	_, err = apps.FindBySecretKey(ctx, app.SecretKey)
	assert.ErrorIs(t, err, ErrAppNotFound)

	_, err = apps.Activate(ctx, app.ID)
	require.NoError(t, err)

	resolved, err := apps.FindBySecretKey(ctx, app.SecretKey)
	require.NoError(t, err)
	assert.Equal(t, app.ID, resolved.ID)

	// Lookup by id works regardless of status.
	byID, err := apps.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, byID.Status)
}

func TestUpdateApplication(t *testing.T) {
	apps, s := setupAppService(t)
	ctx := context.Background()

	app, err := apps.Create(ctx, "Mutable", "", "", "", webTypeID(t, s), "")
	require.NoError(t, err)

	name := "Renamed"
	version := "2.0.0"
	updated, err := apps.Update(ctx, app.ID, UpdateAppInput{
		Name:    &name,
		Version: &version,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "2.0.0", updated.Version)
	assert.Equal(t, app.SecretKey, updated.SecretKey)

	_, err = apps.Update(ctx, "missing", UpdateAppInput{Name: &name})
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestDeleteApplicationReturnsRecord(t *testing.T) {
	apps, s := setupAppService(t)
	ctx := context.Background()

	app, err := apps.Create(ctx, "Transient", "", "", "", webTypeID(t, s), "")
	require.NoError(t, err)

	deleted, err := apps.Delete(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, deleted.ID)

	_, err = apps.FindByID(ctx, app.ID)
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestProviderServiceLifecycle(t *testing.T) {
	s := setupAuthStore(t)
	providers := NewProviderService(s)
	ctx := context.Background()

	created, err := providers.Create(ctx, "Google", "Sign in with Google", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, created.Status)

	activated, err := providers.Activate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, activated.Status)

	disabled, err := providers.Disable(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisable, disabled.Status)

	desc := "OAuth sign in"
	updated, err := providers.Update(ctx, created.ID, UpdateProviderInput{
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, "OAuth sign in", updated.Description)

	deleted, err := providers.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Google", deleted.Name)

	_, err = providers.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = providers.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = providers.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestAppTypeServiceLifecycle(t *testing.T) {
	_, s := setupAppService(t)
	types := NewAppTypeService(s)
	ctx := context.Background()

	created, err := types.Create(ctx, "mobile", "Mobile application")
	require.NoError(t, err)

	updated, err := types.Update(ctx, created.ID, "", "Native mobile application")
	require.NoError(t, err)
	assert.Equal(t, "mobile", updated.Type)
	assert.Equal(t, "Native mobile application", updated.Description)

	deleted, err := types.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = types.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAppTypeNotFound)
}
