package federation

import (
	"context"
	"testing"

	"github.com/nyomansunima/federation-service/internal/metrics"
	"github.com/nyomansunima/federation-service/internal/models"
	"github.com/nyomansunima/federation-service/internal/services"
	"github.com/nyomansunima/federation-service/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupIdentityResolver(t *testing.T) (*IdentityResolver, *store.AuthStore) {
	t.Helper()
	s, err := store.NewAuthStore("sqlite", ":memory:")
	require.NoError(t, err)
	users := services.NewUserService(s, bcrypt.MinCost)
	return NewIdentityResolver(users), s
}

func setupApplicationResolver(t *testing.T) (*ApplicationResolver, *services.AppService, *store.MasterStore) {
	t.Helper()
	s, err := store.NewMasterStore("sqlite", ":memory:")
	require.NoError(t, err)
	apps := services.NewAppService(s)
	return NewApplicationResolver(apps), apps, s
}

func createIdentity(t *testing.T, s *store.AuthStore, handle, email string) *models.Identity {
	t.Helper()
	identity := &models.Identity{
		ID:     uuid.New().String(),
		Handle: handle,
		Email:  email,
		Status: models.StatusActive,
	}
	require.NoError(t, s.CreateIdentity(identity))
	return identity
}

func TestIdentityResolverKeyPriority(t *testing.T) {
	resolver, s := setupIdentityResolver(t)
	ctx := context.Background()

	// Two identities arranged so that email and username point at
	// different records: A's email is B's handle.
	a := createIdentity(t, s, "alice", "alice@example.com")
	b := createIdentity(t, s, "alice@example.com", "other@example.com")

	// Email wins over username even when both are present.
	record, err := resolver.ResolveReference(ctx, Reference{
		Typename: TypenameUser,
		Email:    "alice@example.com",
		Username: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, record.(*models.Identity).ID)

	// Username alone resolves through the handle.
	record, err = resolver.ResolveReference(ctx, Reference{
		Typename: TypenameUser,
		Username: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, b.ID, record.(*models.Identity).ID)

	// Id is the last resort.
	record, err = resolver.ResolveReference(ctx, Reference{
		Typename: TypenameUser,
		ID:       a.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, record.(*models.Identity).ID)
}

func TestIdentityResolverNotFound(t *testing.T) {
	resolver, _ := setupIdentityResolver(t)
	ctx := context.Background()

	_, err := resolver.ResolveReference(ctx, Reference{
		Typename: TypenameUser,
		Email:    "nobody@example.com",
	})
	require.ErrorIs(t, err, ErrReferenceNotFound)
	assert.Contains(t, err.Error(), "email nobody@example.com")
}

func TestApplicationResolverSecretKeyPriority(t *testing.T) {
	resolver, apps, s := setupApplicationResolver(t)
	ctx := context.Background()

	types, _, err := s.ListAppTypes(store.PaginationParams{Page: 1, PageSize: 1}, nil)
	require.NoError(t, err)
	typeID := types[0].ID

	active, err := apps.Create(ctx, "Active App", "", "", "", typeID, "")
	require.NoError(t, err)
	_, err = apps.Activate(ctx, active.ID)
	require.NoError(t, err)

	dormant, err := apps.Create(ctx, "Dormant App", "", "", "", typeID, "")
	require.NoError(t, err)

	// Secret key wins over id when both are present.
	record, err := resolver.ResolveReference(ctx, Reference{
		Typename:  TypenameApps,
		SecretKey: active.SecretKey,
		ID:        dormant.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, active.ID, record.(*models.Application).ID)

	// A non-active application's secret never resolves, even when an id
	// fallback is present on the reference.
	_, err = resolver.ResolveReference(ctx, Reference{
		Typename:  TypenameApps,
		SecretKey: dormant.SecretKey,
		ID:        dormant.ID,
	})
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	// Resolution by id ignores status.
	record, err = resolver.ResolveReference(ctx, Reference{
		Typename: TypenameApps,
		ID:       dormant.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, dormant.ID, record.(*models.Application).ID)
}

func TestRegistryDispatch(t *testing.T) {
	identityResolver, s := setupIdentityResolver(t)
	ctx := context.Background()

	registry := NewRegistry(metrics.NewNoopMetrics())
	registry.Register(TypenameUser, identityResolver)

	identity := createIdentity(t, s, "carol", "carol@example.com")

	record, err := registry.Resolve(ctx, Reference{
		Typename: TypenameUser,
		ID:       identity.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, identity.ID, record.(*models.Identity).ID)

	_, err = registry.Resolve(ctx, Reference{Typename: "Mystery"})
	assert.ErrorIs(t, err, ErrUnknownTypename)
}
