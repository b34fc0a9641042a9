package federation

import (
	"context"
	"errors"
	"fmt"

	"github.com/nyomansunima/federation-service/internal/services"
)

// IdentityResolver resolves UserPayload references on the identity
// partition. Key priority: email, then username, then id. Exactly one
// resolution path is taken per call; keys are never merged.
type IdentityResolver struct {
	users *services.UserService
}

func NewIdentityResolver(users *services.UserService) *IdentityResolver {
	return &IdentityResolver{users: users}
}

var _ Resolver = (*IdentityResolver)(nil)

func (r *IdentityResolver) ResolveReference(
	ctx context.Context,
	ref Reference,
) (any, error) {
	switch {
	case ref.Email != "":
		identity, err := r.users.FindByEmail(ctx, ref.Email)
		if err != nil {
			return nil, notFoundErr(err, "user", "email", ref.Email)
		}
		return identity, nil

	case ref.Username != "":
		identity, err := r.users.FindByUsername(ctx, ref.Username)
		if err != nil {
			return nil, notFoundErr(err, "user", "username", ref.Username)
		}
		return identity, nil

	default:
		identity, err := r.users.FindByID(ctx, ref.ID)
		if err != nil {
			return nil, notFoundErr(err, "user", "id", ref.ID)
		}
		return identity, nil
	}
}

// notFoundErr converts a service-level not found into the federation
// sentinel while keeping the entity and key in the message. Other errors
// pass through unchanged.
func notFoundErr(err error, entity, key, value string) error {
	if errors.Is(err, services.ErrUserNotFound) ||
		errors.Is(err, services.ErrAppNotFound) {
		return fmt.Errorf("%w: %s with %s %s", ErrReferenceNotFound, entity, key, value)
	}
	return err
}
