package federation

import (
	"context"

	"github.com/nyomansunima/federation-service/internal/services"
)

// ApplicationResolver resolves AppsPayload references on the application
// partition. Key priority: secretKey, then id. Resolution by secret is
// restricted to active applications; resolution by id ignores status.
type ApplicationResolver struct {
	apps *services.AppService
}

func NewApplicationResolver(apps *services.AppService) *ApplicationResolver {
	return &ApplicationResolver{apps: apps}
}

var _ Resolver = (*ApplicationResolver)(nil)

func (r *ApplicationResolver) ResolveReference(
	ctx context.Context,
	ref Reference,
) (any, error) {
	if ref.SecretKey != "" {
		app, err := r.apps.FindBySecretKey(ctx, ref.SecretKey)
		if err != nil {
			return nil, notFoundErr(err, "application", "secretKey", ref.SecretKey)
		}
		return app, nil
	}

	app, err := r.apps.FindByID(ctx, ref.ID)
	if err != nil {
		return nil, notFoundErr(err, "application", "id", ref.ID)
	}
	return app, nil
}
