package federation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nyomansunima/federation-service/internal/core"

	retry "github.com/appleboy/go-httpretry"
)

// RemoteResolver resolves references against a peer service's
// /internal/resolve endpoint. Requests carry the shared-secret or HMAC
// headers added by the underlying auth client; the peer rejects unsigned
// callers before touching its store.
//
// Resolved records flow through an optional cache so repeated composition
// requests do not hammer the owning partition.
type RemoteResolver struct {
	baseURL string
	client  *retry.Client
	cache   core.Cache[json.RawMessage]
	ttl     time.Duration
}

// NewRemoteResolver creates a resolver for one peer service. cache may be
// nil to disable caching.
func NewRemoteResolver(
	baseURL string,
	client *retry.Client,
	refCache core.Cache[json.RawMessage],
	ttl time.Duration,
) *RemoteResolver {
	return &RemoteResolver{
		baseURL: baseURL,
		client:  client,
		cache:   refCache,
		ttl:     ttl,
	}
}

// Resolve posts the reference to the peer and returns the raw record. The
// peer answers 404 for unresolvable references; that surfaces here as
// ErrReferenceNotFound so composition fails outright instead of stitching
// a partial graph.
func (r *RemoteResolver) Resolve(
	ctx context.Context,
	ref Reference,
) (json.RawMessage, error) {
	if r.cache == nil {
		return r.resolve(ctx, ref)
	}

	return r.cache.GetWithFetch(
		ctx,
		cacheKey(ref),
		r.ttl,
		func(ctx context.Context, _ string) (json.RawMessage, error) {
			return r.resolve(ctx, ref)
		},
	)
}

func (r *RemoteResolver) resolve(
	ctx context.Context,
	ref Reference,
) (json.RawMessage, error) {
	payload, err := json.Marshal(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reference: %w", err)
	}

	resp, err := r.client.Post(
		ctx,
		r.baseURL+"/internal/resolve",
		retry.WithBody("application/json", bytes.NewBuffer(payload)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteResolve, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", ErrRemoteResolve)
	}

	switch {
	case resp.StatusCode == 404:
		return nil, fmt.Errorf("%w: %s", ErrReferenceNotFound, ref.Typename)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		return nil, fmt.Errorf(
			"%w: HTTP %d - %s", ErrRemoteResolve, resp.StatusCode, bodyPreview)
	}

	return json.RawMessage(body), nil
}

// cacheKey derives a stable cache key from the reference's typename and
// its highest-priority key field.
func cacheKey(ref Reference) string {
	switch {
	case ref.Email != "":
		return ref.Typename + ":email:" + ref.Email
	case ref.Username != "":
		return ref.Typename + ":username:" + ref.Username
	case ref.SecretKey != "":
		return ref.Typename + ":secret:" + ref.SecretKey
	default:
		return ref.Typename + ":id:" + ref.ID
	}
}
