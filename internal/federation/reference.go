package federation

import (
	"context"
	"fmt"

	"github.com/nyomansunima/federation-service/internal/metrics"
)

// Typename tags carried by cross-partition references.
const (
	TypenameUser = "UserPayload"
	TypenameApps = "AppsPayload"
)

// Reference is an opaque typed reference to a record owned by one
// partition. Which key fields are honored, and in which priority order,
// is declared by the resolver registered for the typename.
type Reference struct {
	Typename  string `json:"__typename"`
	ID        string `json:"id,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	SecretKey string `json:"secretKey,omitempty"`
}

// Resolver resolves references of a single typename into full records.
// Implementations must be safe for concurrent use; resolution is a pure
// read with no ordering dependency between calls.
type Resolver interface {
	ResolveReference(ctx context.Context, ref Reference) (any, error)
}

// Registry dispatches references to the resolver declared for their
// typename. Registration happens once at startup; Resolve may then be
// called concurrently.
type Registry struct {
	resolvers map[string]Resolver
	metrics   metrics.Recorder
}

func NewRegistry(recorder metrics.Recorder) *Registry {
	return &Registry{
		resolvers: make(map[string]Resolver),
		metrics:   recorder,
	}
}

// Register declares the resolver for one typename.
func (r *Registry) Register(typename string, resolver Resolver) {
	r.resolvers[typename] = resolver
}

// Resolve dispatches the reference to its typename's resolver and returns
// the full record. A reference that does not resolve fails outright; it
// never yields a partial or empty object.
func (r *Registry) Resolve(ctx context.Context, ref Reference) (any, error) {
	resolver, ok := r.resolvers[ref.Typename]
	if !ok {
		r.metrics.RecordReferenceResolution(ref.Typename, "unknown_typename")
		return nil, fmt.Errorf("%w: %s", ErrUnknownTypename, ref.Typename)
	}

	record, err := resolver.ResolveReference(ctx, ref)
	if err != nil {
		r.metrics.RecordReferenceResolution(ref.Typename, "not_found")
		return nil, err
	}

	r.metrics.RecordReferenceResolution(ref.Typename, "success")
	return record, nil
}
