package federation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nyomansunima/federation-service/internal/cache"
	"github.com/nyomansunima/federation-service/internal/client"

	retry "github.com/appleboy/go-httpretry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRetryClient(t *testing.T) *retry.Client {
	t.Helper()
	c, err := client.CreateRetryClient(
		"none", "", "",
		5*time.Second, 1, 10*time.Millisecond, 50*time.Millisecond)
	require.NoError(t, err)
	return c
}

func TestRemoteResolverResolve(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/internal/resolve", r.URL.Path)

		var ref Reference
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ref))
		assert.Equal(t, TypenameUser, ref.Typename)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": ref.ID})
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, newTestRetryClient(t), nil, 0)

	record, err := resolver.Resolve(context.Background(), Reference{
		Typename: TypenameUser,
		ID:       "user-1",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"user-1"}`, string(record))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemoteResolverNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, newTestRetryClient(t), nil, 0)

	_, err := resolver.Resolve(context.Background(), Reference{
		Typename: TypenameApps,
		ID:       "missing",
	})
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestRemoteResolverUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_request"}`))
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, newTestRetryClient(t), nil, 0)

	_, err := resolver.Resolve(context.Background(), Reference{Typename: "Mystery"})
	assert.ErrorIs(t, err, ErrRemoteResolve)
}

func TestRemoteResolverCachesResults(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"app-1"}`))
	}))
	defer server.Close()

	refCache := cache.NewMemoryCache[json.RawMessage]()
	resolver := NewRemoteResolver(server.URL, newTestRetryClient(t), refCache, time.Minute)

	ref := Reference{Typename: TypenameApps, SecretKey: "s3cret"}
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, ref)
	require.NoError(t, err)
	second, err := resolver.Resolve(ctx, ref)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, int32(1), calls.Load(), "second resolve should come from cache")
}
