package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nyomansunima/federation-service/internal/metrics"
	"github.com/nyomansunima/federation-service/internal/models"
	"github.com/nyomansunima/federation-service/internal/store"
	"github.com/nyomansunima/federation-service/internal/token"

	"github.com/google/uuid"
)

var (
	// ErrUnknownSubject indicates the token subject no longer resolves to
	// an existing identity
	ErrUnknownSubject = errors.New("unknown subject")

	// ErrScopeNotFound indicates no authorization scope binds the subject
	// to the application secret carried by the token
	ErrScopeNotFound = errors.New("authorization scope not found")
)

// TokenPayload is the issued bearer artifact returned to the caller.
type TokenPayload struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AppsReference is the opaque cross-partition reference embedded in the
// signup response. The gateway resolves it against the application
// partition; this service never loads the application record itself.
type AppsReference struct {
	Typename  string `json:"__typename"`
	ID        string `json:"id"`
	SecretKey string `json:"secretKey"`
}

// AuthorizationView is the fully re-hydrated authorization state for one
// identity within one application scope.
type AuthorizationView struct {
	ID          string            `json:"id"`
	Identity    *models.Identity  `json:"user"`
	Providers   []models.Provider `json:"providers"`
	Roles       []string          `json:"roles"`
	Permissions []string          `json:"permissions"`
	Groups      []string          `json:"groups"`
}

// UserAuthView composes the signup result: the authorization view plus the
// issued token and the application reference.
type UserAuthView struct {
	AuthorizationView
	Auth TokenPayload  `json:"auth"`
	Apps AppsReference `json:"apps"`
}

// AuthService issues and validates bearer tokens. It is the single
// chokepoint binding a token to one specific application scope.
type AuthService struct {
	users   *UserService
	store   *store.AuthStore
	codec   *token.Codec
	metrics metrics.Recorder
	now     func() time.Time
}

func NewAuthService(
	users *UserService,
	s *store.AuthStore,
	codec *token.Codec,
	recorder metrics.Recorder,
) *AuthService {
	return &AuthService{
		users:   users,
		store:   s,
		codec:   codec,
		metrics: recorder,
		now:     time.Now,
	}
}

// SignUpWithEmailPassword creates a new identity with the given
// credentials, binds it to the application identified by appsSecretKey
// through a fresh authorization scope, and issues a signed token.
func (s *AuthService) SignUpWithEmailPassword(
	ctx context.Context,
	email, password, appsSecretKey string,
) (*UserAuthView, error) {
	identity, err := s.users.CreateWithEmailPassword(ctx, email, password)
	if err != nil {
		s.metrics.RecordSignup("error")
		return nil, err
	}

	scope := &models.AuthorizationScope{
		ID:            uuid.New().String(),
		IdentityID:    identity.ID,
		Roles:         []string{},
		Permissions:   []string{},
		Groups:        []string{},
		AppsSecretKey: appsSecretKey,
	}
	if err := s.store.CreateAuthorizationScope(scope); err != nil {
		// Compensate: the identity was persisted but its scope was not.
		// Remove it so signup leaves no orphaned identity behind.
		if delErr := s.store.DeleteIdentity(identity.ID); delErr != nil {
			log.Printf("[Auth] Compensating identity delete failed for %s: %v",
				identity.ID, delErr)
		}
		s.metrics.RecordSignup("error")
		return nil, err
	}

	auth, err := s.issueToken(identity, appsSecretKey)
	if err != nil {
		s.metrics.RecordSignup("error")
		return nil, err
	}

	s.metrics.RecordSignup("success")
	return &UserAuthView{
		AuthorizationView: AuthorizationView{
			ID:          scope.ID,
			Identity:    identity,
			Providers:   identity.Providers,
			Roles:       scope.Roles,
			Permissions: scope.Permissions,
			Groups:      scope.Groups,
		},
		Auth: auth,
		Apps: AppsReference{
			Typename:  "AppsPayload",
			SecretKey: appsSecretKey,
		},
	}, nil
}

// issueToken signs a token for the identity bound to one application
// secret. The claim set echoes the stored credential hash, never the raw
// password.
func (s *AuthService) issueToken(
	identity *models.Identity,
	appsSecretKey string,
) (TokenPayload, error) {
	signed, expires, err := s.codec.Encode(
		identity.ID,
		identity.Handle,
		identity.PasswordHash,
		appsSecretKey,
		s.now(),
	)
	if err != nil {
		return TokenPayload{}, err
	}
	s.metrics.RecordTokenIssued()
	return TokenPayload{Token: signed, Expires: expires}, nil
}

// AuthenticateUser re-hydrates the authorization state for a decoded claim
// set. The identity lookup happens here, at the point of use, never
// eagerly; the scope lookup by (identity, appsSecretKey) is the boundary
// check binding a token to one specific application.
func (s *AuthService) AuthenticateUser(
	ctx context.Context,
	claims *token.Claims,
) (*AuthorizationView, error) {
	identity, err := s.store.GetIdentityByID(claims.Subject)
	if err != nil {
		s.metrics.RecordTokenValidation("unknown_subject")
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubject, claims.Subject)
	}

	scope, err := s.store.GetAuthorizationScope(identity.ID, claims.AppsSecretKey)
	if err != nil {
		s.metrics.RecordTokenValidation("scope_not_found")
		return nil, ErrScopeNotFound
	}

	// Cross-collection join: the view carries the identity's linked
	// providers.
	if err := s.store.LoadProviders(identity); err != nil {
		return nil, err
	}

	s.metrics.RecordTokenValidation("success")
	return &AuthorizationView{
		ID:          scope.ID,
		Identity:    identity,
		Providers:   identity.Providers,
		Roles:       scope.Roles,
		Permissions: scope.Permissions,
		Groups:      scope.Groups,
	}, nil
}
