package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the constant issuer tag embedded in every token.
const Issuer = "Authentication Resources"

// Claims is the signed claim set carried by a bearer token. Password holds
// the bcrypt hash echo of the subject's credential, never the raw secret.
type Claims struct {
	Username      string `json:"username"`
	Password      string `json:"password,omitempty"`
	AppsSecretKey string `json:"appsSecretKey"`

	jwt.RegisteredClaims
}

// Codec signs and verifies bearer tokens with a process-wide HS256 key.
// The key and lifetime are configuration, set once at startup; the codec
// itself holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewCodec creates a codec for the given signing secret and token
// lifetime.
func NewCodec(secret string, lifetime time.Duration) *Codec {
	return &Codec{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Lifetime returns the fixed validity window applied at issuance.
func (c *Codec) Lifetime() time.Duration {
	return c.lifetime
}

// Encode serializes and signs a claim set issued at the given instant.
// Expiry is fixed at issuedAt plus the codec lifetime. Deterministic for
// identical claims, key, and issuedAt.
func (c *Codec) Encode(
	sub, username, passwordHash, appsSecretKey string,
	issuedAt time.Time,
) (string, time.Time, error) {
	expires := issuedAt.Add(c.lifetime)

	claims := &Claims{
		Username:      username,
		Password:      passwordHash,
		AppsSecretKey: appsSecretKey,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return signed, expires, nil
}

// Decode verifies the signature and validity window of a signed token and
// returns its claims. Fails with ErrInvalidToken when the signature does
// not verify and ErrExpiredToken when past the lifetime window.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	// Tokens may predate the exp claim; the lifetime window from iat still
	// binds them.
	if claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	if c.now().After(claims.IssuedAt.Add(c.lifetime)) {
		return nil, ErrExpiredToken
	}

	return claims, nil
}
