package token

import "errors"

var (
	// ErrTokenGeneration indicates token signing failed
	ErrTokenGeneration = errors.New("failed to generate token")

	// ErrInvalidToken indicates the signature did not verify or the claim
	// set is malformed
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token is past its validity window
	ErrExpiredToken = errors.New("token expired")
)
