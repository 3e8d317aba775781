package auth

import "errors"

// Token validation errors returned by JWTService implementations.
var (
	// ErrInvalidToken means the token is malformed or its signature does not verify.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken means the token's expiry is in the past.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid means the token carries a not-before claim in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken means a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)
