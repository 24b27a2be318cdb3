package domain

import "errors"

var (
	ErrConfigMissing      = errors.New("configuration missing")
	ErrMalformedToken     = errors.New("malformed token")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limited")
	ErrValidationFailed   = errors.New("validation failed")
)
