package session

import "errors"

// Errors used by the package.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnknownMessage    = errors.New("unknown message type")
	ErrNotOwner          = errors.New("order is not owned by this session")
	ErrRateLimited       = errors.New("rate limited")
)
