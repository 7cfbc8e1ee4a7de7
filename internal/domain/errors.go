package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrAccessExpired  = errors.New("access expired")
	ErrAccessInactive = errors.New("access inactive")
	ErrQuotaExhausted = errors.New("quota exhausted")
)
