package domain

import "errors"

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidAction   = errors.New("invalid action")
	ErrRoleNotFound    = errors.New("role not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid or expired token")
)
