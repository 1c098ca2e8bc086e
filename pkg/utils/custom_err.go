package utils

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrValidation      = errors.New("validation failed")
	ErrRouteNotFound   = errors.New("route not found")
	ErrNoGeometry      = errors.New("route has no drawable geometry")
	ErrDatabaseError   = errors.New("database error")
)
