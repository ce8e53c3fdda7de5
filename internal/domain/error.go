package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrAlreadyExists       = errors.New("entity already exists")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrAmbiguous           = errors.New("multiple matching entities")
	ErrOperationFailed     = errors.New("operation failed")
	ErrReadDatabaseRow     = errors.New("failed to read database row")
	ErrNoAuthenticatedUser = errors.New("no authenticated user")
)
