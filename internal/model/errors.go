package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores on a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidField is returned by stores when a field constraint rejects the row.
	ErrInvalidField = errors.New("invalid field")
	// ErrPasswordTooLong is returned by the hasher when the input exceeds the algorithm limit.
	ErrPasswordTooLong = errors.New("password is too long to hash")
)
