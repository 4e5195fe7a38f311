package repository

import "errors"

var (
	ErrApplicationNotFound = errors.New("repository: application not found")
	ErrVersionNotFound     = errors.New("repository: version not found")
	ErrInteractionNotFound = errors.New("repository: interaction not found")

	ErrApplicationNameRequired = errors.New("repository: application name is required")
	ErrVersionNameRequired     = errors.New("repository: version name is required")

	ErrParentVersionNotFound = errors.New("repository: parent version not found")
	ErrParentVersionMismatch = errors.New("repository: parent version belongs to a different application")

	ErrVersionTreeTooDeep = errors.New("repository: version ancestor chain exceeds the configured depth limit")
)
