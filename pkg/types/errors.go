package types

import "errors"

// Sentinel errors shared across packages that operate on the data model.
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrVersionNotFound     = errors.New("version not found")
	ErrInteractionNotFound = errors.New("interaction not found")
	ErrNoActiveVersion     = errors.New("application has no active version")
)
