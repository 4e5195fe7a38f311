package registry

import "errors"

var (
	errFrozen    = errors.New("registry: already frozen by a Resolver, cannot register further descriptors")
	errEmptyName = errors.New("registry: descriptor name must not be empty")
)
