package state

import "errors"

// ErrMemoizeInFlight is returned if compute itself tries to re-enter
// Memoize for the same key before the first call returns (a self-
// referential memo key), which would deadlock on the per-key lock
// otherwise.
var ErrMemoizeInFlight = errors.New("state: memoize key is already being computed")
