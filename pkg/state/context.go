package state

import "sync"

// Context is the concrete block.RunContext built fresh for each
// scheduler run.
type Context struct {
	appID         string
	versionID     string
	interactionID string
	user          string
	sessionID     string

	mu   sync.Mutex
	memo map[string]*memoEntry
}

type memoEntry struct {
	mu        sync.Mutex
	computing bool
	done      bool
	value     interface{}
	err       error
}

// New builds a Context carrying the given run identifiers and an empty
// memoization cache.
func New(appID, versionID, interactionID, user, sessionID string) *Context {
	return &Context{
		appID:         appID,
		versionID:     versionID,
		interactionID: interactionID,
		user:          user,
		sessionID:     sessionID,
		memo:          make(map[string]*memoEntry),
	}
}

func (c *Context) ApplicationID() string { return c.appID }
func (c *Context) VersionID() string     { return c.versionID }
func (c *Context) InteractionID() string { return c.interactionID }
func (c *Context) User() string          { return c.user }
func (c *Context) SessionID() string     { return c.sessionID }

// Memoize runs compute at most once per key for the lifetime of c and
// caches its result (including an error result). Concurrent calls for
// different keys proceed independently; a call that re-enters Memoize
// for a key already being computed on the same call stack returns
// ErrMemoizeInFlight rather than deadlocking.
func (c *Context) Memoize(key string, compute func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	entry, ok := c.memo[key]
	if !ok {
		entry = &memoEntry{}
		c.memo[key] = entry
	}
	c.mu.Unlock()

	entry.mu.Lock()
	if entry.done {
		value, err := entry.value, entry.err
		entry.mu.Unlock()
		return value, err
	}
	if entry.computing {
		entry.mu.Unlock()
		return nil, ErrMemoizeInFlight
	}
	entry.computing = true
	entry.mu.Unlock()

	value, err := compute()

	entry.mu.Lock()
	entry.computing = false
	entry.done = true
	entry.value = value
	entry.err = err
	entry.mu.Unlock()

	return value, err
}
