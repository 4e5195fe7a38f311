package config

import "errors"

// Sentinel errors returned by Config.Validate.
var (
	ErrInvalidExecutionTime       = errors.New("invalid max execution time: must be non-negative")
	ErrInvalidMaxNodeExecutions   = errors.New("invalid max node executions: must be non-negative")
	ErrInvalidMaxVersionTreeDepth = errors.New("invalid max version tree depth: must be non-negative")
	ErrInvalidSubAppTimeout       = errors.New("invalid sub-application invoke timeout: must be non-negative")
	ErrInvalidSubAppPollInterval  = errors.New("invalid sub-application poll interval: must be non-negative")
)
