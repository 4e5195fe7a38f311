package invoker

import (
	"context"
	"errors"

	"github.com/linguflow/linguflow/pkg/repository"
	"github.com/linguflow/linguflow/pkg/scheduler"
	"github.com/linguflow/linguflow/pkg/types"
)

// Error category labels rendered into InteractionError.Content, so a
// caller can branch on the category prefix without parsing free text.
const (
	CategoryLLMInvalidRequest = "llm_invalid_request"
	CategoryTimeout           = "timeout"
	CategoryDBQueryError      = "db_query_error"
	CategoryUnknown           = "unknown"
)

// InvalidRequestError is implemented by block errors that represent a
// client-caused failure rather than an infrastructure one — an LLM
// provider rejecting a malformed prompt, for instance. ClassifyError
// looks for this capability on a node's wrapped cause before falling
// back to the generic categories.
type InvalidRequestError interface {
	error
	InvalidRequest() bool
}

// ClassifyError renders err into the user-visible InteractionError shape,
// choosing a status code and category the way a real HTTP-facing error
// table would. A nil err yields a nil InteractionError.
func ClassifyError(err error) *types.InteractionError {
	if err == nil {
		return nil
	}

	cause := err
	var nodeErr *scheduler.NodeException
	if errors.As(err, &nodeErr) {
		cause = nodeErr.Cause
	}

	switch {
	case errors.Is(cause, context.DeadlineExceeded):
		return &types.InteractionError{StatusCode: 504, Content: CategoryTimeout + ": " + err.Error()}
	case isInvalidRequest(cause):
		return &types.InteractionError{StatusCode: 400, Content: CategoryLLMInvalidRequest + ": " + err.Error()}
	case isRepositoryError(cause), errors.Is(cause, types.ErrNoActiveVersion):
		return &types.InteractionError{StatusCode: 502, Content: CategoryDBQueryError + ": " + err.Error()}
	default:
		return &types.InteractionError{StatusCode: 500, Content: CategoryUnknown + ": " + err.Error()}
	}
}

func isInvalidRequest(err error) bool {
	var invalidReq InvalidRequestError
	if errors.As(err, &invalidReq) {
		return invalidReq.InvalidRequest()
	}
	return false
}

func isRepositoryError(err error) bool {
	switch {
	case errors.Is(err, repository.ErrApplicationNotFound),
		errors.Is(err, repository.ErrVersionNotFound),
		errors.Is(err, repository.ErrInteractionNotFound),
		errors.Is(err, repository.ErrParentVersionNotFound),
		errors.Is(err, repository.ErrParentVersionMismatch),
		errors.Is(err, repository.ErrVersionTreeTooDeep):
		return true
	default:
		return false
	}
}
