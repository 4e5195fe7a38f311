package llm

import "fmt"

// RequestError wraps a prompt a provider would reject outright, before
// any network round trip — an empty prompt, here — distinct from a
// provider-side or transport failure.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("llm: invalid request: %s", e.Reason)
}

// InvalidRequest satisfies invoker.InvalidRequestError so ClassifyError
// routes this failure to its 400 category instead of the generic 500.
func (e *RequestError) InvalidRequest() bool { return true }
