package validate

// GraphCheckError is the common marker for every validation failure.
type GraphCheckError interface {
	error
	graphCheckError()
}

type baseError struct {
	msg string
}

func (e *baseError) Error() string    { return e.msg }
func (e *baseError) graphCheckError() {}

// EndpointMissingError is raised when an edge references a node id that
// is not present in the graph, or a named port that is not declared by
// the sink and not absorbed by a variadic-keyword parameter.
type EndpointMissingError struct{ *baseError }

func newEndpointMissingError(msg string) *EndpointMissingError {
	return &EndpointMissingError{&baseError{msg: msg}}
}

// CyclicGraphError is raised when the graph contains a cycle.
type CyclicGraphError struct{ *baseError }

func newCyclicGraphError(msg string) *CyclicGraphError {
	return &CyclicGraphError{&baseError{msg: msg}}
}

// RequiredPortUnfilledError is raised when a non-default, non-variadic
// invocation parameter has no incoming edge targeting it by name.
type RequiredPortUnfilledError struct{ *baseError }

func newRequiredPortUnfilledError(msg string) *RequiredPortUnfilledError {
	return &RequiredPortUnfilledError{&baseError{msg: msg}}
}

// InputOutputCountError is raised when the node set does not contain
// exactly one input block and exactly one output block.
type InputOutputCountError struct{ *baseError }

func newInputOutputCountError(msg string) *InputOutputCountError {
	return &InputOutputCountError{&baseError{msg: msg}}
}

// PortTypeMismatchError is raised when a named edge connects a source
// whose declared return type is not assignable to the sink port's
// declared type.
type PortTypeMismatchError struct{ *baseError }

func newPortTypeMismatchError(msg string) *PortTypeMismatchError {
	return &PortTypeMismatchError{&baseError{msg: msg}}
}

// MissingStrMethodError is raised when a non-builtin outport type
// reaching an edge does not provide a string-conversion capability.
type MissingStrMethodError struct{ *baseError }

func newMissingStrMethodError(msg string) *MissingStrMethodError {
	return &MissingStrMethodError{&baseError{msg: msg}}
}
