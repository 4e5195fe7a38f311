package construct

import "fmt"

// NodeConstructError wraps any failure encountered while materializing a
// node or nested slot value from its spec.
type NodeConstructError struct {
	NodeID string
	Name   string
	Reason string
	Cause  error
}

func (e *NodeConstructError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("construct node %q (%s): %s", e.NodeID, e.Name, e.Reason)
	}
	return fmt.Sprintf("construct %s failed: %s", e.Name, e.Reason)
}

func (e *NodeConstructError) Unwrap() error {
	return e.Cause
}

func nameNotFound(name string) *NodeConstructError {
	return &NodeConstructError{Name: name, Reason: "name not found"}
}

func abstractType(name string) *NodeConstructError {
	return &NodeConstructError{Name: name, Reason: "abstract type cannot be constructed"}
}

func constructFailed(name string, cause error) *NodeConstructError {
	return &NodeConstructError{Name: name, Reason: fmt.Sprintf("construct %s failed: %v", name, cause), Cause: cause}
}
