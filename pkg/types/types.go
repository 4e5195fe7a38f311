package types

import (
	"context"
	"time"
)

// ============================================================================
// Context Keys
// ============================================================================

// contextKey is used for context keys to avoid collisions.
type contextKey string

const (
	// ContextKeyExecutionID is the context key for the unique interaction ID.
	ContextKeyExecutionID contextKey = "interaction_id"

	// ContextKeyApplicationID is the context key for the application ID.
	ContextKeyApplicationID contextKey = "application_id"
)

// GetExecutionID extracts the interaction ID from context.
// Returns empty string if not found in context.
func GetExecutionID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyExecutionID).(string); ok {
		return id
	}
	return ""
}

// GetApplicationID extracts the application ID from context.
// Returns empty string if not found in context.
func GetApplicationID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyApplicationID).(string); ok {
		return id
	}
	return ""
}

// ============================================================================
// Type tags
// ============================================================================

// TypeName is a registered type name: either a builtin, a pattern, or a
// block's declared outport type. The set of valid names is closed over
// whatever has been registered with the registry at process start.
type TypeName string

// Any is the universal builtin type: it is assignable from everything and
// satisfies PortTypeMatch unconditionally.
const Any TypeName = "any"

// Builtin type tags recognized without registration.
const (
	TypeString  TypeName = "string"
	TypeNumber  TypeName = "number"
	TypeBoolean TypeName = "boolean"
	TypeList    TypeName = "list"
	TypeDict    TypeName = "dict"
	TypeNull    TypeName = "null"
)

// builtins is the closed set of type names that never need registration.
var builtins = map[TypeName]bool{
	Any: true, TypeString: true, TypeNumber: true, TypeBoolean: true,
	TypeList: true, TypeDict: true, TypeNull: true,
}

// IsBuiltin reports whether name is one of the registry-builtin type tags.
func IsBuiltin(name TypeName) bool {
	return builtins[name]
}

// ============================================================================
// DAG wire format
// ============================================================================

// NodeSpec is the JSON representation of one DAG node, as persisted in
// Version.Configuration.
type NodeSpec struct {
	ID    string                 `json:"id"`
	Name  string                 `json:"name"`
	Alias string                 `json:"alias,omitempty"`
	Slots map[string]interface{} `json:"slots,omitempty"`
}

// EdgeSpec is the JSON representation of one DAG edge.
type EdgeSpec struct {
	SrcBlock string      `json:"src_block"`
	DstBlock string      `json:"dst_block"`
	DstPort  *string     `json:"dst_port"`
	Alias    string      `json:"alias,omitempty"`
	Case     interface{} `json:"case"`
}

// DAGSpec is the full wire payload of a Version's configuration.
type DAGSpec struct {
	Nodes []NodeSpec `json:"nodes"`
	Edges []EdgeSpec `json:"edges"`
}

// ============================================================================
// Application / Version / Interaction
// ============================================================================

// Application is a user-owned container for a tree of Versions.
type Application struct {
	ID            string
	Name          string
	User          string
	ActiveVersion *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Version is one immutable node in an Application's version tree.
type Version struct {
	ID            string
	AppID         string
	Name          string
	User          string
	ParentID      *string
	Meta          map[string]interface{}
	Configuration DAGSpec
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Interaction is a single execution record of a Version.
type Interaction struct {
	ID         string
	AppID      string
	VersionID  string
	User       string
	SessionID  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Output     interface{}
	Data       map[string]interface{}
	Error      *InteractionError
}

// InteractionError is the rendered, user-visible failure of a run.
type InteractionError struct {
	StatusCode int    `json:"status_code"`
	Content    string `json:"content"`
}
