// Package expression evaluates user-authored predicates and transforms
// against a single block invocation's input value and named port
// bindings, powered by expr-lang/expr.
package expression

import (
	"sync"
)

// Context carries the named port bindings visible to an expression
// alongside the primary input value, for one block invocation.
type Context struct {
	Bindings map[string]interface{}
}

var (
	// Global engine instance for reuse and caching
	globalEngine *ExprEngine
	engineOnce   sync.Once
)

// getEngine returns the singleton expression engine
func getEngine() *ExprEngine {
	engineOnce.Do(func() {
		globalEngine = NewExprEngine()
	})
	return globalEngine
}

// Evaluate evaluates an expression and returns a boolean result; a
// result of any other type is an ErrEvaluationFailed error.
// The expression sees:
//   - The input value as "item" or "input"
//   - Each binding by name ("value > 100") and as "bindings.<name>"
//   - Boolean operators: "&&", "||", "!"
//   - String operations: "contains(str, substr)", "startsWith()", etc.
func Evaluate(expression string, input interface{}, ctx *Context) (bool, error) {
	if ctx == nil {
		ctx = &Context{Bindings: make(map[string]interface{})}
	}

	engine := getEngine()
	return engine.EvaluateBoolean(expression, input, ctx)
}

// EvaluateExpression evaluates an expression and returns its value (not just boolean).
// The control.Expression block uses it to compute its output.
// Supports:
//   - Arithmetic expressions: "item.age * 2", "a + b"
//   - Ternary operator: "condition ? value1 : value2"
//   - String concatenation: "a + b"
//   - Field access: "item.field", "item.nested.field"
//   - The same names as Evaluate: item/input, bindings, and each binding by name
func EvaluateExpression(expression string, input interface{}, ctx *Context) (interface{}, error) {
	if ctx == nil {
		ctx = &Context{Bindings: make(map[string]interface{})}
	}

	engine := getEngine()
	return engine.EvaluateValue(expression, input, ctx)
}
