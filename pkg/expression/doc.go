// Package expression evaluates user-authored expressions against one
// block invocation's input value and named port bindings, powered by
// expr-lang/expr.
//
// # Expression syntax
//
// Field access, indexing, arithmetic, comparison, and boolean operators
// follow expr-lang's own grammar (https://expr-lang.org):
//
//	item.age >= 18
//	item.price > 100 && item.category == "electronics"
//	upper(item.name) + " is " + (item.age >= 18 ? "adult" : "minor")
//
// The invocation's input value is bound as both "item" and "input"; named
// port bindings are reachable directly by name and under "bindings".
//
// A small set of string/array/math/date functions not built into
// expr-lang (contains, startsWith, flatten, avg, parseDate, ...) is added
// to every evaluation's environment by addCustomFunctions.
//
// # Entry points
//
//	Evaluate(expr, input, ctx)           // boolean result, used by predicates
//	EvaluateExpression(expr, input, ctx) // arbitrary result, used by transforms
//
// Compiled programs are cached per (converted) expression string for the
// lifetime of the process.
package expression
