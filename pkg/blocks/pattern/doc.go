// Package pattern provides registered, non-block types — values usable
// only as a nested slot on another block or pattern, never as a DAG node
// in their own right. Predicate is the abstract pattern type; its
// concrete implementors are the text comparators (TextEqual,
// TextContains, TextHasPrefix, TextHasSuffix), the number comparators
// (GreaterThan, LessThan, GreaterOrEqualThan, LessOrEqualThan,
// EqualWithNumber) and the list checks (ListContains, ListIsEmpty).
// TextCondition, KeySelector, and
// SchemaValidator are blocks that consume patterns as slot values.
package pattern
