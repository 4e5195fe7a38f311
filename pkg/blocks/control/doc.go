// Package control collects the general-purpose dataflow shaping blocks:
// Expression, which applies a user-authored transform to a block's bound
// input, and JoinList, which zips an arbitrary number of list-valued
// named inputs into a single templated list.
package control
