// Package io provides the Input and Output blocks every runnable graph
// must contain exactly one of: Input receives the run's payload before
// evaluation starts and Output is the single sink the scheduler reads the
// run's result from.
package io
