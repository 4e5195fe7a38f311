// Package blocks assembles every built-in block and pattern package into
// one Registry. Most packages self-register with no external
// dependencies; pkg/blocks/subapp needs a running Invoker, which itself
// needs a frozen Registry to build its Resolver from, so assembly is
// split into Build (registers every descriptor, including subapp's with
// an as-yet-unwired Caller) and the returned Caller's Wire method (called
// once the rest of the stack — Repository, Resolver, Invoker — exists).
package blocks
