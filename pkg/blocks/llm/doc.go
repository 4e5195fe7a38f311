// Package llm provides a Call block standing in for a real provider
// integration: it exercises the same InvalidRequestError contract a real
// client library's error type would, so an empty prompt is classified as
// a client-caused failure rather than an infrastructure one.
package llm
