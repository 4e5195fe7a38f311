// Package server exposes a thin HTTP surface over pkg/repository and
// pkg/invoker: applications, versions, activation, asynchronous runs, and
// interaction polling, plus health and metrics endpoints. Routing uses a
// bare net/http.ServeMux with no router library, and CORS/logging/recovery
// middleware chained by hand.
package server
