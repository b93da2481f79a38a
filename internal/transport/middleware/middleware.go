// Package middleware holds the HTTP middleware the router composes:
// request IDs, panic recovery, CORS, bearer-token identity, request
// logging, and per-IP rate limiting.
package middleware

import "net/http"

// Middleware wraps an http.Handler. The unnamed signature keeps it
// assignable to chi's Use/With.
type Middleware func(http.Handler) http.Handler
