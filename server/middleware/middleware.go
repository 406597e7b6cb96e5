// Package middleware defines the Handler-chain composition shape every
// pipeline stage (log, gzip, cors, browse, serve, proxy) is built from.
package middleware

import "net/http"

// Middleware wraps a Handler to produce another Handler. Each stage either
// synthesizes a response itself or calls next and optionally rewrites what
// it returns.
type Middleware func(next http.Handler) http.Handler

// Chain composes middlewares in the order given: Chain(a, b, c)(h) runs as
// a(b(c(h))), so a sees the request first and its response rewrite, if
// any, wraps everything b and c produced.
func Chain(m ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(m) - 1; i >= 0; i-- {
			next = m[i](next)
		}
		return next
	}
}

// EmptyMiddleware passes the request through unchanged.
var EmptyMiddleware Middleware = func(next http.Handler) http.Handler { return next }
