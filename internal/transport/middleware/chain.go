package middleware

import "net/http"

// Middleware wraps an http.Handler with one concern of the request
// pipeline (recovery, correlation IDs, CORS, rate limiting, auth,
// request logging).
type Middleware func(http.Handler) http.Handler

// Chain folds the given middlewares into one. The first argument ends up
// outermost: Chain(a, b)(h) serves a(b(h)), so a sees the request first
// and the response last. An empty chain is the identity.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}
