// Package recovery guards each request against a panic in any downstream
// stage, logging the stack and returning 500 instead of crashing the
// server.
package recovery

import (
	"net/http"

	"github.com/omalloc/prox/contrib/log"
	"github.com/omalloc/prox/pkg/x/runtime"
	"github.com/omalloc/prox/server/middleware"
)

// Middleware recovers a panic from next, logs it, and writes a 500 if no
// response has been written yet.
func Middleware() middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					log.Context(req.Context()).Errorf("panic recovered: %s\n%s", r, runtime.PrintStackTrace(4))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, req)
		})
	}
}
