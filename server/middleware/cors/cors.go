// Package cors implements the CORS preflight handler and response
// header rewriter.
package cors

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/omalloc/prox/conf"
	"github.com/omalloc/prox/pkg/x/http/varycontrol"
	"github.com/omalloc/prox/server/middleware"
)

// simpleResponseHeaders never need to be listed in Access-Control-Expose-Headers
// or Access-Control-Allow-Headers: the simple CORS response headers
// Cache-Control, Content-Language, Expires, Last-Modified and Pragma.
// Content-Type, the sixth simple header, is left out and treated as
// non-simple, since a handler may set it to a value outside the safelisted set.
var simpleResponseHeaders = map[string]bool{
	"Cache-Control": true,
	"Content-Language": true,
	"Expires": true,
	"Last-Modified": true,
	"Pragma": true,
}

// New builds the CORS stage for cfg. A nil cfg disables the stage.
func New(cfg *conf.Cors) middleware.Middleware {
	if cfg == nil {
		return middleware.EmptyMiddleware
	}
	return func(next http.Handler) http.Handler {
		return &stage{cfg: cfg, next: next}
	}
}

type stage struct {
	cfg  *conf.Cors
	next http.Handler
}

func (s *stage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		s.next.ServeHTTP(w, r)
		return
	}

	if r.Method == http.MethodOptions {
		s.preflight(w, r, origin)
		return
	}

	if s.cfg.Origin.Allows(origin) {
		h := w.Header()
		varycontrol.AppendVary(h, "Origin")
		h.Set("Access-Control-Allow-Origin", origin)
		if s.cfg.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		if len(s.cfg.ExposedHeaders) > 0 {
			h.Set("Access-Control-Expose-Headers", strings.Join(s.cfg.ExposedHeaders, ", "))
		}
	}

	s.next.ServeHTTP(w, r)
}

func (s *stage) preflight(w http.ResponseWriter, r *http.Request, origin string) {
	h := w.Header()
	h.Set("Vary", "Origin")
	h.Set("Content-Length", "0")
	h.Set("Content-Type", "text/plain; charset=utf-8")

	if !s.cfg.Origin.Allows(origin) {
		w.WriteHeader(http.StatusOK)
		return
	}

	reqMethod := r.Header.Get("Access-Control-Request-Method")
	if reqMethod == "" || !containsFold(s.cfg.Methods, reqMethod) {
		w.WriteHeader(http.StatusOK)
		return
	}

	reqHeaders := splitCommaList(r.Header.Get("Access-Control-Request-Headers"))
	for _, header := range reqHeaders {
		if !containsFold(s.cfg.AllowedHeaders, header) {
			w.WriteHeader(http.StatusOK)
			return
		}
	}

	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", strings.Join(s.cfg.Methods, ", "))
	if s.cfg.AllowCredentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if s.cfg.MaxAge != nil {
		h.Set("Access-Control-Max-Age", strconv.Itoa(*s.cfg.MaxAge))
	}
	if needsAllowHeaders(reqHeaders) {
		h.Set("Access-Control-Allow-Headers", strings.Join(s.cfg.AllowedHeaders, ", "))
	}

	w.WriteHeader(http.StatusOK)
}

func needsAllowHeaders(requested []string) bool {
	for _, header := range requested {
		if !simpleResponseHeaders[http.CanonicalHeaderKey(header)] || strings.EqualFold(header, "Content-Type") {
			return true
		}
	}
	return false
}

func containsFold(list []string, want string) bool {
	return slices.ContainsFunc(list, func(s string) bool { return strings.EqualFold(s, want) })
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
