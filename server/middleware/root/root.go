// Package root implements the outermost pipeline stage: request dispatch
// by Host header to a site's pipeline, and the handful of invariants that
// apply before any site-specific config is consulted.
package root

import (
	"net/http"

	"github.com/omalloc/prox/conf"
	xerrors "github.com/omalloc/prox/pkg/errors"
)

// serverHeader is written on every response this stage emits, win or lose.
const serverHeader = "prox"

// New builds the dispatch stage from a built site map. sites is keyed by
// the normalized conf.Host the request's Host header resolves to; a miss
// yields 404.
func New(sites map[conf.Host]http.Handler) http.Handler {
	return &stage{sites: sites}
}

type stage struct {
	sites map[conf.Host]http.Handler
}

func (s *stage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := &headerWriter{ResponseWriter: w}
	defer rw.ensureServerHeader()

	if r.Host == "" && r.URL.Host == "" {
		xerrors.ErrBadRequest("missing host header").Write(rw)
		return
	}

	// RFC 7230 §5.4: an absolute-form request URI's authority takes
	// precedence over the Host header.
	if r.URL.IsAbs() && r.URL.Host != "" {
		r.Host = r.URL.Host
	}

	host, err := conf.ParseHost(r.Host)
	if err != nil {
		xerrors.ErrBadRequest("missing host header").Write(rw)
		return
	}

	site, ok := s.sites[host]
	if !ok {
		xerrors.ErrNotFound().Write(rw)
		return
	}

	site.ServeHTTP(rw, r)
}

// headerWriter defers the Server header until the first WriteHeader/Write
// call, and guarantees it's set even if no stage downstream writes it
// explicitly (e.g. a stage replying from an http.Error path).
type headerWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (h *headerWriter) WriteHeader(code int) {
	h.setServerHeader()
	h.ResponseWriter.WriteHeader(code)
}

func (h *headerWriter) Write(p []byte) (int, error) {
	h.setServerHeader()
	return h.ResponseWriter.Write(p)
}

func (h *headerWriter) setServerHeader() {
	if h.wroteHeader {
		return
	}
	h.wroteHeader = true
	h.Header().Set("Server", serverHeader)
}

// ensureServerHeader covers the rare case where nothing downstream ever
// calls Write/WriteHeader (an empty 200, say): the header must still be set
// before the response is flushed to the wire.
func (h *headerWriter) ensureServerHeader() {
	h.setServerHeader()
}
