// Package gzip implements the on-the-fly response compression stage:
// content-type/size gating, ETag weakening, Vary maintenance, and streamed
// per-chunk gzipping.
package gzip

import (
	"bytes"
	"net/http"
	"strconv"

	kgzip "github.com/klauspost/compress/gzip"

	"github.com/omalloc/prox/conf"
	xhttp "github.com/omalloc/prox/pkg/x/http"
	"github.com/omalloc/prox/pkg/x/http/varycontrol"
	"github.com/omalloc/prox/server/middleware"
)

// gzipLevel is deliberately low: each chunk becomes its own gzip member, so
// ratio matters less than keeping per-chunk CPU cost down.
const gzipLevel = kgzip.BestSpeed

// New builds the compression stage for cfg. A nil cfg disables the stage.
func New(cfg *conf.Gzip) middleware.Middleware {
	if cfg == nil {
		return middleware.EmptyMiddleware
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = conf.DefaultGzipThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gw := &responseWriter{ResponseWriter: w, req: r, threshold: threshold}
			next.ServeHTTP(gw, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	req       *http.Request
	threshold int64

	status     int
	decided    bool
	shouldGzip bool
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.decide()
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if !w.decided {
		w.status = http.StatusOK
		w.decide()
		w.ResponseWriter.WriteHeader(w.status)
	}
	if !w.shouldGzip {
		return w.ResponseWriter.Write(p)
	}
	return w.writeGzipMember(p)
}

// decide gates compression per spec §4.4: 2xx GET/HEAD, a compressible
// content type, a Content-Length either absent or at or above threshold, and a
// client that negotiates gzip. Rewrites headers in place when it applies.
func (w *responseWriter) decide() {
	if w.decided {
		return
	}
	w.decided = true

	if w.status < 200 || w.status >= 300 {
		return
	}
	if w.req.Method != http.MethodGet && w.req.Method != http.MethodHead {
		return
	}
	if !xhttp.IsCompressibleContentType(w.Header().Get("Content-Type")) {
		return
	}
	if cl := w.Header().Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil && n < w.threshold {
			return
		}
	}
	if !varycontrol.ShouldGzip(w.req.Header.Get("Accept-Encoding")) {
		return
	}

	w.shouldGzip = true

	h := w.Header()
	h.Del("Content-Length")
	h.Set("Transfer-Encoding", "chunked")
	h.Set("Content-Encoding", "gzip")
	varycontrol.AppendVary(h, "Accept-Encoding")
	if tag, ok := xhttp.ParseETag(h.Get("ETag")); ok {
		h.Set("ETag", tag.Weaken().String())
	}
}

// writeGzipMember gzips p as a single, independent gzip member and emits it
// immediately — a deliberate latency-over-ratio trade, since chunking at the
// member boundary means the client can start inflating before the whole
// response arrives.
func (w *responseWriter) writeGzipMember(p []byte) (int, error) {
	var buf bytes.Buffer
	zw, err := kgzip.NewWriterLevel(&buf, gzipLevel)
	if err != nil {
		return 0, err
	}
	if _, err := zw.Write(p); err != nil {
		return 0, err
	}
	if err := zw.Close(); err != nil {
		return 0, err
	}

	if _, err := w.ResponseWriter.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
	return len(p), nil
}
