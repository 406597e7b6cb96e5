// Package serve implements the static-file engine: path resolution,
// conditional GET, byte-range handling, and chunked streaming from disk.
package serve

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/omalloc/prox/conf"
	xerrors "github.com/omalloc/prox/pkg/errors"
	"github.com/omalloc/prox/pkg/iobuf"
	xhttp "github.com/omalloc/prox/pkg/x/http"
	"github.com/omalloc/prox/server/middleware"
)

// New builds the static-file serving stage for cfg, using pool to bound
// concurrent blocking reads. A nil cfg disables the stage (the site has no
// document root and relies entirely on the next stage, e.g. Proxy).
func New(cfg *conf.Serve, pool *iobuf.Pool) middleware.Middleware {
	if cfg == nil {
		return middleware.EmptyMiddleware
	}
	return func(next http.Handler) http.Handler {
		return &stage{cfg: cfg, pool: pool, next: next}
	}
}

type stage struct {
	cfg  *conf.Serve
	pool *iobuf.Pool
	next http.Handler
}

func (s *stage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
	default:
		xerrors.ErrMethodNotAllowed().Write(w)
		return
	}

	candidate, ok := xhttp.ResolveEntityPath(s.cfg.Root, r.URL.Path)
	if !ok {
		xerrors.ErrNotFound().Write(w)
		return
	}

	if !s.cfg.Dotfiles && xhttp.IsDotfile(candidate) {
		s.next.ServeHTTP(w, r)
		return
	}

	f, err := os.Open(candidate)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || isNotDir(err) {
			s.next.ServeHTTP(w, r)
			return
		}
		xerrors.ErrInternal(err).Write(w)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		xerrors.ErrInternal(err).Write(w)
		return
	}
	if info.IsDir() {
		s.next.ServeHTTP(w, r)
		return
	}

	ent := newEntity(info, candidate)
	tag := ent.etag()

	switch evaluateConditional(r, tag, ent.mtime) {
	case conditionalNotModified:
		writeNotModified(w, tag, info.ModTime())
		return
	case conditionalPreconditionFailed:
		xerrors.ErrPreconditionFailed().Write(w)
		return
	}

	rr := xhttp.ParseRange(r.Header.Get("Range"), ent.length)
	switch rr.Kind {
	case xhttp.RangeNotSatisfiable:
		xerrors.ErrRangeNotSatisfiable(xhttp.UnsatisfiableContentRange(ent.length)).Write(w)
		return
	}

	header := w.Header()
	header.Set("ETag", tag.String())
	header.Set("Accept-Ranges", "bytes")
	header.Set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))
	header.Set("Content-Type", ent.contentType)

	var start, end int64 // end exclusive
	status := http.StatusOK
	if rr.Kind == xhttp.RangeSatisfiable {
		header.Set("Content-Range", rr.Range.ContentRange(ent.length))
		start, end = rr.Range.Start, rr.Range.End+1
		status = http.StatusPartialContent
	} else {
		start, end = 0, ent.length
	}
	header.Set("Content-Length", strconv.FormatInt(end-start, 10))

	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}

	stream(r.Context(), w, s.pool, f, start, end)
}
