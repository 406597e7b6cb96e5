package serve

import (
	"net/http"
	"time"

	xhttp "github.com/omalloc/prox/pkg/x/http"
)

// conditionalOutcome is the result of evaluating a request's conditional
// headers against an entity, per spec §4.2's evaluation order.
type conditionalOutcome int

const (
	conditionalProceed conditionalOutcome = iota
	conditionalNotModified
	conditionalPreconditionFailed
)

func evaluateConditional(r *http.Request, tag xhttp.ETag, mtimeMs int64) conditionalOutcome {
	if inm := r.Header.Get("If-None-Match"); inm != "" {
		list := xhttp.ParseETagList(inm)
		if !list.NoneMatches(tag) {
			return conditionalNotModified
		}
	} else if ims := r.Header.Get("If-Modified-Since"); ims != "" {
		if since, ok := xhttp.ParseHTTPDate(ims); ok {
			if mtimeMs <= since.UnixMilli() {
				return conditionalNotModified
			}
		}
	}

	if im := r.Header.Get("If-Match"); im != "" {
		list := xhttp.ParseETagList(im)
		if !list.AnyMatches(tag) {
			return conditionalPreconditionFailed
		}
	}
	if ius := r.Header.Get("If-Unmodified-Since"); ius != "" {
		if since, ok := xhttp.ParseHTTPDate(ius); ok {
			if mtimeMs > since.UnixMilli() {
				return conditionalPreconditionFailed
			}
		}
	}

	return conditionalProceed
}

func writeNotModified(w http.ResponseWriter, tag xhttp.ETag, mtime time.Time) {
	w.Header().Set("ETag", tag.String())
	w.Header().Set("Last-Modified", mtime.UTC().Format(http.TimeFormat))
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusNotModified)
}
