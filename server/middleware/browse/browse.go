// Package browse renders an HTML directory listing when the static-file
// engine hands off a directory request.
package browse

import (
	"errors"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/omalloc/prox/conf"
	xerrors "github.com/omalloc/prox/pkg/errors"
	xhttp "github.com/omalloc/prox/pkg/x/http"
	"github.com/omalloc/prox/server/middleware"
)

// New builds the directory-listing stage for cfg. Browse is a no-op (passes
// straight to next) unless cfg.Browse is set.
func New(cfg *conf.Serve) middleware.Middleware {
	if cfg == nil || !cfg.Browse {
		return middleware.EmptyMiddleware
	}
	return func(next http.Handler) http.Handler {
		return &stage{cfg: cfg, next: next}
	}
}

type stage struct {
	cfg  *conf.Serve
	next http.Handler
}

type entry struct {
	name    string
	href    string
	isDir   bool
	size    int64
	created int64 // milliseconds since epoch
}

func (s *stage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
	default:
		s.next.ServeHTTP(w, r)
		return
	}

	candidate, ok := xhttp.ResolveEntityPath(s.cfg.Root, r.URL.Path)
	if !ok {
		xerrors.ErrNotFound().Write(w)
		return
	}

	info, err := os.Stat(candidate)
	if err != nil || !info.IsDir() {
		s.next.ServeHTTP(w, r)
		return
	}

	dirEntries, err := os.ReadDir(candidate)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			xerrors.ErrInternal(err).Write(w)
			return
		}
		s.next.ServeHTTP(w, r)
		return
	}

	entries := make([]entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !s.cfg.Dotfiles && strings.HasPrefix(de.Name(), ".") {
			continue
		}
		fi, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, entry{
			name:    de.Name(),
			href:    path.Join(r.URL.Path, de.Name()),
			isDir:   fi.IsDir(),
			size:    fi.Size(),
			created: fi.ModTime().UnixMilli(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return strings.ToLower(entries[i].name) < strings.ToLower(entries[j].name)
	})

	var parentHref string
	if cleaned := path.Clean(r.URL.Path); cleaned != "/" && cleaned != "." {
		parentHref = path.Dir(cleaned)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	writeListing(w, parentHref, entries)
}
