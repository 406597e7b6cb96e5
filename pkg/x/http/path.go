package http

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// IsSafePath reports whether every component of p is either the root
// delimiter or a normal segment — no "." or ".." component is tolerated,
// regardless of how deep in the path it appears.
func IsSafePath(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "":
			continue
		case ".", "..":
			return false
		}
	}
	return true
}

// ResolveEntityPath turns a client-supplied request path into a candidate
// filesystem path under root. It returns ok=false when the path should be
// rejected outright (404), mirroring spec.md §4.2's Path Resolution rules:
// the path must start with "/", must percent-decode as UTF-8, and after
// decoding must contain no parent/current-directory component.
func ResolveEntityPath(root, requestPath string) (candidate string, ok bool) {
	if !strings.HasPrefix(requestPath, "/") {
		return "", false
	}

	decoded, err := url.PathUnescape(requestPath)
	if err != nil || !utf8.ValidString(decoded) {
		return "", false
	}

	if !IsSafePath(decoded) {
		return "", false
	}

	return filepath.Join(root, filepath.FromSlash(decoded[1:])), true
}

// IsDotfile reports whether the final path segment begins with ".".
func IsDotfile(p string) bool {
	base := filepath.Base(p)
	return strings.HasPrefix(base, ".")
}
