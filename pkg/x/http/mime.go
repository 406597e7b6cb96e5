package http

import (
	"path/filepath"
	"strings"
)

// mimeEntry pairs a guessed content type with whether its payload is worth
// gzipping (text-like formats compress well; already-compressed or binary
// formats don't).
type mimeEntry struct {
	contentType  string
	compressible bool
}

var mimeByExt = map[string]mimeEntry{
	".html": {"text/html; charset=utf-8", true},
	".htm":  {"text/html; charset=utf-8", true},
	".css":  {"text/css; charset=utf-8", true},
	".js":   {"application/javascript; charset=utf-8", true},
	".mjs":  {"application/javascript; charset=utf-8", true},
	".json": {"application/json; charset=utf-8", true},
	".map":  {"application/json; charset=utf-8", true},
	".xml":  {"application/xml; charset=utf-8", true},
	".rss":  {"application/rss+xml; charset=utf-8", true},
	".svg":  {"image/svg+xml", true},
	".txt":  {"text/plain; charset=utf-8", true},
	".md":   {"text/plain; charset=utf-8", true},
	".csv":  {"text/csv; charset=utf-8", true},
	".yaml": {"text/plain; charset=utf-8", true},
	".yml":  {"text/plain; charset=utf-8", true},
	".wasm": {"application/wasm", true},

	".png":  {"image/png", false},
	".jpg":  {"image/jpeg", false},
	".jpeg": {"image/jpeg", false},
	".gif":  {"image/gif", false},
	".webp": {"image/webp", false},
	".ico":  {"image/x-icon", false},
	".woff": {"font/woff", false},
	".woff2": {"font/woff2", false},
	".ttf":  {"font/ttf", false},
	".eot":  {"application/vnd.ms-fontobject", false},

	".mp4":  {"video/mp4", false},
	".webm": {"video/webm", false},
	".mp3":  {"audio/mpeg", false},
	".ogg":  {"audio/ogg", false},

	".gz":  {"application/gzip", false},
	".zip": {"application/zip", false},
	".pdf": {"application/pdf", false},
	".bin": {"application/octet-stream", false},
}

// GuessContentType returns the content type and compressibility guessed for
// path by its extension, falling back to application/octet-stream
// (non-compressible) for anything unrecognized.
func GuessContentType(path string) (contentType string, compressible bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if entry, ok := mimeByExt[ext]; ok {
		return entry.contentType, entry.compressible
	}
	return "application/octet-stream", false
}

var compressibleByBaseType = func() map[string]bool {
	m := make(map[string]bool, len(mimeByExt))
	for _, entry := range mimeByExt {
		base, _, _ := strings.Cut(entry.contentType, ";")
		m[base] = entry.compressible
	}
	return m
}()

// IsCompressibleContentType reports whether a response carrying contentType
// (as set by a handler, independent of GuessContentType) is worth gzipping,
// using the same table GuessContentType draws from.
func IsCompressibleContentType(contentType string) bool {
	base, _, _ := strings.Cut(contentType, ";")
	base = strings.TrimSpace(base)
	if compressible, ok := compressibleByBaseType[base]; ok {
		return compressible
	}
	return strings.HasPrefix(base, "text/")
}
