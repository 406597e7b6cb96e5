// Package varycontrol holds the Vary-header and Accept-Encoding negotiation
// helpers shared by the compression and CORS middleware stages.
package varycontrol

import (
	"net/http"
	"slices"
	"strings"
)

// AppendVary implements spec.md §4.7's append_vary helper: Vary:* is
// terminal (further appends are a no-op); otherwise field is appended to the
// existing list, deduplicated.
func AppendVary(h http.Header, field string) {
	existing := h.Values("Vary")
	for _, v := range existing {
		if strings.TrimSpace(v) == "*" {
			return
		}
	}

	var keys []string
	for _, v := range existing {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}

	if slices.ContainsFunc(keys, func(k string) bool { return strings.EqualFold(k, field) }) {
		return
	}
	keys = append(keys, field)

	h.Set("Vary", strings.Join(keys, ", "))
}
