package varycontrol

import (
	"sort"
	"strconv"
	"strings"
)

// AcceptEncoding is one coding of an Accept-Encoding header: a coding name
// and its quality value (default 1.0 when unspecified).
type AcceptEncoding struct {
	Value string
	Q     float64
}

// AcceptEncodingList sorts by descending quality.
type AcceptEncodingList []AcceptEncoding

func (a AcceptEncodingList) Len() int           { return len(a) }
func (a AcceptEncodingList) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a AcceptEncodingList) Less(i, j int) bool { return a[i].Q > a[j].Q }

// ParseAcceptEncoding parses an Accept-Encoding header into its codings,
// e.g. "gzip,br;q=0.9,deflate;q=0.5" -> [{gzip 1.0} {br 0.9} {deflate 0.5}].
func ParseAcceptEncoding(header string) AcceptEncodingList {
	if header == "" {
		return nil
	}

	result := make(AcceptEncodingList, 0)
	for _, part := range strings.Split(header, ",") {
		encoding := strings.TrimSpace(part)
		if encoding == "" {
			continue
		}

		q := 1.0
		if strings.Contains(encoding, ";") {
			segments := strings.Split(encoding, ";")
			encoding = strings.TrimSpace(segments[0])
			for _, seg := range segments[1:] {
				seg = strings.TrimSpace(seg)
				if qv, ok := strings.CutPrefix(seg, "q="); ok {
					if parsed, err := strconv.ParseFloat(strings.TrimSpace(qv), 64); err == nil {
						q = parsed
					}
				}
			}
		}

		result = append(result, AcceptEncoding{Value: encoding, Q: q})
	}

	sort.Sort(result)
	return result
}

func (a AcceptEncodingList) q(name string) (float64, bool) {
	for _, e := range a {
		if strings.EqualFold(e.Value, name) {
			return e.Q, true
		}
	}
	return 0, false
}

// ShouldGzip implements spec.md §4.4's negotiation algorithm (RFC 7231
// §5.3.4): gzip's effective q falls back to "*"'s q, else 0; identity's
// effective q falls back to "*"'s q, else 1 (acceptable by default). gzip is
// picked iff its effective q is > 0 and >= identity's.
func ShouldGzip(acceptEncodingHeader string) bool {
	list := ParseAcceptEncoding(acceptEncodingHeader)
	star, hasStar := list.q("*")

	gzipQ, ok := list.q("gzip")
	if !ok {
		gzipQ = 0
		if hasStar {
			gzipQ = star
		}
	}

	identityQ, ok := list.q("identity")
	if !ok {
		identityQ = 1
		if hasStar {
			identityQ = star
		}
	}

	return gzipQ > 0 && gzipQ >= identityQ
}
