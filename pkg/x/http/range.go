package http

import (
	"fmt"
	"strconv"
	"strings"
)

// https://www.rfc-editor.org/rfc/rfc7233.html
const rangeUnitPrefix = "bytes="

// Range is an inclusive byte range, [Start, End].
type Range struct {
	Start, End int64
}

// Length is the number of bytes the range covers.
func (r Range) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange renders the `Content-Range: bytes start-end/size` header
// value for a satisfiable range.
func (r Range) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, size)
}

// UnsatisfiableContentRange renders the `Content-Range: bytes */size` value
// sent alongside a 416 response.
func UnsatisfiableContentRange(size int64) string {
	return fmt.Sprintf("bytes */%d", size)
}

// RequestedRangeKind distinguishes the three outcomes of range evaluation in
// spec.md §4.2.
type RequestedRangeKind int

const (
	RangeNone RequestedRangeKind = iota
	RangeNotSatisfiable
	RangeSatisfiable
)

// RequestedRange is the tagged result of parsing a Range header against a
// known entity length.
type RequestedRange struct {
	Kind  RequestedRangeKind
	Range Range
}

// ParseRange evaluates the single first byte-range-spec of header against
// size, per spec.md §4.2:
//
//   - no Range header                      -> RangeNone
//   - non-"bytes" unit, or empty spec list  -> RangeNotSatisfiable
//   - zero-length entity with any range     -> RangeNotSatisfiable
//   - "bytes=a-b"                           -> clamp b, invalid if a>b or a>=size
//   - "bytes=a-"                            -> a..size-1
//   - "bytes=-n" (n==0 invalid)             -> (size-min(n,size))..size-1
func ParseRange(header string, size int64) RequestedRange {
	if header == "" {
		return RequestedRange{Kind: RangeNone}
	}
	if !strings.HasPrefix(header, rangeUnitPrefix) {
		return RequestedRange{Kind: RangeNotSatisfiable}
	}

	spec := header[len(rangeUnitPrefix):]
	// Only the first range of a (possibly multi-range) request is honored.
	if idx := strings.IndexByte(spec, ','); idx >= 0 {
		spec = spec[:idx]
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return RequestedRange{Kind: RangeNotSatisfiable}
	}

	if size == 0 {
		return RequestedRange{Kind: RangeNotSatisfiable}
	}

	dash := strings.IndexByte(spec, '-')
	if dash < 0 {
		return RequestedRange{Kind: RangeNotSatisfiable}
	}

	startStr, endStr := spec[:dash], spec[dash+1:]

	switch {
	case startStr == "": // "bytes=-n" : last n bytes
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || n == 0 {
			return RequestedRange{Kind: RangeNotSatisfiable}
		}
		if n > size {
			n = size
		}
		return RequestedRange{Kind: RangeSatisfiable, Range: Range{Start: size - n, End: size - 1}}

	case endStr == "": // "bytes=a-"
		start, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil || start < 0 || start >= size {
			return RequestedRange{Kind: RangeNotSatisfiable}
		}
		return RequestedRange{Kind: RangeSatisfiable, Range: Range{Start: start, End: size - 1}}

	default: // "bytes=a-b"
		start, errStart := strconv.ParseInt(startStr, 10, 64)
		end, errEnd := strconv.ParseInt(endStr, 10, 64)
		if errStart != nil || errEnd != nil || start < 0 {
			return RequestedRange{Kind: RangeNotSatisfiable}
		}
		if end >= size {
			end = size - 1
		}
		if start > end || start >= size {
			return RequestedRange{Kind: RangeNotSatisfiable}
		}
		return RequestedRange{Kind: RangeSatisfiable, Range: Range{Start: start, End: end}}
	}
}
