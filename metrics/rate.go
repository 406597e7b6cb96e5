package metrics

import (
	"time"

	"github.com/paulbellamy/ratecounter"
)

// RequestRate is a sliding-window requests/second gauge, the same
// ratecounter-based pattern used elsewhere in the codebase to report a
// live per-second throughput figure without keeping a full histogram.
type RequestRate struct {
	counter *ratecounter.RateCounter
}

// NewRequestRate builds a RequestRate over a window-second sliding window.
func NewRequestRate(window time.Duration) *RequestRate {
	return &RequestRate{counter: ratecounter.NewRateCounter(window)}
}

// Incr records one request having completed.
func (r *RequestRate) Incr() {
	r.counter.Incr(1)
}

// Rate returns the current requests-per-window count.
func (r *RequestRate) Rate() int64 {
	return r.counter.Rate()
}
