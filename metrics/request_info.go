package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/omalloc/prox/internal/constants"
)

type requestMetricKey struct{}

// RequestMetric tracks per-request bookkeeping shared by the access-log
// and metrics middleware: timing, byte counts, and the request's ID.
type RequestMetric struct {
	StartAt           time.Time
	RequestID         string
	RecvReq           uint64
	SentResp          uint64
	RemoteAddr        string
	FirstResponseTime time.Time
}

// WithRequestMetric attaches a fresh RequestMetric to req's context,
// reusing an inbound X-Request-ID if the client (or a fronting proxy) set
// one.
func WithRequestMetric(req *http.Request) (*http.Request, *RequestMetric) {
	metric := &RequestMetric{
		StartAt:    time.Now(),
		RequestID:  MustParseRequestID(req.Header),
		RemoteAddr: req.RemoteAddr,
	}
	return req.WithContext(newContext(req.Context(), metric)), metric
}

// FromContext returns the RequestMetric attached by WithRequestMetric, or a
// zero value if none was attached.
func FromContext(ctx context.Context) *RequestMetric {
	if v, ok := ctx.Value(requestMetricKey{}).(*RequestMetric); ok {
		return v
	}
	return &RequestMetric{}
}

func newContext(ctx context.Context, metric *RequestMetric) context.Context {
	return context.WithValue(ctx, requestMetricKey{}, metric)
}

// MustParseRequestID returns h's X-Request-ID value, or a freshly generated
// UUID if absent.
func MustParseRequestID(h http.Header) string {
	if id := h.Get(constants.ProtocolRequestIDKey); id != "" {
		return id
	}
	return uuid.NewString()
}
