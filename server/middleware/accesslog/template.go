package accesslog

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	xhttp "github.com/omalloc/prox/pkg/x/http"
)

// CommonLogFormat is the default template, equivalent to the Apache/NCSA
// Common Log Format.
const CommonLogFormat = `:remote_host - - [:date_clf] ":method :path :proto" :status :bytes_tx`

// dateCLFLayout is time.Format's layout for "02/Jan/2006:15:04:05 -0700".
const dateCLFLayout = "02/Jan/2006:15:04:05 -0700"

// token is one recognized placeholder in a log.format template.
type token struct {
	name string
	fn   func(r *http.Request, resp *xhttp.ResponseRecorder, at time.Time) string
}

var tokens = []token{
	{":remote_host", func(r *http.Request, _ *xhttp.ResponseRecorder, _ time.Time) string {
		host, _ := xhttp.RemoteHostPort(r.RemoteAddr)
		return host
	}},
	{":remote_port", func(r *http.Request, _ *xhttp.ResponseRecorder, _ time.Time) string {
		_, port := xhttp.RemoteHostPort(r.RemoteAddr)
		return port
	}},
	{":date_clf", func(_ *http.Request, _ *xhttp.ResponseRecorder, at time.Time) string {
		return at.Format(dateCLFLayout)
	}},
	{":date_iso8601", func(_ *http.Request, _ *xhttp.ResponseRecorder, at time.Time) string {
		return at.Format(time.RFC3339)
	}},
	{":method", func(r *http.Request, _ *xhttp.ResponseRecorder, _ time.Time) string {
		return r.Method
	}},
	{":path", func(r *http.Request, _ *xhttp.ResponseRecorder, _ time.Time) string {
		return r.URL.Path
	}},
	{":url", func(r *http.Request, _ *xhttp.ResponseRecorder, _ time.Time) string {
		return r.URL.RequestURI()
	}},
	{":proto", func(r *http.Request, _ *xhttp.ResponseRecorder, _ time.Time) string {
		return r.Proto
	}},
	{":status", func(_ *http.Request, resp *xhttp.ResponseRecorder, _ time.Time) string {
		status := resp.Status()
		if status == 0 {
			status = http.StatusOK
		}
		return strconv.Itoa(status)
	}},
	{":bytes_tx", func(_ *http.Request, resp *xhttp.ResponseRecorder, _ time.Time) string {
		return strconv.FormatUint(resp.Size(), 10)
	}},
}

// render expands every recognized token in format against r/resp/at,
// leaving unrecognized ":word" sequences untouched.
func render(format string, r *http.Request, resp *xhttp.ResponseRecorder, at time.Time) string {
	out := format
	for _, t := range tokens {
		if strings.Contains(out, t.name) {
			out = strings.ReplaceAll(out, t.name, t.fn(r, resp, at))
		}
	}
	return out
}
