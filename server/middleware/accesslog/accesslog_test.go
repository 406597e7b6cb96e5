package accesslog

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	xhttp "github.com/omalloc/prox/pkg/x/http"
)

func TestRenderCommonLogFormat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/widgets?x=1", nil)
	req.RemoteAddr = "203.0.113.5:4444"
	rec := xhttp.NewResponseRecorder(httptest.NewRecorder())
	rec.WriteHeader(http.StatusOK)
	_, _ = rec.Write([]byte("hello"))

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	line := render(CommonLogFormat, req, rec, at)

	assert.Contains(t, line, "203.0.113.5")
	assert.Contains(t, line, "02/Jan/2026:03:04:05")
	assert.Contains(t, line, "GET /widgets")
	assert.Contains(t, line, "200")
	assert.Contains(t, line, "5")
}

func TestRenderCustomTemplateTokens(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/a", nil)
	req.RemoteAddr = "198.51.100.9:9999"
	rec := xhttp.NewResponseRecorder(httptest.NewRecorder())
	rec.WriteHeader(http.StatusNotFound)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	line := render(":remote_host :remote_port :status :date_iso8601", req, rec, at)

	assert.Equal(t, "198.51.100.9 9999 404 2026-01-02T03:04:05Z", line)
}

func TestAccessLogPassesResponseThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	handler := New(nil)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
