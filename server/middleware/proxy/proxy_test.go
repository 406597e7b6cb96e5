package proxy

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/omalloc/prox/conf"
)

func TestProxyForwardsRequest(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/widgets", r.URL.Path)
		assert.Equal(t, "color=red", r.URL.RawQuery)
		assert.NotEmpty(t, r.Header.Get("X-Forwarded-For"))
		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	}))
	defer upstream.Close()

	handler := New(&conf.Site{URL: upstream.URL}, time.Second)(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/widgets?color=red", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "yes", rec.Header().Get("X-Upstream"))
	assert.Equal(t, "hello", rec.Body.String())
}

func TestProxyUpstreamTimeout(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	handler := New(&conf.Site{URL: upstream.URL}, 5*time.Millisecond)(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestProxyUpstreamTransportError(t *testing.T) {
	handler := New(&conf.Site{URL: "http://127.0.0.1:1"}, time.Second)(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProxyNilSiteURLPassesThrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	handler := New(&conf.Site{}, time.Second)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestProxyStripsHopByHopHeaders(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Connection"))
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	handler := New(&conf.Site{URL: upstream.URL}, time.Second)(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Connection", "close")
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Connection"))
}

func TestSingleJoiningSlash(t *testing.T) {
	assert.Equal(t, "/a/b", singleJoiningSlash("/a/", "/b"))
	assert.Equal(t, "/a/b", singleJoiningSlash("/a", "b"))
	assert.Equal(t, "/a/b", singleJoiningSlash("/a", "/b"))
}
