// Package proxy implements the reverse-proxy stage: request forwarding to
// a site's upstream, hop-by-hop header scrubbing, and a connect-timeout
// race against the upstream round trip.
package proxy

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/omalloc/prox/conf"
	xerrors "github.com/omalloc/prox/pkg/errors"
	xhttp "github.com/omalloc/prox/pkg/x/http"
	"github.com/omalloc/prox/server/middleware"
)

// New builds the proxy stage for site, forwarding any request that reaches
// it (i.e. Serve declined) to site.URL. A nil/empty URL disables the stage:
// the pipeline falls through to a 404, since Proxy is the terminal stage.
func New(site *conf.Site, connectTimeout time.Duration) middleware.Middleware {
	if site == nil || site.URL == "" {
		return middleware.EmptyMiddleware
	}
	upstream, err := url.Parse(site.URL)
	if err != nil {
		return middleware.EmptyMiddleware
	}
	if connectTimeout <= 0 {
		connectTimeout = conf.DefaultConnectTimeout
	}
	p := &stage{upstream: upstream, connectTimeout: connectTimeout, clients: make(map[string]*http.Client)}
	return func(next http.Handler) http.Handler {
		return p
	}
}

type stage struct {
	upstream       *url.URL
	connectTimeout time.Duration

	mu      sync.RWMutex
	clients map[string]*http.Client
}

func (s *stage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target, ok := s.joinURL(r.URL)
	if !ok {
		xerrors.ErrNotFound().Write(w)
		return
	}

	outReq := r.Clone(r.Context())
	outReq.URL = target
	outReq.Host = target.Host
	outReq.RequestURI = ""
	xhttp.RemoveHopByHopHeaders(outReq.Header)
	appendForwardedFor(outReq)

	client := s.clientFor(target)

	type result struct {
		resp *http.Response
		err  error
	}
	done := make(chan result, 1)

	// The timer only races the round trip up to the response headers; once
	// it is stopped, the body streams under the request's own context.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	timer := time.NewTimer(s.connectTimeout)
	defer timer.Stop()

	go func() {
		resp, err := client.Do(outReq.WithContext(ctx))
		done <- result{resp, err}
	}()

	select {
	case <-timer.C:
		cancel()
		xerrors.ErrUpstreamTimeout(context.DeadlineExceeded).Write(w)
		return
	case res := <-done:
		if res.err != nil {
			xerrors.ErrUpstream(res.err).Write(w)
			return
		}
		s.relay(w, res.resp)
	}
}

func (s *stage) joinURL(reqURL *url.URL) (*url.URL, bool) {
	target := *s.upstream
	target.Path = singleJoiningSlash(s.upstream.Path, reqURL.Path)
	if reqURL.RawQuery != "" {
		if target.RawQuery != "" {
			target.RawQuery += "&" + reqURL.RawQuery
		} else {
			target.RawQuery = reqURL.RawQuery
		}
	}
	return &target, true
}

func singleJoiningSlash(a, b string) string {
	aslash := len(a) > 0 && a[len(a)-1] == '/'
	bslash := len(b) > 0 && b[0] == '/'
	switch {
	case aslash && bslash:
		return a + b[1:]
	case !aslash && !bslash:
		return a + "/" + b
	default:
		return a + b
	}
}

func appendForwardedFor(r *http.Request) {
	host, _ := xhttp.RemoteHostPort(r.RemoteAddr)
	if host == "" {
		return
	}
	if prior := r.Header.Get("X-Forwarded-For"); prior != "" {
		r.Header.Set("X-Forwarded-For", prior+", "+host)
	} else {
		r.Header.Set("X-Forwarded-For", host)
	}
}

func (s *stage) relay(w http.ResponseWriter, resp *http.Response) {
	defer resp.Body.Close()

	xhttp.RemoveHopByHopHeaders(resp.Header)
	xhttp.CopyHeader(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			return
		}
	}
}

// clientFor returns the cached *http.Client for target's authority, building
// one lazily on first use. One client per distinct upstream authority is
// kept for the process lifetime.
func (s *stage) clientFor(target *url.URL) *http.Client {
	addr := target.Host

	s.mu.RLock()
	client, ok := s.clients[addr]
	s.mu.RUnlock()
	if ok {
		return client
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if client, ok := s.clients[addr]; ok {
		return client
	}

	client = &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
			MaxIdleConns:          1000,
			MaxIdleConnsPerHost:   100,
			IdleConnTimeout:       10 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			DisableCompression:    true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	s.clients[addr] = client
	return client
}
