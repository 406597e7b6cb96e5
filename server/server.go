package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudflare/tableflip"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omalloc/prox/conf"
	"github.com/omalloc/prox/contrib/log"
	"github.com/omalloc/prox/contrib/transport"
	xerrors "github.com/omalloc/prox/pkg/errors"
	"github.com/omalloc/prox/pkg/iobuf"
	"github.com/omalloc/prox/pkg/x/runtime"
	"github.com/omalloc/prox/server/middleware"
	"github.com/omalloc/prox/server/middleware/accesslog"
	"github.com/omalloc/prox/server/middleware/browse"
	"github.com/omalloc/prox/server/middleware/cors"
	"github.com/omalloc/prox/server/middleware/gzip"
	"github.com/omalloc/prox/server/middleware/proxy"
	"github.com/omalloc/prox/server/middleware/recovery"
	"github.com/omalloc/prox/server/middleware/root"
	"github.com/omalloc/prox/server/middleware/serve"
)

// HTTPServer owns the two process-wide listeners: the public site traffic
// socket, and an admin socket serving metrics/version/health probes kept
// fully separate from any site's pipeline.
type HTTPServer struct {
	public *http.Server
	admin  *http.Server

	flip   *tableflip.Upgrader
	config *conf.Bootstrap

	publicListener net.Listener
	adminListener  net.Listener
}

// NewServer builds both listeners' handlers from config: the site map for
// the public socket, and the fixed admin mux for the admin socket. The
// returned value doesn't bind any socket yet; that happens in Start, via
// flip so a running process can hand its listeners to a replacement.
func NewServer(flip *tableflip.Upgrader, config *conf.Bootstrap) (transport.Server, error) {
	sites, err := buildSiteMap(config)
	if err != nil {
		return nil, err
	}

	servConfig := config.Server

	public := &http.Server{
		Addr:              servConfig.Addr,
		Handler:           root.New(sites),
		ReadHeaderTimeout: servConfig.ReadHeaderTimeout,
		MaxHeaderBytes:    servConfig.MaxHeaderBytes,
	}
	if servConfig.Timeouts != nil {
		public.ReadTimeout = servConfig.Timeouts.Read
		public.WriteTimeout = servConfig.Timeouts.Write
		public.IdleTimeout = servConfig.Timeouts.Idle
		if servConfig.Timeouts.ReadHeader > 0 {
			public.ReadHeaderTimeout = servConfig.Timeouts.ReadHeader
		}
	}

	admin := &http.Server{
		Addr:    servConfig.AdminAddr,
		Handler: newAdminMux(),
	}

	return &HTTPServer{
		public: public,
		admin:  admin,
		flip:   flip,
		config: config,
	}, nil
}

// buildSiteMap assembles, for every configured site, the fixed
// Root→Log→Gzip→Cors→Browse→Serve→Proxy pipeline and registers it under
// each of the site's hosts. A host claimed by two sites is a config error.
func buildSiteMap(config *conf.Bootstrap) (map[conf.Host]http.Handler, error) {
	pool := iobuf.NewPool(config.Server.WorkerPoolSize)
	connectTimeout := config.Server.Timeouts.Connect

	sites := make(map[conf.Host]http.Handler)
	for _, site := range config.Sites {
		handler := buildPipeline(site, pool, connectTimeout)
		for _, host := range site.Host {
			if _, exists := sites[host]; exists {
				return nil, fmt.Errorf("conf: host %q is claimed by more than one site", host)
			}
			sites[host] = handler
		}
	}
	return sites, nil
}

// buildPipeline wires one site's stages in the fixed compile-time order:
// Log→Gzip→Cors→Browse→Serve→Proxy, wrapped in panic recovery. Serve falls
// through to Proxy on a miss; when the site has no upstream configured the
// Proxy stage passes the request on to the terminal handler, which answers
// 404.
func buildPipeline(site *conf.Site, pool *iobuf.Pool, connectTimeout time.Duration) http.Handler {
	terminal := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		xerrors.ErrNotFound().Write(w)
	})

	chain := middleware.Chain(
		recovery.Middleware(),
		accesslog.New(site.Log),
		gzip.New(site.Gzip),
		cors.New(site.Cors),
		browse.New(site.Serve),
		serve.New(site.Serve, pool),
		proxy.New(site, connectTimeout),
	)

	return chain(terminal)
}

func newAdminMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	mux.Handle("/version", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := json.Marshal(runtime.BuildInfo)
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
	}))

	mux.Handle("/healthz/liveness", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	mux.Handle("/healthz/readiness", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	return mux
}

func (s *HTTPServer) Start(ctx context.Context) error {
	publicListener, err := s.flip.Fds.Listen("tcp", s.public.Addr)
	if err != nil {
		return err
	}
	s.publicListener = publicListener

	adminListener, err := s.flip.Fds.Listen("tcp", s.admin.Addr)
	if err != nil {
		return err
	}
	s.adminListener = adminListener

	s.public.BaseContext = func(net.Listener) context.Context { return ctx }
	s.admin.BaseContext = func(net.Listener) context.Context { return ctx }

	go func() {
		log.Infof("admin server listening on %s", s.admin.Addr)
		if err := s.admin.Serve(s.adminListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("admin server stopped: %s", err)
		}
	}()

	log.Infof("prox listening on %s", s.public.Addr)
	if err := s.public.Serve(s.publicListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	var errs []error
	if err := s.public.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.admin.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
