// Package kratos is the app-lifecycle wrapper every binary is built
// around: it starts a fixed set of transport.Server instances together,
// waits for a termination signal, and stops them together within a bounded
// deadline. Named after the upstream framework whose App/Option shape this
// repo's main.go is written against, without pulling in the framework
// itself.
package kratos

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/omalloc/prox/contrib/log"
	"github.com/omalloc/prox/contrib/transport"
)

// App is a named, versioned process hosting one or more transport servers.
type App struct {
	id          string
	name        string
	version     string
	logger      log.Logger
	stopTimeout time.Duration
	servers     []transport.Server

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures an App built by New.
type Option func(*App)

func ID(id string) Option { return func(a *App) { a.id = id } }

func Name(name string) Option { return func(a *App) { a.name = name } }

func Version(version string) Option { return func(a *App) { a.version = version } }

func Logger(logger log.Logger) Option { return func(a *App) { a.logger = logger } }

// StopTimeout bounds how long Run waits for every server's Stop to return
// once a termination signal arrives.
func StopTimeout(d time.Duration) Option { return func(a *App) { a.stopTimeout = d } }

// Server registers the transport servers Run starts and stops together.
func Server(servers ...transport.Server) Option {
	return func(a *App) { a.servers = append(a.servers, servers...) }
}

// New builds an App from opts. Defaults: a 30s stop timeout, the process
// default logger.
func New(opts ...Option) *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		stopTimeout: 30 * time.Second,
		logger:      log.GetLogger(),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts every registered server concurrently, blocks until SIGINT or
// SIGTERM, then stops all of them concurrently within StopTimeout. The
// first server-start error cancels the others, and is returned once every
// server has been stopped and its Start has returned; shutdown errors are
// logged, not returned, since by that point the process is exiting
// regardless.
func (a *App) Run() error {
	helper := log.NewHelper(a.logger)
	helper.Infof("app %s (%s) version %s starting with %d server(s)", a.name, a.id, a.version, len(a.servers))

	sigCtx, stop := signal.NotifyContext(a.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(a.servers))
	var wg sync.WaitGroup
	for _, srv := range a.servers {
		wg.Add(1)
		go func(srv transport.Server) {
			defer wg.Done()
			if err := srv.Start(sigCtx); err != nil {
				errCh <- err
			}
		}(srv)
	}

	select {
	case <-sigCtx.Done():
		helper.Infof("app %s received termination signal, shutting down", a.name)
	case err := <-errCh:
		a.cancel()
		a.shutdown(helper)
		wg.Wait()
		return err
	}

	a.shutdown(helper)
	wg.Wait()
	return nil
}

// Stop cancels the App's run context, causing Run to begin its shutdown
// sequence as if a termination signal had arrived. Safe to call from
// another goroutine or a test.
func (a *App) Stop() {
	a.cancel()
}

func (a *App) shutdown(helper *log.Helper) {
	ctx, cancel := context.WithTimeout(context.Background(), a.stopTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, srv := range a.servers {
		wg.Add(1)
		go func(srv transport.Server) {
			defer wg.Done()
			if err := srv.Stop(ctx); err != nil {
				helper.Errorf("server stop failed: %s", err)
			}
		}(srv)
	}
	wg.Wait()
}
