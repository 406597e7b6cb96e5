// Package conf defines the configuration document shape consumed by the
// server: a single Bootstrap loaded once at startup and shared read-only by
// every site and middleware stage.
package conf

import "time"

const (
	// DefaultAddr is the public listener address when server.addr is unset.
	DefaultAddr = "127.0.0.1:3000"
	// DefaultAdminAddr is the metrics/healthz listener address when unset.
	DefaultAdminAddr = "127.0.0.1:3001"
	// DefaultConnectTimeout bounds how long the proxy waits for an upstream
	// connection before answering 504.
	DefaultConnectTimeout = 5 * time.Second
	// DefaultGzipThreshold is the minimum response size, in bytes, below
	// which the compression stage declines to compress.
	DefaultGzipThreshold int64 = 1400
)

// Bootstrap is the top-level configuration document.
type Bootstrap struct {
	Hostname string  `json:"hostname" yaml:"hostname"`
	PidFile  string  `json:"pidfile" yaml:"pidfile"`
	Logger   *Logger `json:"logger" yaml:"logger"`
	Server   *Server `json:"server" yaml:"server"`
	Sites    []*Site `json:"sites" yaml:"sites"`
}

// Logger is the logger section of the document (level, file path and
// lumberjack rotation policy). main.go does not apply it: the process logs
// through contrib/log's default stderr logger.
type Logger struct {
	Level      string `json:"level" yaml:"level"`
	Path       string `json:"path" yaml:"path"`
	Caller     bool   `json:"caller" yaml:"caller"`
	MaxSize    int    `json:"max_size" yaml:"max_size"`
	MaxAge     int    `json:"max_age" yaml:"max_age"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	Compress   bool   `json:"compress" yaml:"compress"`
}

// Server holds process-wide listener and default settings. Gzip and Cors
// here are defaults that ApplyDefaults folds into any Site that doesn't set
// its own value.
type Server struct {
	Addr              string        `json:"addr" yaml:"addr"`
	AdminAddr         string        `json:"admin_addr" yaml:"admin_addr"`
	MaxHeaderBytes    int           `json:"max_header_bytes" yaml:"max_header_bytes"`
	ReadHeaderTimeout time.Duration `json:"read_header_timeout" yaml:"read_header_timeout"`
	Timeouts          *Timeouts     `json:"timeouts" yaml:"timeouts"`
	Gzip              *Gzip         `json:"gzip" yaml:"gzip"`
	Cors              *Cors         `json:"cors" yaml:"cors"`
	// WorkerPoolSize bounds concurrent file reads (serve's ReadAt calls);
	// browse's ReadDir and serve's Stat do not go through the pool.
	// Zero/unset means 1, per spec's default.
	WorkerPoolSize int `json:"worker_pool_size" yaml:"worker_pool_size"`
}

// Timeouts are the only timeouts the core enforces itself; request/idle
// timeouts beyond Connect are transport-layer concerns applied to the
// underlying *http.Server.
type Timeouts struct {
	Connect    time.Duration `json:"connect" yaml:"connect"`
	Read       time.Duration `json:"read" yaml:"read"`
	Write      time.Duration `json:"write" yaml:"write"`
	Idle       time.Duration `json:"idle" yaml:"idle"`
	ReadHeader time.Duration `json:"read_header" yaml:"read_header"`
}

// Site is a virtual host: a non-empty set of Hosts sharing one pipeline
// configuration. A nil sub-config disables that middleware stage for the
// site.
type Site struct {
	Host HostList `json:"host" yaml:"host"`
	URL  string   `json:"url" yaml:"url"`

	Serve *Serve `json:"serve" yaml:"serve"`
	Gzip  *Gzip  `json:"gzip" yaml:"gzip"`
	Log   *Log   `json:"log" yaml:"log"`
	Cors  *Cors  `json:"cors" yaml:"cors"`
}

// Serve configures the static-file engine.
type Serve struct {
	Root     string `json:"root" yaml:"root"`
	Browse   bool   `json:"browse" yaml:"browse"`
	Dotfiles bool   `json:"dotfiles" yaml:"dotfiles"`
}

// Gzip configures the compression stage.
type Gzip struct {
	Threshold int64 `json:"threshold" yaml:"threshold"`
}

// Log configures the access-log template for a site. Empty Format means the
// Common Log Format default. Empty Path means the access log writes to
// stdout rather than a rotated file.
type Log struct {
	Format string `json:"format" yaml:"format"`
	Path   string `json:"path" yaml:"path"`
}

// Cors configures the preflight/response rewriter. MaxAge is a pointer so
// "unset" (omit the header) is distinguishable from 0.
type Cors struct {
	Origin           Origin   `json:"origin" yaml:"origin"`
	Methods          []string `json:"methods" yaml:"methods"`
	AllowedHeaders   []string `json:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           *int     `json:"max_age" yaml:"max_age"`
}
