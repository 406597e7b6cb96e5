// Package accesslog implements the access-logging stage: every request is
// recorded through a per-site template after the rest of the pipeline has
// produced a response.
package accesslog

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omalloc/prox/conf"
	xhttp "github.com/omalloc/prox/pkg/x/http"
	"github.com/omalloc/prox/server/middleware"
)

// New builds the access-log stage for cfg. A nil cfg still logs, using
// CommonLogFormat and stdout — logging is an ambient concern carried
// regardless of whether a site configures it explicitly.
func New(cfg *conf.Log) middleware.Middleware {
	format := CommonLogFormat
	var path string
	if cfg != nil {
		if cfg.Format != "" {
			format = cfg.Format
		}
		path = cfg.Path
	}

	logger := newWriter(path)

	return func(next http.Handler) http.Handler {
		return &stage{format: format, logger: logger, next: next}
	}
}

type stage struct {
	format string
	logger *zap.Logger
	next   http.Handler
}

func (s *stage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := xhttp.NewResponseRecorder(w)
	start := time.Now()

	s.next.ServeHTTP(rec, r)

	line := render(s.format, r, rec, start)
	s.logger.Info(line)
}

// newWriter builds the access-log sink: a rotated file via lumberjack when
// path is set, stdout otherwise. The encoder is stripped of zap's own
// timestamp/level fields since the rendered line already carries whatever
// timestamp its template calls for.
func newWriter(path string) *zap.Logger {
	cfg := zap.NewProductionConfig().EncoderConfig
	cfg.ConsoleSeparator = " "
	cfg.EncodeTime = func(time.Time, zapcore.PrimitiveArrayEncoder) {}
	cfg.EncodeLevel = func(zapcore.Level, zapcore.PrimitiveArrayEncoder) {}

	var sink zapcore.WriteSyncer
	if path == "" {
		sink = zapcore.AddSync(os.Stdout)
	} else {
		_ = os.MkdirAll(filepath.Dir(path), 0o755)
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     1,
			LocalTime:  true,
		})
	}

	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), sink, zapcore.InfoLevel))
}
