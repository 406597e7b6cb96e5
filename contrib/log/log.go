// Package log is the structured logging facade used across the server: a
// small leveled key-value Logger interface, a package-level default
// instance, and printf-style convenience wrappers. It mirrors the facade
// the rest of the tree is written against (NewHelper/With/SetLogger), kept
// deliberately small rather than pulling in a full logging framework.
package log

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/omalloc/prox/internal/constants"
	"github.com/omalloc/prox/metrics"
)

// Level is a log severity.
type Level int8

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// DefaultMessageKey is the keyvals key Helper uses for the formatted
// message when logging via Printf-style calls.
const DefaultMessageKey = "msg"

// Valuer is lazily evaluated at each log call, e.g. a timestamp or a
// request ID pulled from ctx.
type Valuer func(ctx context.Context) interface{}

// Timestamp returns a Valuer that formats time.Now with layout.
func Timestamp(layout string) Valuer {
	return func(context.Context) interface{} {
		return nowFunc().Format(layout)
	}
}

// nowFunc is a seam for tests; production always uses time.Now.
var nowFunc = time.Now

// Logger is the minimal sink every adapter (zap, filter, prefix-binder)
// implements: a leveled, flat key-value record.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

var (
	mu            sync.RWMutex
	defaultLogger Logger = NewStdLogger(os.Stderr)
)

// DefaultLogger is the process-wide logger in effect before SetLogger is
// called.
var DefaultLogger = defaultLogger

// SetLogger replaces the process-wide default logger.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// GetLogger returns the current process-wide default logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

func currentHelper() *Helper {
	return NewHelper(GetLogger())
}

// Context returns a Helper bound to ctx's request ID, so every record it
// emits can be correlated back to the request that produced it.
func Context(ctx context.Context) *Helper {
	id := metrics.FromContext(ctx).RequestID
	return NewHelper(With(GetLogger(), constants.ProtocolRequestIDKey, id))
}

// With binds keyvals (which may include Valuers, evaluated per call) to
// every record l produces, returning a new Logger.
func With(l Logger, keyvals ...interface{}) Logger {
	return &prefixed{base: l, prefix: keyvals}
}

type prefixed struct {
	base   Logger
	prefix []interface{}
}

func (p *prefixed) Log(level Level, keyvals ...interface{}) error {
	merged := make([]interface{}, 0, len(p.prefix)+len(keyvals))
	merged = append(merged, bindValues(p.prefix)...)
	merged = append(merged, keyvals...)
	return p.base.Log(level, merged...)
}

func bindValues(keyvals []interface{}) []interface{} {
	bound := make([]interface{}, len(keyvals))
	for i, v := range keyvals {
		if fn, ok := v.(Valuer); ok {
			bound[i] = fn(context.Background())
			continue
		}
		bound[i] = v
	}
	return bound
}

// Package-level convenience wrappers delegate to a Helper built around the
// current default logger.

func Debug(args ...interface{})                 { currentHelper().Debug(args...) }
func Debugf(format string, args ...interface{}) { currentHelper().Debugf(format, args...) }
func Info(args ...interface{})                  { currentHelper().Info(args...) }
func Infof(format string, args ...interface{})  { currentHelper().Infof(format, args...) }
func Warn(args ...interface{})                  { currentHelper().Warn(args...) }
func Warnf(format string, args ...interface{})  { currentHelper().Warnf(format, args...) }
func Error(args ...interface{})                 { currentHelper().Error(args...) }
func Errorf(format string, args ...interface{}) { currentHelper().Errorf(format, args...) }
func Errorw(keyvals ...interface{})             { currentHelper().Errorw(keyvals...) }
func Fatal(args ...interface{})                 { currentHelper().Fatal(args...) }
func Fatalf(format string, args ...interface{}) { currentHelper().Fatalf(format, args...) }
