package log

import (
	"fmt"
	"os"
)

// Helper adds printf-style and structured convenience methods on top of a
// plain Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps l.
func NewHelper(l Logger) *Helper {
	return &Helper{logger: l}
}

func (h *Helper) log(level Level, msg string) {
	_ = h.logger.Log(level, DefaultMessageKey, msg)
}

func (h *Helper) Debug(args ...interface{}) { h.log(LevelDebug, fmt.Sprint(args...)) }
func (h *Helper) Debugf(format string, args ...interface{}) {
	h.log(LevelDebug, fmt.Sprintf(format, args...))
}
func (h *Helper) Info(args ...interface{}) { h.log(LevelInfo, fmt.Sprint(args...)) }
func (h *Helper) Infof(format string, args ...interface{}) {
	h.log(LevelInfo, fmt.Sprintf(format, args...))
}
func (h *Helper) Warn(args ...interface{}) { h.log(LevelWarn, fmt.Sprint(args...)) }
func (h *Helper) Warnf(format string, args ...interface{}) {
	h.log(LevelWarn, fmt.Sprintf(format, args...))
}
func (h *Helper) Error(args ...interface{}) { h.log(LevelError, fmt.Sprint(args...)) }
func (h *Helper) Errorf(format string, args ...interface{}) {
	h.log(LevelError, fmt.Sprintf(format, args...))
}

// Errorw logs a structured record at error level: alternating key/value
// pairs, e.g. Errorw(log.DefaultMessageKey, "something failed", "err", err).
func (h *Helper) Errorw(keyvals ...interface{}) {
	_ = h.logger.Log(LevelError, keyvals...)
}

func (h *Helper) Fatal(args ...interface{}) {
	h.log(LevelFatal, fmt.Sprint(args...))
	os.Exit(1)
}

func (h *Helper) Fatalf(format string, args ...interface{}) {
	h.log(LevelFatal, fmt.Sprintf(format, args...))
	os.Exit(1)
}
