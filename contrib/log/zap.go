package log

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// zapLogger adapts a *zap.Logger to Logger, rendering keyvals as zap
// structured fields and pulling the DefaultMessageKey pair (if present) out
// as the log line's message.
type zapLogger struct {
	z *zap.Logger
}

// NewStdLogger returns a Logger writing console-encoded lines to w.
func NewStdLogger(w *os.File) Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return &zapLogger{z: zap.New(core)}
}

// FileLoggerOptions configures NewFileLogger's rotation policy.
type FileLoggerOptions struct {
	Path       string
	MaxSize    int // megabytes
	MaxAge     int // days
	MaxBackups int
	Compress   bool
	Level      Level
}

// NewFileLogger returns a Logger that writes JSON-encoded lines to a
// lumberjack-rotated file, the same rotation library the access log uses.
func NewFileLogger(opts FileLoggerOptions) (Logger, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, err
	}

	sink := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    nonZero(opts.MaxSize, 100),
		MaxAge:     nonZero(opts.MaxAge, 7),
		MaxBackups: nonZero(opts.MaxBackups, 3),
		Compress:   opts.Compress,
		LocalTime:  true,
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(sink), toZapLevel(opts.Level))
	return &zapLogger{z: zap.New(core)}, nil
}

func nonZero(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func toZapLevel(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Log implements Logger. keyvals is a flat alternating key/value list; the
// pair whose key equals DefaultMessageKey (if any) becomes the log line's
// message, the rest become structured fields.
func (l *zapLogger) Log(level Level, keyvals ...interface{}) error {
	msg := ""
	fields := make([]zap.Field, 0, len(keyvals)/2)

	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		if key == DefaultMessageKey && msg == "" {
			if s, ok := keyvals[i+1].(string); ok {
				msg = s
				continue
			}
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}

	switch level {
	case LevelDebug:
		l.z.Debug(msg, fields...)
	case LevelInfo:
		l.z.Info(msg, fields...)
	case LevelWarn:
		l.z.Warn(msg, fields...)
	case LevelError:
		l.z.Error(msg, fields...)
	case LevelFatal:
		// Helper.Fatal already calls os.Exit; avoid zap's own os.Exit here.
		l.z.Error(msg, fields...)
	}
	return nil
}
