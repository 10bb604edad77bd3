package log

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var level = func() *slog.LevelVar {
	v := &slog.LevelVar{}
	v.Set(slog.LevelInfo)
	return v
}()

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	if os.Getenv("PLUGINPULSE_DEBUG") != "" {
		level.Set(slog.LevelDebug)
	}
	defaultLogger.Store(slog.New(newHandler(os.Stderr)))
}

func newHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05")),
				}
			}
			return a
		},
	})
}

// SetDebug toggles debug-level output.
func SetDebug(on bool) {
	if on {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// SetOutput redirects log output (tests use this).
func SetOutput(w io.Writer) {
	defaultLogger.Store(slog.New(newHandler(w)))
}

func Debug(msg string, args ...any) { defaultLogger.Load().Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Load().Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Load().Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Load().Error(msg, args...) }
