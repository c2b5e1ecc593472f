package imagemap

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger writing to w at the given level, with
// timestamps formatted as "15:04:05.00".
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "imagemap",
	})
}

// discardLogger is used until SetLogger is called.
var discardLogger = log.New(io.Discard)

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// LoggerFromContext returns the logger attached by WithLogger, or
// log.Default() when there is none.
func LoggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
