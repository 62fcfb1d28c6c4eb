package instrument

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// Logger writes instrumentation events to a slog.Logger.
//
// Span timings are kept per label. Nested spans with distinct labels are
// fine; reopening a label that is still open restarts its clock.
//
// Log levels used:
//   - [slog.LevelDebug]: span start/end and hits
//   - [slog.LevelError]: errors
type Logger struct {
	log *slog.Logger

	mu     sync.Mutex
	starts map[string]time.Time
	now    func() time.Time
}

// NewLogger creates a Logger. A nil logger disables output.
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = NopLogger()
	}
	return &Logger{
		log:    l,
		starts: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Start opens a span
func (l *Logger) Start(label string) {
	l.mu.Lock()
	l.starts[label] = l.now()
	l.mu.Unlock()

	l.log.Debug("start", slog.String("span", label))
}

// End closes a span and logs its duration
func (l *Logger) End(label string, attrs ...slog.Attr) {
	l.mu.Lock()
	started, ok := l.starts[label]
	delete(l.starts, label)
	l.mu.Unlock()

	args := make([]any, 0, len(attrs)+2)
	args = append(args, slog.String("span", label))
	if ok {
		args = append(args, slog.Duration("elapsed", l.now().Sub(started)))
	}
	for _, a := range attrs {
		args = append(args, a)
	}
	l.log.Debug("end", args...)
}

// Hit logs a point event
func (l *Logger) Hit(label string, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	l.log.Debug(label, args...)
}

// Error logs a failure
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.log.Error("build failed", slog.String("error", err.Error()))
}
