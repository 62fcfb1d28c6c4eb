package instrument

import (
	"log/slog"

	"github.com/npillmayer/schuko/tracing"
)

// Tracer forwards events to a schuko tracing channel.
type Tracer struct {
	key string
}

// NewTracer creates a sink tracing to key, e.g. "cssbuild.build"
func NewTracer(key string) *Tracer {
	return &Tracer{key: key}
}

func (t *Tracer) tracer() tracing.Trace {
	return tracing.Select(t.key)
}

func (t *Tracer) Start(label string) {
	t.tracer().Debugf("start %s", label)
}

func (t *Tracer) End(label string, attrs ...slog.Attr) {
	withAttrs(t.tracer(), attrs).Debugf("end %s", label)
}

func (t *Tracer) Hit(label string, attrs ...slog.Attr) {
	withAttrs(t.tracer(), attrs).Infof("%s", label)
}

func (t *Tracer) Error(err error) {
	if err == nil {
		return
	}
	t.tracer().Errorf("build failed: %v", err)
}

func withAttrs(tr tracing.Trace, attrs []slog.Attr) tracing.Trace {
	for _, a := range attrs {
		tr = tr.P(a.Key, a.Value.Any())
	}
	return tr
}
