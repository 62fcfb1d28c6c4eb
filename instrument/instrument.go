// Package instrument records build events for observability.
//
// Instrumentation never influences control flow: every method is fire and
// forget. Spans are opened with Start and closed with End using the same
// label; Hit records a point event and Error a failure.
package instrument

import (
	"log/slog"
)

// Instrumentation receives build events
type Instrumentation interface {
	Start(label string)
	End(label string, attrs ...slog.Attr)
	Hit(label string, attrs ...slog.Attr)
	Error(err error)
}

// Nop discards every event
type Nop struct{}

func (Nop) Start(string)             {}
func (Nop) End(string, ...slog.Attr) {}
func (Nop) Hit(string, ...slog.Attr) {}
func (Nop) Error(error)              {}

// Multi fans events out to several sinks
type Multi []Instrumentation

func (m Multi) Start(label string) {
	for _, i := range m {
		i.Start(label)
	}
}

func (m Multi) End(label string, attrs ...slog.Attr) {
	for _, i := range m {
		i.End(label, attrs...)
	}
}

func (m Multi) Hit(label string, attrs ...slog.Attr) {
	for _, i := range m {
		i.Hit(label, attrs...)
	}
}

func (m Multi) Error(err error) {
	for _, i := range m {
		i.Error(err)
	}
}

// OrNop returns i, or Nop when i is nil
func OrNop(i Instrumentation) Instrumentation {
	if i == nil {
		return Nop{}
	}
	return i
}
