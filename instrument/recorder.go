package instrument

import (
	"log/slog"
	"sync"
)

// EventKind classifies a recorded event
type EventKind string

// Recorded event kinds
const (
	EventStart EventKind = "start"
	EventEnd   EventKind = "end"
	EventHit   EventKind = "hit"
	EventError EventKind = "error"
)

// Event is one recorded instrumentation call
type Event struct {
	Kind  EventKind
	Label string
	Attrs map[string]any
	Err   error
}

// Recorder keeps every event in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) Start(label string) {
	r.add(Event{Kind: EventStart, Label: label})
}

func (r *Recorder) End(label string, attrs ...slog.Attr) {
	r.add(Event{Kind: EventEnd, Label: label, Attrs: attrMap(attrs)})
}

func (r *Recorder) Hit(label string, attrs ...slog.Attr) {
	r.add(Event{Kind: EventHit, Label: label, Attrs: attrMap(attrs)})
}

func (r *Recorder) Error(err error) {
	r.add(Event{Kind: EventError, Err: err})
}

// Events returns a copy of all recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events match kind and label. An empty label matches any.
func (r *Recorder) Count(kind EventKind, label string) int {
	n := 0
	for _, e := range r.Events() {
		if e.Kind == kind && (label == "" || e.Label == label) {
			n++
		}
	}
	return n
}

// Reset drops all recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func attrMap(attrs []slog.Attr) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]any, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value.Any()
	}
	return m
}
