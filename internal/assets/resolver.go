package assets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yacobolo/cssbuild/engine"
	"github.com/yacobolo/cssbuild/instrument"
)

// entry maps a set of identifiers to one bundled stylesheet
type entry struct {
	ids  []string
	file string
}

// table is checked in order; first match wins
var table = []entry{
	{ids: []string{"tailwindcss"}, file: Index},
	{ids: []string{"tailwindcss/preflight", "tailwindcss/preflight.css", "./preflight.css"}, file: Preflight},
	{ids: []string{"tailwindcss/theme", "tailwindcss/theme.css", "./theme.css"}, file: Theme},
	{ids: []string{"tailwindcss/utilities", "tailwindcss/utilities.css", "./utilities.css"}, file: Utilities},
}

// VirtualPath returns the synthetic path reported for a bundled file
func VirtualPath(file string) string {
	return "virtual:tailwindcss/" + file
}

// Resolver implements engine.Loader over the bundled stylesheets.
// It never loads plugin or config modules.
type Resolver struct {
	instr instrument.Instrumentation
}

var _ engine.Loader = (*Resolver)(nil)

// NewResolver creates a resolver reporting to instr (nil for none)
func NewResolver(instr instrument.Instrumentation) *Resolver {
	return &Resolver{instr: instrument.OrNop(instr)}
}

// Lookup returns the bundled file name for id, if supported
func (r *Resolver) Lookup(id string) (string, bool) {
	for _, e := range table {
		for _, candidate := range e.ids {
			if candidate == id {
				return e.file, true
			}
		}
	}
	return "", false
}

// IDs returns every supported identifier grouped by bundled file, in table order
func (r *Resolver) IDs() map[string][]string {
	out := make(map[string][]string, len(table))
	for _, e := range table {
		out[e.file] = append([]string(nil), e.ids...)
	}
	return out
}

// Files returns the bundled file names in table order
func (r *Resolver) Files() []string {
	files := make([]string, 0, len(table))
	for _, e := range table {
		files = append(files, e.file)
	}
	return files
}

// LoadStylesheet resolves id to a bundled stylesheet.
// Every call records exactly one instrumentation hit.
func (r *Resolver) LoadStylesheet(_ context.Context, id, base string) (engine.Stylesheet, error) {
	file, ok := r.Lookup(id)
	if !ok {
		err := &engine.ResolutionError{ID: id, Base: base}
		r.instr.Hit("Failed to load stylesheet",
			slog.String("id", id),
			slog.String("base", base),
			slog.String("error", err.Error()))
		return engine.Stylesheet{}, err
	}

	sheet := engine.Stylesheet{
		Path:    VirtualPath(file),
		Base:    base,
		Content: mustContent(file),
	}

	r.instr.Hit("Loaded stylesheet",
		slog.String("id", id),
		slog.String("base", base),
		slog.Int("size", len(sheet.Content)))

	return sheet, nil
}

// LoadModule always fails: plugins and config files cannot be loaded here
func (r *Resolver) LoadModule(_ context.Context, id, _ string, kind engine.ModuleKind) (engine.Module, error) {
	return engine.Module{}, fmt.Errorf("load %s %q: %w", kind, id, engine.ErrModulesUnsupported)
}
