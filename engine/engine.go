// Package engine defines the contract between cssbuild and a CSS utility
// compiler.
//
// An Engine turns a stylesheet source into a Compiler. The Compiler is then
// asked to build CSS for a list of candidate class names. The engine loads
// imported stylesheets and plugin modules exclusively through the Loader it
// is handed, so the host decides what "files" exist.
//
//	c, err := eng.Compile(ctx, `@import "tailwindcss";`, engine.Options{
//		Base:   "/",
//		Loader: loader,
//	})
//	css, err := c.Build([]string{"p-4", "m-2"})
package engine

import "context"

// Stylesheet is a resolved stylesheet handed back to the engine
type Stylesheet struct {
	Path    string // "virtual:tailwindcss/index.css"
	Base    string // Base used to resolve imports inside Content
	Content string
}

// ModuleKind tells the loader why a module is requested
type ModuleKind string

// Module kinds requested by @plugin and @config directives
const (
	ModulePlugin ModuleKind = "plugin"
	ModuleConfig ModuleKind = "config"
)

// Module is a loaded plugin or config module
type Module struct {
	Path  string
	Base  string
	Value any
}

// Loader resolves everything an engine needs from outside the source text.
type Loader interface {
	// LoadStylesheet resolves an @import identifier relative to base.
	LoadStylesheet(ctx context.Context, id, base string) (Stylesheet, error)
	// LoadModule resolves a @plugin or @config identifier relative to base.
	LoadModule(ctx context.Context, id, base string, kind ModuleKind) (Module, error)
}

// Options are passed to Engine.Compile
type Options struct {
	Base   string
	Loader Loader
}

// Engine creates compilers from stylesheet sources.
type Engine interface {
	Compile(ctx context.Context, source string, opts Options) (Compiler, error)
}

// Compiler builds CSS for candidate classes.
//
// Build may be called repeatedly. Candidates accumulate across calls and the
// returned CSS always covers every candidate seen so far.
type Compiler interface {
	Build(candidates []string) (string, error)
}
