package cssbuild

import (
	"context"
	"log/slog"

	"github.com/yacobolo/cssbuild/discover"
	"github.com/yacobolo/cssbuild/engine"
	"github.com/yacobolo/cssbuild/instrument"
)

// compilerState owns the shared compiler and everything tied to its lifetime.
// Only the builder's worker goroutine touches it.
type compilerState struct {
	engine engine.Engine
	loader engine.Loader
	base   string
	instr  instrument.Instrumentation

	compiler       engine.Compiler // nil until the first successful compile
	lastSource     string
	known          *discover.Known
	recompilations int
}

func newCompilerState(eng engine.Engine, loader engine.Loader, base string, instr instrument.Instrumentation) *compilerState {
	return &compilerState{
		engine: eng,
		loader: loader,
		base:   base,
		instr:  instr,
		known:  discover.NewKnown(),
	}
}

// ensure recreates the compiler when the effective source changed.
// On failure the previous compiler, source and known classes are kept.
func (s *compilerState) ensure(ctx context.Context, css string) (bool, error) {
	source := EffectiveSource(css)
	if s.compiler != nil && source == s.lastSource {
		return false, nil
	}

	s.instr.Start("Create compiler")
	defer s.instr.End("Create compiler")

	s.instr.Start("Compile CSS")
	compiler, err := s.engine.Compile(ctx, source, engine.Options{
		Base:   s.base,
		Loader: s.loader,
	})
	s.instr.End("Compile CSS", slog.Int("size", len(source)))
	if err != nil {
		return false, &CompileError{Op: "compile", Err: err}
	}

	s.compiler = compiler
	s.lastSource = source
	s.known.Reset()
	s.recompilations++
	return true, nil
}

// discover returns the classes not yet handed to the current compiler
func (s *compilerState) discover(classes []string) []string {
	return s.known.Add(classes)
}

// build runs the compiler on the delta. No compiler yields empty CSS.
func (s *compilerState) build(delta []string) (string, error) {
	if s.compiler == nil {
		return "", nil
	}

	s.instr.Start("Build CSS")
	css, err := s.compiler.Build(delta)
	s.instr.End("Build CSS", slog.Int("classes", len(delta)))
	if err != nil {
		return "", &CompileError{Op: "build", Err: err}
	}
	return css, nil
}
