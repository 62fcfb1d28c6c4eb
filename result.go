package cssbuild

import (
	"context"
	"errors"
	"fmt"

	"github.com/yacobolo/cssbuild/engine"
)

// ErrClosed is returned for requests submitted after Close
var ErrClosed = errors.New("builder closed")

// CompileError wraps any failure raised by the engine
type CompileError struct {
	Op  string // "compile" or "build"
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// DiscoveryError wraps a failure of the class source
type DiscoveryError struct {
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover classes: %v", e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies a failed build
type ErrorKind int

const (
	// KindNone means the build succeeded
	KindNone ErrorKind = iota
	// KindResolution means an @import could not be resolved
	KindResolution
	// KindUnsupportedModule means a plugin or config module was requested
	KindUnsupportedModule
	// KindCompile means the engine failed for any other reason
	KindCompile
	// KindDiscovery means the class source failed
	KindDiscovery
	// KindClosed means the builder was closed before the request ran
	KindClosed
	// KindCanceled means the caller stopped waiting
	KindCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindResolution:
		return "resolution"
	case KindUnsupportedModule:
		return "unsupported-module"
	case KindCompile:
		return "compile"
	case KindDiscovery:
		return "discovery"
	case KindClosed:
		return "closed"
	case KindCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// classify maps an error to its kind
func classify(err error) ErrorKind {
	var discoveryErr *DiscoveryError
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, engine.ErrUnsupportedImport):
		return KindResolution
	case errors.Is(err, engine.ErrModulesUnsupported):
		return KindUnsupportedModule
	case errors.Is(err, ErrClosed):
		return KindClosed
	case errors.As(err, &discoveryErr):
		return KindDiscovery
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindCompile
	}
}

// Request describes one build
type Request struct {
	// Stylesheet is the caller's CSS. Empty compiles the default stylesheet.
	Stylesheet string
	// Classes replaces document scanning when non-nil
	Classes []string
}

// Result is the outcome of one build.
//
// Err is nil on success. A successful build with no new classes and no
// recompilation still carries the latest CSS.
type Result struct {
	Seq        uint64
	CSS        string
	Recompiled bool     // The compiler was recreated for this build
	NewClasses []string // Classes passed to the compiler for the first time
	Err        error
	Kind       ErrorKind
}

// OK reports whether the build succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

// Changed reports whether the build did any work
func (r Result) Changed() bool {
	return r.Recompiled || len(r.NewClasses) > 0
}

func failed(seq uint64, err error) Result {
	return Result{Seq: seq, Err: err, Kind: classify(err)}
}
