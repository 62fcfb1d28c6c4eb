package cssbuild

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/yacobolo/cssbuild/discover"
	"github.com/yacobolo/cssbuild/engine"
	"github.com/yacobolo/cssbuild/instrument"
	"github.com/yacobolo/cssbuild/internal/assets"
	"github.com/yacobolo/cssbuild/internal/utility"
)

// Config holds the configuration for a Builder
type Config struct {
	Engine          engine.Engine              // Defaults to the bundled utility engine
	Loader          engine.Loader              // Defaults to the virtual stylesheet resolver
	Source          discover.Source            // Document scanned when a request carries no classes
	Instrumentation instrument.Instrumentation // Defaults to instrument.Nop
	Base            string                     // Base path for resolution, defaults to "/"
}

// Stats is a snapshot of builder counters
type Stats struct {
	Builds         int    // Completed units of work, failed ones included
	Failures       int    // Units that returned an error
	Recompilations int    // Successful compiler recreations
	KnownClasses   int    // Classes handed to the current compiler
	Source         string // Last successfully compiled effective source
}

// Pending is a submitted build
type Pending struct {
	Seq uint64

	req    Request
	done   chan struct{}
	result Result
}

func (p *Pending) finish(result Result) {
	p.result = result
	close(p.done)
}

// Done is closed once the build has finished
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the build finishes or ctx is done.
// Canceling ctx abandons the wait only; the build still runs.
func (p *Pending) Wait(ctx context.Context) (Result, error) {
	select {
	case <-p.done:
		return p.result, nil
	case <-ctx.Done():
		return Result{Seq: p.Seq, Err: ctx.Err(), Kind: KindCanceled}, ctx.Err()
	}
}

// Builder serializes builds against one shared compiler.
//
// Builds run one at a time on a single worker goroutine, in submission
// order. The compiler is recreated only when the effective stylesheet text
// changes.
type Builder struct {
	state  *compilerState
	source discover.Source
	instr  instrument.Instrumentation

	mu     sync.Mutex
	queue  []*Pending
	seq    uint64
	closed bool
	wake   chan struct{}
	exited chan struct{}

	statsMu sync.Mutex
	stats   Stats
}

// New creates a Builder and starts its worker
func New(cfg Config) (*Builder, error) {
	if cfg.Base == "" {
		cfg.Base = "/"
	}
	if !path.IsAbs(cfg.Base) {
		return nil, fmt.Errorf("base %q must be an absolute path", cfg.Base)
	}

	instr := instrument.OrNop(cfg.Instrumentation)
	if cfg.Engine == nil {
		cfg.Engine = utility.New()
	}
	if cfg.Loader == nil {
		cfg.Loader = assets.NewResolver(instr)
	}

	b := &Builder{
		state:  newCompilerState(cfg.Engine, cfg.Loader, cfg.Base, instr),
		source: cfg.Source,
		instr:  instr,
		wake:   make(chan struct{}, 1),
		exited: make(chan struct{}),
	}
	go b.work()
	return b, nil
}

// Submit queues req and returns immediately
func (b *Builder) Submit(req Request) *Pending {
	b.mu.Lock()
	b.seq++
	p := &Pending{Seq: b.seq, req: req, done: make(chan struct{})}
	if b.closed {
		b.mu.Unlock()
		p.finish(failed(p.Seq, ErrClosed))
		return p
	}
	b.queue = append(b.queue, p)
	b.mu.Unlock()

	b.signal()
	return p
}

// Build submits req and waits for its result
func (b *Builder) Build(ctx context.Context, req Request) Result {
	result, _ := b.Submit(req).Wait(ctx)
	return result
}

// Stats returns a snapshot of the counters
func (b *Builder) Stats() Stats {
	b.statsMu.Lock()
	defer b.statsMu.Unlock()
	return b.stats
}

// Close stops accepting builds, finishes the queued ones and waits for the
// worker to exit. It is safe to call more than once.
func (b *Builder) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.signal()
	<-b.exited
	return nil
}

func (b *Builder) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// next pops the head of the queue. ok is false once closed and drained.
func (b *Builder) next() (p *Pending, ok bool) {
	for {
		b.mu.Lock()
		if len(b.queue) > 0 {
			p = b.queue[0]
			b.queue[0] = nil
			b.queue = b.queue[1:]
			b.mu.Unlock()
			return p, true
		}
		closed := b.closed
		b.mu.Unlock()

		if closed {
			return nil, false
		}
		<-b.wake
	}
}

func (b *Builder) work() {
	defer close(b.exited)
	for {
		p, ok := b.next()
		if !ok {
			return
		}
		p.finish(b.run(p.Seq, p.req))
	}
}

// run executes one unit of work. Errors and engine panics end up in the
// result and are reported to instrumentation exactly once.
func (b *Builder) run(seq uint64, req Request) (result Result) {
	label := fmt.Sprintf("Build #%d", seq)
	b.instr.Start(label)

	defer func() {
		if r := recover(); r != nil {
			result = failed(seq, &CompileError{Op: "panic", Err: fmt.Errorf("%v", r)})
		}
		if result.Err != nil {
			b.instr.Error(result.Err)
		}
		b.record(result)
		b.instr.End(label,
			slog.Bool("recompiled", result.Recompiled),
			slog.Int("classes", len(result.NewClasses)),
		)
	}()

	ctx := context.Background()

	recompiled, err := b.state.ensure(ctx, req.Stylesheet)
	if err != nil {
		return failed(seq, err)
	}

	delta, err := b.discoverNewClasses(ctx, req)
	if err != nil {
		return Result{Seq: seq, Recompiled: recompiled, Err: err, Kind: classify(err)}
	}

	css, err := b.state.build(delta)
	if err != nil {
		return Result{Seq: seq, Recompiled: recompiled, NewClasses: delta, Err: err, Kind: classify(err)}
	}

	return Result{
		Seq:        seq,
		CSS:        css,
		Recompiled: recompiled,
		NewClasses: delta,
	}
}

// discoverNewClasses returns the classes the current compiler has not seen
func (b *Builder) discoverNewClasses(ctx context.Context, req Request) ([]string, error) {
	b.instr.Start("Discover classes")
	defer b.instr.End("Discover classes")

	classes := req.Classes
	if classes == nil && b.source != nil {
		found, err := b.source.Classes(ctx)
		if err != nil {
			return nil, &DiscoveryError{Err: err}
		}
		classes = found
	}
	return b.state.discover(classes), nil
}

func (b *Builder) record(result Result) {
	b.statsMu.Lock()
	defer b.statsMu.Unlock()

	b.stats.Builds++
	if result.Err != nil {
		b.stats.Failures++
	}
	b.stats.Recompilations = b.state.recompilations
	b.stats.KnownClasses = b.state.known.Len()
	b.stats.Source = b.state.lastSource
}
