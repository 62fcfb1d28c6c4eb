package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yacobolo/cssbuild"
	"github.com/yacobolo/cssbuild/discover"
	"github.com/yacobolo/cssbuild/internal/report"
)

// session ties a Builder to the project files and the output target
type session struct {
	cfg      buildConfig
	builder  *cssbuild.Builder
	source   *discover.FileSource
	reporter *report.Reporter
	log      *slog.Logger
	stdout   io.Writer
}

func newSession(cfg buildConfig, stdout, stderr io.Writer) (*session, error) {
	log := newLogger(cfg)
	source := discover.NewFileSource(cfg.Content...)

	builder, err := cssbuild.New(cssbuild.Config{
		Source:          source,
		Instrumentation: newInstrumentation(cfg, log),
		Base:            cfg.Base,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		builder:  builder,
		source:   source,
		reporter: report.NewReporter(stderr, cfg.Color, cfg.Verbose),
		log:      log,
		stdout:   stdout,
	}, nil
}

func (s *session) Close() error {
	return s.builder.Close()
}

// request reads the stylesheet and prepares the next build
func (s *session) request() (cssbuild.Request, error) {
	if s.cfg.Input == "" {
		return cssbuild.Request{}, nil
	}

	// #nosec G304 - path comes from user configuration
	data, err := os.ReadFile(s.cfg.Input)
	if err != nil {
		return cssbuild.Request{}, fmt.Errorf("reading stylesheet: %w", err)
	}
	return cssbuild.Request{Stylesheet: string(data)}, nil
}

// submit queues a build for the current state of the project
func (s *session) submit() (*cssbuild.Pending, error) {
	req, err := s.request()
	if err != nil {
		return nil, err
	}
	return s.builder.Submit(req), nil
}

// finish waits for p, reports it and writes the CSS
func (s *session) finish(ctx context.Context, p *cssbuild.Pending) (cssbuild.Result, error) {
	result, err := p.Wait(ctx)
	if err != nil {
		return result, err
	}

	if !s.cfg.Quiet {
		s.reporter.PrintResult(result, s.cfg.Output)
	}
	if result.Err != nil {
		return result, nil
	}
	return result, s.write(result.CSS)
}

// write stores css at the configured output
func (s *session) write(css string) error {
	if s.cfg.Output == "" || s.cfg.Output == "-" {
		_, err := io.WriteString(s.stdout, css)
		return err
	}

	if dir := filepath.Dir(s.cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(s.cfg.Output, []byte(css), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (s *session) printStatistics() {
	if s.cfg.Quiet || !s.cfg.Verbose {
		return
	}
	s.reporter.PrintStatistics(s.builder.Stats(), s.source.Stats())
}
