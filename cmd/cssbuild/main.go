// Package main provides the cssbuild CLI for generating utility CSS.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/yacobolo/cssbuild/instrument"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns the logger for build events. Quiet mode discards
// everything; verbose mode includes span timings.
func newLogger(cfg buildConfig) *slog.Logger {
	if cfg.Quiet {
		return instrument.NopLogger()
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newInstrumentation combines the logger with the tracing sink when
// --trace is set
func newInstrumentation(cfg buildConfig, log *slog.Logger) instrument.Instrumentation {
	logger := instrument.NewLogger(log)
	if cfg.Trace == "" {
		return logger
	}

	tr := gologadapter.New()
	tr.SetTraceLevel(tracing.TraceLevelFromString(cfg.Trace))
	tr.SetOutput(os.Stderr)
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace {
		return tr
	}))

	return instrument.Multi{logger, instrument.NewTracer("cssbuild")}
}
