package main

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yacobolo/cssbuild"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild CSS whenever content files or the stylesheet change",
	Long: `Build once, then watch content files and the input stylesheet.
Changes are debounced and queued; builds run and are written in order.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	addBuildFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", 0, "Delay before rebuilding after a change (default 100ms)")
}

// skipDirs are never watched
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	config := buildBuildConfig()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := newSession(config, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchRoots(config) {
		if err := addRecursive(watcher, dir); err != nil {
			return err
		}
	}

	// Results are written by one goroutine in submission order
	pending := make(chan *cssbuild.Pending, 16)
	written := make(chan struct{})
	go func() {
		defer close(written)
		for p := range pending {
			if _, err := s.finish(context.Background(), p); err != nil {
				s.log.Error("write failed", "error", err)
			}
		}
	}()
	defer func() {
		close(pending)
		<-written
	}()

	submit := func() {
		p, err := s.submit()
		if err != nil {
			s.log.Error("rebuild skipped", "error", err)
			return
		}
		pending <- p
	}

	submit()
	s.log.Info("watching for changes", "content", config.Content, "input", config.Input)

	timer := time.NewTimer(config.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				// New directories need their own watch
				_ = addRecursive(watcher, event.Name)
			}
			if !relevant(config, event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			s.log.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(config.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("watch error", "error", err)

		case <-timer.C:
			submit()
		}
	}
}

// watchRoots returns the directories holding content files and the input
func watchRoots(config buildConfig) []string {
	seen := make(map[string]bool)
	var roots []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}

	for _, pattern := range config.Content {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		add(filepath.FromSlash(base))
	}
	if config.Input != "" {
		add(filepath.Dir(config.Input))
	}
	return roots
}

// addRecursive watches dir and every directory below it
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Vanished or unreadable entries are not fatal
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether a change to path should trigger a rebuild
func relevant(config buildConfig, path string) bool {
	path = filepath.Clean(path)
	if config.Input != "" && path == filepath.Clean(config.Input) {
		return true
	}
	for _, pattern := range config.Content {
		if ok, _ := doublestar.PathMatch(filepath.Clean(pattern), path); ok {
			return true
		}
	}
	return false
}
