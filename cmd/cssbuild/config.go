package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

var k = koanf.New(".")

// Defaults shared by the commands and buildBuildConfig
var (
	defaultContent  = []string{"**/*.html", "**/*.templ"}
	defaultOutput   = "-"
	defaultBase     = "/"
	defaultDebounce = 100 * time.Millisecond
)

// buildConfig is the resolved configuration of build and watch
type buildConfig struct {
	Input    string   // Stylesheet file; empty compiles the default stylesheet
	Output   string   // Output file; "-" writes to stdout
	Content  []string // Glob patterns of files scanned for classes
	Base     string
	Verbose  bool
	Quiet    bool
	Color    bool
	Trace    string
	Debounce time.Duration
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssbuild.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence; unset flags never replace loaded keys)
	// Merge flags from the specific command and its parent (root) flags
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSBUILD_* prefix)
	if err := k.Load(env.Provider("CSSBUILD_", ".", func(s string) string {
		// CSSBUILD_BUILD_OUTPUT -> build.output
		// CSSBUILD_WATCH_DEBOUNCE -> watch.debounce
		// CSSBUILD_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSBUILD_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildBuildConfig constructs the build configuration from koanf state.
func buildBuildConfig() buildConfig {
	config := buildConfig{
		Input:    getStringWithFallback("input", "build.input", ""),
		Output:   getStringWithFallback("output", "build.output", defaultOutput),
		Base:     getStringWithFallback("base", "base", defaultBase),
		Verbose:  getBoolWithFallback("verbose", "verbose", false),
		Quiet:    getBoolWithFallback("quiet", "quiet", false),
		Color:    getBoolWithFallback("color", "color", false),
		Trace:    getStringWithFallback("trace", "trace", ""),
		Debounce: getDurationWithFallback("debounce", "watch.debounce", defaultDebounce),
	}

	// Handle content: check flag key first, then config key
	if content := k.Strings("content"); len(content) > 0 {
		config.Content = content
	} else if content := k.Strings("build.content"); len(content) > 0 {
		config.Content = content
	} else {
		config.Content = defaultContent
	}

	return config
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getDurationWithFallback checks the flag key first, then the config file key, then returns the default.
// Zero durations count as unset.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if d := k.Duration(flagKey); d > 0 {
		return d
	}
	if d := k.Duration(configKey); d > 0 {
		return d
	}
	return defaultVal
}
