package discover

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
	FilesFailed     int // Files that could not be read
}

var (
	// Patterns for class attributes in templates and HTML-like sources
	classPatterns = []*regexp.Regexp{
		regexp.MustCompile(`class="([^"]+)"`),
		regexp.MustCompile(`class='([^']+)'`),
		regexp.MustCompile(`class=\{\s*"([^"]+)"`),
	}

	// templ.Classes and templ.KV carry comma-separated arguments
	templClassesMulti = regexp.MustCompile(`templ\.Classes\(([^)]+)\)`)
	templKVMulti      = regexp.MustCompile(`templ\.KV\(([^)]+)\)`)

	// Comment lines are skipped
	commentPattern = regexp.MustCompile(`^\s*//`)
)

// FileSource scans project files for class tokens.
//
// Files are selected by doublestar patterns. templ-generated Go files and
// files matched by the ignore file are skipped. HTML files are parsed as
// documents; every other file is scanned line by line.
type FileSource struct {
	Patterns   []string
	IgnoreFile string // Defaults to ".gitignore"; missing file is fine

	ignoreOnce sync.Once
	ignore     *ignore.GitIgnore

	mu    sync.Mutex
	stats ScanStats
}

// NewFileSource creates a source scanning files matched by patterns
func NewFileSource(patterns ...string) *FileSource {
	return &FileSource{Patterns: patterns}
}

// Stats returns the statistics of the last scan
func (s *FileSource) Stats() ScanStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Files expands the patterns to the files that will be scanned
func (s *FileSource) Files() ([]string, error) {
	files, _, err := s.expand()
	return files, err
}

// Classes scans every matched file. Unreadable files are counted and skipped.
func (s *FileSource) Classes(ctx context.Context) ([]string, error) {
	files, stats, err := s.expand()
	if err != nil {
		return nil, err
	}

	var tokens []string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := scanFile(file)
		if err != nil {
			stats.FilesFailed++
			continue
		}
		tokens = append(tokens, found...)
	}

	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()

	return tokens, nil
}

// loadIgnore loads the ignore file once. A missing file disables filtering.
func (s *FileSource) loadIgnore() *ignore.GitIgnore {
	s.ignoreOnce.Do(func() {
		path := s.IgnoreFile
		if path == "" {
			path = ".gitignore"
		}
		gi, err := ignore.CompileIgnoreFile(path)
		if err != nil {
			return
		}
		s.ignore = gi
	})
	return s.ignore
}

// shouldSkip determines if a file should be excluded from scanning
//
// Two-layer filtering:
// 1. Pattern check (fast): Skip *_templ.go files
// 2. Ignore check: Skip ignored files (only for relative paths)
func (s *FileSource) shouldSkip(path string) bool {
	if isTemplGenerated(path) {
		return true
	}

	// Absolute paths (like /tmp/...) are outside the project ignore file
	if !filepath.IsAbs(path) {
		gi := s.loadIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// expand expands the glob patterns, deduplicates and filters
func (s *FileSource) expand() ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range s.Patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if s.shouldSkip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// isTemplGenerated checks if a file is a templ-generated Go file
func isTemplGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go")
}

func isHTML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}

// scanFile returns the class tokens of one file
func scanFile(path string) ([]string, error) {
	// #nosec G304 - path comes from configured patterns
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if isHTML(path) {
		src, err := ParseHTMLSource(file)
		if err != nil {
			return nil, err
		}
		return ClassesOf(src.Document()), nil
	}

	var tokens []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		tokens = append(tokens, extractClassesFromLine(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// extractClassesFromLine extracts all class tokens from a line
func extractClassesFromLine(line string) []string {
	if commentPattern.MatchString(line) {
		return nil
	}

	hasTemplClasses := strings.Contains(line, "templ.Classes(")
	hasTemplKV := strings.Contains(line, "templ.KV(")

	// templ helpers are handled on their own to avoid duplicates
	if hasTemplClasses || hasTemplKV {
		var tokens []string
		if hasTemplClasses {
			for _, m := range templClassesMulti.FindAllStringSubmatch(line, -1) {
				tokens = append(tokens, stringArguments(m[1])...)
			}
		}
		if hasTemplKV {
			for _, m := range templKVMulti.FindAllStringSubmatch(line, -1) {
				// For KV, only the first argument is the class name
				if parts := splitTemplArgs(m[1]); len(parts) > 0 {
					tokens = append(tokens, stringArguments(parts[0])...)
				}
			}
		}
		return tokens
	}

	var tokens []string
	for _, pattern := range classPatterns {
		for _, m := range pattern.FindAllStringSubmatch(line, -1) {
			tokens = append(tokens, strings.Fields(m[1])...)
		}
	}
	return tokens
}

// stringArguments returns the class tokens of the string literal arguments
// Handles: "foo", "bar baz", ui.Qux (ignored)
func stringArguments(args string) []string {
	var tokens []string
	for _, part := range splitTemplArgs(args) {
		part = strings.TrimSpace(part)
		if len(part) >= 2 && strings.HasPrefix(part, `"`) && strings.HasSuffix(part, `"`) {
			tokens = append(tokens, strings.Fields(strings.Trim(part, `"`))...)
		}
	}
	return tokens
}

// splitTemplArgs splits comma-separated arguments
// Simple splitter - tracks parentheses but not string literals
func splitTemplArgs(s string) []string {
	var parts []string
	var current strings.Builder
	parenDepth := 0

	for _, r := range s {
		switch r {
		case '(':
			parenDepth++
			current.WriteRune(r)
		case ')':
			parenDepth--
			current.WriteRune(r)
		case ',':
			if parenDepth == 0 {
				parts = append(parts, current.String())
				current.Reset()
			} else {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}
