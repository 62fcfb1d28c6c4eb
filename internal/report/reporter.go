// Package report prints build results for the cssbuild CLI.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/cssbuild"
	"github.com/yacobolo/cssbuild/discover"
)

// Reporter formats build results
type Reporter struct {
	w         io.Writer
	useColors bool
	verbose   bool
}

// NewReporter creates a reporter. forceColor enables colors regardless of
// the terminal.
func NewReporter(w io.Writer, forceColor, verbose bool) *Reporter {
	return &Reporter{
		w:         w,
		useColors: ShouldUseColors(forceColor),
		verbose:   verbose,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintResult outputs one line for a finished build
func (r *Reporter) PrintResult(result cssbuild.Result, output string) {
	label := fmt.Sprintf("#%d", result.Seq)

	if result.Err != nil {
		fmt.Fprintf(r.w, "%s %s %v %s\n",
			RenderStyle(StyleRed, "✗", r.useColors),
			label,
			result.Err,
			RenderStyle(StyleGray, "("+result.Kind.String()+")", r.useColors))
		return
	}

	target := output
	if target == "" || target == "-" {
		target = "stdout"
	}

	fmt.Fprintf(r.w, "%s %s %s %s",
		RenderStyle(StyleGreen, "✓", r.useColors),
		label,
		RenderStyle(StyleCyan, target, r.useColors),
		pluralizeCount(len(result.NewClasses), "new class", "new classes"))
	if result.Recompiled {
		fmt.Fprintf(r.w, ", %s", RenderStyle(StyleYellow, "recompiled", r.useColors))
	}
	fmt.Fprintln(r.w)

	if r.verbose && len(result.NewClasses) > 0 {
		for _, class := range result.NewClasses {
			fmt.Fprintf(r.w, "  + %s\n", class)
		}
	}
}

// PrintStatistics outputs the builder counters and the last scan
func (r *Reporter) PrintStatistics(stats cssbuild.Stats, scan discover.ScanStats) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Build Statistics", r.useColors))
	fmt.Fprintln(r.w, "----------------")

	fmt.Fprintf(r.w, "Builds:          %d\n", stats.Builds)
	fmt.Fprintf(r.w, "Failures:        %d\n", stats.Failures)
	fmt.Fprintf(r.w, "Recompilations:  %d\n", stats.Recompilations)
	fmt.Fprintf(r.w, "Known Classes:   %d\n", stats.KnownClasses)
	fmt.Fprintf(r.w, "Files Scanned:   %d of %d\n", scan.FilesScanned, scan.FilesDiscovered)
	if scan.FilesSkipped > 0 {
		fmt.Fprintf(r.w, "Files Skipped:   %d\n", scan.FilesSkipped)
	}
	if scan.FilesFailed > 0 {
		fmt.Fprintf(r.w, "Files Failed:    %d\n", scan.FilesFailed)
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
