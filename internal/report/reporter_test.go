package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssbuild"
	"github.com/yacobolo/cssbuild/discover"
)

func TestPrintResult(t *testing.T) {
	tests := []struct {
		name    string
		result  cssbuild.Result
		output  string
		verbose bool
		want    string
	}{
		{
			name:   "recompiled",
			result: cssbuild.Result{Seq: 1, Recompiled: true, NewClasses: []string{"p-4", "flex"}},
			output: "dist/app.css",
			want:   "✓ #1 dist/app.css 2 new classes, recompiled\n",
		},
		{
			name:   "stdout",
			result: cssbuild.Result{Seq: 2, NewClasses: []string{"m-2"}},
			output: "-",
			want:   "✓ #2 stdout 1 new class\n",
		},
		{
			name:    "verbose lists classes",
			result:  cssbuild.Result{Seq: 3, NewClasses: []string{"gap-2"}},
			output:  "out.css",
			verbose: true,
			want:    "✓ #3 out.css 1 new class\n  + gap-2\n",
		},
		{
			name:   "failure",
			result: cssbuild.Result{Seq: 4, Err: errors.New("compile: boom"), Kind: cssbuild.KindCompile},
			output: "out.css",
			want:   "✗ #4 compile: boom (compile)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := &Reporter{w: &buf, verbose: tt.verbose}
			r.PrintResult(tt.result, tt.output)
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintStatistics(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}

	r.PrintStatistics(
		cssbuild.Stats{Builds: 3, Failures: 1, Recompilations: 2, KnownClasses: 7},
		discover.ScanStats{FilesDiscovered: 5, FilesScanned: 4, FilesSkipped: 1},
	)

	out := buf.String()
	assert.Contains(t, out, "Build Statistics")
	assert.Contains(t, out, "Builds:          3\n")
	assert.Contains(t, out, "Recompilations:  2\n")
	assert.Contains(t, out, "Known Classes:   7\n")
	assert.Contains(t, out, "Files Scanned:   4 of 5\n")
	assert.Contains(t, out, "Files Skipped:   1\n")
	assert.NotContains(t, out, "Files Failed")
}

func TestRenderStyle_NoColors(t *testing.T) {
	assert.Equal(t, "plain", RenderStyle(StyleRed, "plain", false))
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 new class", pluralizeCount(1, "new class", "new classes"))
	assert.Equal(t, "0 new classes", pluralizeCount(0, "new class", "new classes"))
}

func TestShouldUseColors_Force(t *testing.T) {
	assert.True(t, ShouldUseColors(true))

	t.Setenv("FORCE_COLOR", "1")
	assert.True(t, ShouldUseColors(false))
}
