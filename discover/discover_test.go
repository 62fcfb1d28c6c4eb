package discover

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnown_Add(t *testing.T) {
	k := NewKnown()

	delta := k.Add([]string{"p-4", "flex", "p-4", "", "m-2"})
	assert.Equal(t, []string{"p-4", "flex", "m-2"}, delta)
	assert.Equal(t, 3, k.Len())

	delta = k.Add([]string{"flex", "m-2", "gap-2"})
	assert.Equal(t, []string{"gap-2"}, delta)
	assert.True(t, k.Has("p-4"))
	assert.False(t, k.Has("nope"))

	assert.Empty(t, k.Add([]string{"p-4"}))
	assert.Empty(t, k.Add(nil))
}

func TestKnown_Reset(t *testing.T) {
	k := NewKnown()
	k.Add([]string{"p-4"})
	k.Reset()

	assert.Equal(t, 0, k.Len())
	assert.Equal(t, []string{"p-4"}, k.Add([]string{"p-4"}))
}

func TestHTMLSource_Classes(t *testing.T) {
	src, err := ParseHTMLSource(strings.NewReader(`<!doctype html>
<html class="dark">
<body>
  <div class="p-4  flex
    items-center">
    <span class="p-4">x</span>
    <span>no class</span>
    <svg class="size-6"></svg>
    <p class="">empty</p>
  </div>
</body>
</html>`))
	require.NoError(t, err)

	classes, err := src.Classes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"dark", "p-4", "flex", "items-center", "p-4", "size-6"}, classes)
}

func TestHTMLSource_Update(t *testing.T) {
	src, err := ParseHTMLSource(strings.NewReader(`<div class="p-4"></div>`))
	require.NoError(t, err)

	require.NoError(t, src.Update(strings.NewReader(`<div class="p-4"></div><div class="m-2"></div>`)))

	classes, err := src.Classes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"p-4", "m-2"}, classes)
}

func TestHTMLSource_NilDocument(t *testing.T) {
	src := NewHTMLSource(nil)
	classes, err := src.Classes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestExtractClassesFromLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "double quotes",
			line: `<div class="btn btn--primary">`,
			want: []string{"btn", "btn--primary"},
		},
		{
			name: "single quotes",
			line: `<div class='icon nav-item-icon'>`,
			want: []string{"icon", "nav-item-icon"},
		},
		{
			name: "templ braces",
			line: `<div class={ "p-4 m-2" }>`,
			want: []string{"p-4", "m-2"},
		},
		{
			name: "templ.Classes",
			line: `<div class={ templ.Classes("flex", ui.Card, "gap-2 p-1") }>`,
			want: []string{"flex", "gap-2", "p-1"},
		},
		{
			name: "templ.KV",
			line: `<div class={ templ.KV("hidden", !open) }>`,
			want: []string{"hidden"},
		},
		{
			name: "comment",
			line: `  // <div class="ignored">`,
			want: nil,
		},
		{
			name: "two attributes",
			line: `<a class="a"></a><b class="b c"></b>`,
			want: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractClassesFromLine(tt.line))
		})
	}
}

func TestIsTemplGenerated(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"internal/web/features/sidebar_templ.go", true},
		{"internal/web/features/sidebar.templ.go", true},
		{"internal/api/handlers.go", false},
		{"internal/web/features/sidebar.templ", false},
		{"internal/templates/handler.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.expected, isTemplGenerated(tt.path), "isTemplGenerated(%q)", tt.path)
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileSource_Classes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "web", "index.html"), `<main class="p-4"><p class="text-sm">hi</p></main>`)
	writeFile(t, filepath.Join(dir, "web", "card.templ"), `templ Card() {
	<div class="rounded-lg border">
		<span class={ templ.Classes("font-bold") }></span>
	</div>
}`)
	writeFile(t, filepath.Join(dir, "web", "card_templ.go"), `var x = "class=\"generated\""`)
	writeFile(t, filepath.Join(dir, "web", "notes.txt"), `class="not-matched"`)

	src := NewFileSource(
		filepath.Join(dir, "web", "**", "*.html"),
		filepath.Join(dir, "web", "**", "*.{templ,go}"),
	)

	classes, err := src.Classes(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p-4", "text-sm", "rounded-lg", "border", "font-bold"}, classes)

	stats := src.Stats()
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesScanned)
	assert.Equal(t, 1, stats.FilesSkipped)
}

func TestFileSource_DeduplicatesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.html"), `<div class="p-4"></div>`)

	src := NewFileSource(filepath.Join(dir, "*.html"), filepath.Join(dir, "**", "*.html"))
	files, err := src.Files()
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFileSource_BadPattern(t *testing.T) {
	src := NewFileSource("[")
	_, err := src.Classes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "glob pattern")
}

func TestFileSource_IgnoreFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	writeFile(t, "ignore.txt", "dist/\n")
	writeFile(t, filepath.Join("dist", "out.html"), `<div class="skipped"></div>`)
	writeFile(t, filepath.Join("src", "in.html"), `<div class="kept"></div>`)

	src := &FileSource{Patterns: []string{"**/*.html"}, IgnoreFile: "ignore.txt"}
	classes, err := src.Classes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, classes)
	assert.Equal(t, 1, src.Stats().FilesSkipped)
}
