package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssbuild/internal/assets"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
	return dir
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "cssbuild dev\n", out.String())
}

func TestBuildCommand_WritesOutput(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")
	resetKoanf()
	chdirTemp(t)

	require.NoError(t, os.MkdirAll("web", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("web", "index.html"),
		[]byte(`<main class="p-4 flex"><p class="text-sm">hi</p></main>`), 0o644))
	require.NoError(t, os.WriteFile("app.css",
		[]byte("@import \"tailwindcss/utilities\";\n.card { color: red; }\n"), 0o644))

	var errOut bytes.Buffer
	cmd := rootCmd
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"build",
		"--input", "app.css",
		"--content", "web/**/*.html",
		"--output", "dist/app.css",
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join("dist", "app.css"))
	require.NoError(t, err)
	css := string(data)
	assert.Contains(t, css, ".p-4 {\n  padding: calc(var(--spacing) * 4);\n}")
	assert.Contains(t, css, ".flex {")
	assert.Contains(t, css, ".card { color: red; }")
	assert.NotContains(t, css, "@import")

	assert.Contains(t, errOut.String(), "3 new classes, recompiled")
}

func TestBuildCommand_UnsupportedImport(t *testing.T) {
	resetKoanf()
	chdirTemp(t)

	require.NoError(t, os.WriteFile("bad.css", []byte(`@import "tailwindcss/forms";`), 0o644))

	cmd := rootCmd
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"build", "--input", "bad.css", "--content", "*.html", "--output", "out.css"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported import "tailwindcss/forms"`)

	_, statErr := os.Stat("out.css")
	assert.True(t, os.IsNotExist(statErr))
}

func TestImportsCommand_Tree(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")
	resetKoanf()

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"imports"})
	require.NoError(t, cmd.Execute())

	tree := out.String()
	assert.Contains(t, tree, "virtual:tailwindcss")
	for _, file := range assets.NewResolver(nil).Files() {
		assert.Contains(t, tree, file)
	}
	assert.Contains(t, tree, `@import "tailwindcss"`)
	assert.Contains(t, tree, `@import "./theme.css"`)
}

func TestImportsCommand_Resolve(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")
	resetKoanf()

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"imports", "tailwindcss/theme", "tailwindcss/forms"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 unsupported import(s)")

	assert.Contains(t, out.String(), "tailwindcss/theme -> virtual:tailwindcss/theme.css\n")
	assert.Contains(t, out.String(), "tailwindcss/forms unsupported\n")
}

func TestCompletionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"completion", "bash"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "cssbuild")
}

func TestRelevant(t *testing.T) {
	config := buildConfig{
		Input:   "styles/app.css",
		Content: []string{"web/**/*.html", "web/**/*.templ"},
	}

	tests := []struct {
		path string
		want bool
	}{
		{"styles/app.css", true},
		{"./styles/app.css", true},
		{"web/index.html", true},
		{"web/components/card.templ", true},
		{"web/components/card_templ.go", false},
		{"styles/other.css", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(config, filepath.FromSlash(tt.path)))
		})
	}
}

func TestWatchRoots(t *testing.T) {
	config := buildConfig{
		Input:   "styles/app.css",
		Content: []string{"web/**/*.html", "web/**/*.templ", "**/*.md"},
	}
	assert.Equal(t, []string{"web", ".", "styles"}, watchRoots(config))
}
