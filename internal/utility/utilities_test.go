package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTheme() *theme {
	th := newTheme()
	th.set("--spacing", "0.25rem")
	th.set("--color-red-500", "red")
	th.set("--text-sm", "0.875rem")
	th.set("--font-weight-bold", "700")
	th.set("--font-mono", "monospace")
	th.set("--radius-lg", "0.5rem")
	return th
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		candidate string
		want      []decl
	}{
		{"p-4", []decl{{"padding", "calc(var(--spacing) * 4)"}}},
		{"px-0.5", []decl{{"padding-inline", "calc(var(--spacing) * 0.5)"}}},
		{"m-2", []decl{{"margin", "calc(var(--spacing) * 2)"}}},
		{"-mt-2", []decl{{"margin-top", "calc(var(--spacing) * -2)"}}},
		{"mx-auto", []decl{{"margin-inline", "auto"}}},
		{"w-full", []decl{{"width", "100%"}}},
		{"size-8", []decl{{"width", "calc(var(--spacing) * 8)"}, {"height", "calc(var(--spacing) * 8)"}}},
		{"h-px", []decl{{"height", "1px"}}},
		{"p-[3px]", []decl{{"padding", "3px"}}},
		{"bg-[#fff]", []decl{{"background-color", "#fff"}}},
		{"gap-[1rem_2rem]", []decl{{"gap", "1rem 2rem"}}},
		{"text-red-500", []decl{{"color", "var(--color-red-500)"}}},
		{"border-red-500", []decl{{"border-color", "var(--color-red-500)"}}},
		{"text-sm", []decl{{"font-size", "var(--text-sm)"}}},
		{"font-bold", []decl{{"font-weight", "var(--font-weight-bold)"}}},
		{"font-mono", []decl{{"font-family", "var(--font-mono)"}}},
		{"rounded-lg", []decl{{"border-radius", "var(--radius-lg)"}}},
		{"rounded-full", []decl{{"border-radius", "calc(infinity * 1px)"}}},
		{"flex", []decl{{"display", "flex"}}},
		{"hidden", []decl{{"display", "none"}}},
	}

	th := testTheme()
	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			got, ok := generate(tt.candidate, th)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_Unknown(t *testing.T) {
	th := testTheme()
	for _, candidate := range []string{
		"btn", "btn--primary", "p-", "-p-4", "p-auto", "gap-auto", "m-full",
		"p-abc", "text-blue-500", "-flex", "font-unknown", "rounded-xl", "-",
	} {
		t.Run(candidate, func(t *testing.T) {
			_, ok := generate(candidate, th)
			assert.False(t, ok)
		})
	}
}

func TestEscapeClass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"p-4", "p-4"},
		{"p-0.5", `p-0\.5`},
		{"w-1/2", `w-1\/2`},
		{"bg-[#fff]", `bg-\[\#fff\]`},
		{"2xl", `\32 xl`},
		{"hover:flex", `hover\:flex`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeClass(tt.in))
		})
	}
}

func TestSplitCandidate(t *testing.T) {
	root, value, ok := splitCandidate("bg-[url(a-b.png)]")
	require.True(t, ok)
	assert.Equal(t, "bg", root)
	assert.Equal(t, "[url(a-b.png)]", value)

	root, value, ok = splitCandidate("text-red-500")
	require.True(t, ok)
	assert.Equal(t, "text", root)
	assert.Equal(t, "red-500", value)

	_, _, ok = splitCandidate("flex")
	assert.False(t, ok)
}
