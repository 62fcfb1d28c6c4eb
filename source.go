package cssbuild

import "strings"

// DefaultImport is prepended to stylesheets that import nothing themselves
const DefaultImport = `@import "tailwindcss";`

// EffectiveSource returns the text handed to the engine for css.
//
// When css contains no @import directive the framework stylesheet is imported
// first. Any @import means the caller controls imports and css is returned
// unchanged.
func EffectiveSource(css string) string {
	if strings.Contains(css, "@import") {
		return css
	}
	return DefaultImport + "\n" + css
}
