// Package assets bundles the framework stylesheets and resolves @import
// identifiers against them.
//
// There is no filesystem behind the resolver: every stylesheet is embedded in
// the binary and addressed by a synthetic "virtual:" path.
package assets

import (
	"embed"
	"fmt"
)

//go:embed css/*.css
var cssFS embed.FS

// Names of the bundled stylesheets
const (
	Index     = "index.css"
	Preflight = "preflight.css"
	Theme     = "theme.css"
	Utilities = "utilities.css"
)

// Content returns a bundled stylesheet by file name
func Content(name string) (string, error) {
	data, err := cssFS.ReadFile("css/" + name)
	if err != nil {
		return "", fmt.Errorf("read bundled stylesheet %s: %w", name, err)
	}
	return string(data), nil
}

// mustContent is used for the fixed table; the files are embedded at build time
func mustContent(name string) string {
	s, err := Content(name)
	if err != nil {
		panic(err)
	}
	return s
}
