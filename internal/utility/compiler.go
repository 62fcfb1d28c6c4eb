package utility

import (
	"sort"
	"strings"
	"sync"
)

// Compiler builds CSS for candidates against one compiled stylesheet.
// Candidates accumulate across Build calls.
type Compiler struct {
	mu sync.Mutex

	template  string // compiled stylesheet containing utilitiesMarker
	theme     *theme
	utilities bool

	seen  map[string]struct{} // every candidate ever passed to Build
	rules map[string]string   // recognised candidates -> rule text
	css   string
	dirty bool
}

func newCompiler(template string, th *theme, utilities bool) *Compiler {
	return &Compiler{
		template:  template,
		theme:     th,
		utilities: utilities,
		seen:      make(map[string]struct{}),
		rules:     make(map[string]string),
		dirty:     true,
	}
}

// Build adds candidates and returns the CSS for every candidate seen so far.
// Unknown candidates are ignored.
func (c *Compiler) Build(candidates []string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, candidate := range candidates {
		if _, ok := c.seen[candidate]; ok {
			continue
		}
		c.seen[candidate] = struct{}{}

		if !c.utilities {
			continue
		}
		if decls, ok := generate(candidate, c.theme); ok {
			c.rules[candidate] = formatRule(candidate, decls)
			c.dirty = true
		}
	}

	if c.dirty {
		c.css = c.render()
		c.dirty = false
	}
	return c.css, nil
}

// Utilities returns the candidates that produced a rule, sorted
func (c *Compiler) Utilities() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.rules))
	for name := range c.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Compiler) render() string {
	names := make([]string, 0, len(c.rules))
	for name := range c.rules {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, c.rules[name])
	}

	out := strings.Replace(c.template, utilitiesMarker, strings.Join(parts, "\n"), 1)
	return strings.TrimSpace(out) + "\n"
}

// formatRule renders one class rule
func formatRule(candidate string, decls []decl) string {
	var b strings.Builder
	b.WriteString(".")
	b.WriteString(escapeClass(candidate))
	b.WriteString(" {\n")
	for _, d := range decls {
		b.WriteString("  ")
		b.WriteString(d.property)
		b.WriteString(": ")
		b.WriteString(d.value)
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// escapeClass escapes a class name for use in a selector
func escapeClass(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= '0' && r <= '9' && i == 0:
			b.WriteString(`\3`)
			b.WriteRune(r)
			b.WriteString(" ")
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r > 0x7f:
			b.WriteRune(r)
		default:
			b.WriteRune('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}
