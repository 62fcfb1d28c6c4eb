package utility

// themeVar is one custom property declared in a @theme block
type themeVar struct {
	name  string
	value string
}

// theme holds the custom properties collected from @theme blocks.
// Later declarations override earlier ones.
type theme struct {
	vars map[string]string
}

func newTheme() *theme {
	return &theme{vars: make(map[string]string)}
}

func (t *theme) set(name, value string) {
	t.vars[name] = value
}

func (t *theme) has(name string) bool {
	_, ok := t.vars[name]
	return ok
}

// resolve returns var(--namespace-key) when that property exists
func (t *theme) resolve(namespace, key string) (string, bool) {
	name := "--" + namespace + "-" + key
	if !t.has(name) {
		return "", false
	}
	return "var(" + name + ")", true
}
