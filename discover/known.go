// Package discover finds the class names used by a document and tracks which
// of them are new.
//
// A Source yields the class tokens currently in use. Known remembers every
// token already handed to the compiler so each build only passes the delta.
package discover

import "context"

// Source yields the class tokens currently used by a document.
// Duplicates are allowed; order is not significant.
type Source interface {
	Classes(ctx context.Context) ([]string, error)
}

// Known is the cumulative set of class tokens seen for one compiler.
// It is not safe for concurrent use.
type Known struct {
	set map[string]struct{}
}

// NewKnown creates an empty set
func NewKnown() *Known {
	return &Known{set: make(map[string]struct{})}
}

// Add records tokens and returns the ones not seen before, in first-seen
// order and without duplicates. Empty tokens are ignored.
func (k *Known) Add(tokens []string) []string {
	var delta []string
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, ok := k.set[tok]; ok {
			continue
		}
		k.set[tok] = struct{}{}
		delta = append(delta, tok)
	}
	return delta
}

// Has reports whether tok was seen
func (k *Known) Has(tok string) bool {
	_, ok := k.set[tok]
	return ok
}

// Len returns the number of known tokens
func (k *Known) Len() int {
	return len(k.set)
}

// Reset forgets every token
func (k *Known) Reset() {
	k.set = make(map[string]struct{})
}
