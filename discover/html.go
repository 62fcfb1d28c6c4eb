package discover

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// classSelector matches every element carrying a class attribute
var classSelector = cascadia.MustCompile("[class]")

// HTMLSource is a live HTML document. The document may be replaced at any
// time; Classes always scans the current one.
type HTMLSource struct {
	mu  sync.RWMutex
	doc *html.Node
}

// NewHTMLSource creates a source for doc. A nil doc yields no classes.
func NewHTMLSource(doc *html.Node) *HTMLSource {
	return &HTMLSource{doc: doc}
}

// ParseHTMLSource parses r into a new source
func ParseHTMLSource(r io.Reader) (*HTMLSource, error) {
	s := &HTMLSource{}
	if err := s.Update(r); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the document with one parsed from r
func (s *HTMLSource) Update(r io.Reader) error {
	doc, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}
	s.SetDocument(doc)
	return nil
}

// SetDocument replaces the document
func (s *HTMLSource) SetDocument(doc *html.Node) {
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
}

// Document returns the current document
func (s *HTMLSource) Document() *html.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Classes returns every class token of every element in document order
func (s *HTMLSource) Classes(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ClassesOf(s.doc), nil
}

// ClassesOf returns every class token under n in document order
func ClassesOf(n *html.Node) []string {
	if n == nil {
		return nil
	}

	var tokens []string
	for _, el := range cascadia.QueryAll(n, classSelector) {
		for _, attr := range el.Attr {
			if attr.Namespace == "" && attr.Key == "class" {
				tokens = append(tokens, strings.Fields(attr.Val)...)
			}
		}
	}
	return tokens
}
