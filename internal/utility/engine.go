// Package utility is a small utility-first CSS engine implementing
// engine.Engine.
//
// Compile inlines @import directives through the loader, rejects nothing on
// its own and asks the loader for @plugin and @config modules. @theme blocks
// become custom properties on :root and feed the utility vocabulary.
// Generated utilities are placed where `@tailwind utilities;` appears; a
// stylesheet without that directive produces no utilities.
package utility

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/cssbuild/engine"
)

// maxImportDepth guards against import cycles between stylesheets
const maxImportDepth = 32

// utilitiesMarker is replaced by generated rules at build time
const utilitiesMarker = "/*! cssbuild:utilities */"

// ErrNoLoader is returned when a stylesheet imports something but no loader was given
var ErrNoLoader = errors.New("no stylesheet loader configured")

// Engine compiles stylesheets into utility compilers
type Engine struct{}

var _ engine.Engine = (*Engine)(nil)

// New creates an Engine
func New() *Engine {
	return &Engine{}
}

// Compile resolves the stylesheet and returns a compiler for it
func (e *Engine) Compile(ctx context.Context, source string, opts engine.Options) (engine.Compiler, error) {
	p := &processor{
		ctx:    ctx,
		loader: opts.Loader,
		theme:  newTheme(),
	}

	base := opts.Base
	if base == "" {
		base = "/"
	}

	body, err := p.process(source, base, 0)
	if err != nil {
		return nil, err
	}

	return newCompiler(body, p.theme, p.utilities), nil
}

// processor walks a stylesheet token by token, rewriting directives
type processor struct {
	ctx       context.Context
	loader    engine.Loader
	theme     *theme
	utilities bool // saw @tailwind utilities
}

// process returns src with every directive resolved
func (p *processor) process(src, base string, depth int) (string, error) {
	if depth > maxImportDepth {
		return "", fmt.Errorf("import depth exceeds %d", maxImportDepth)
	}
	if err := p.ctx.Err(); err != nil {
		return "", err
	}

	lexer := css.NewLexer(parse.NewInputString(src))
	var out strings.Builder

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return "", fmt.Errorf("tokenize: %w", err)
			}
			break
		}

		if tt != css.AtKeywordToken {
			out.Write(text)
			continue
		}

		switch strings.ToLower(string(text)) {
		case "@import":
			inlined, err := p.handleImport(lexer, base, depth)
			if err != nil {
				return "", err
			}
			out.WriteString(inlined)

		case "@plugin":
			if err := p.handleModule(lexer, base, engine.ModulePlugin); err != nil {
				return "", err
			}

		case "@config":
			if err := p.handleModule(lexer, base, engine.ModuleConfig); err != nil {
				return "", err
			}

		case "@theme":
			out.WriteString(p.handleTheme(lexer))

		case "@tailwind":
			stmt := readStatement(lexer)
			if stmt.hasIdent("utilities") {
				p.utilities = true
				out.WriteString(utilitiesMarker)
			}

		default:
			out.Write(text)
		}
	}

	return out.String(), nil
}

// handleImport loads and inlines one @import, wrapping it in @layer when requested
func (p *processor) handleImport(lexer *css.Lexer, base string, depth int) (string, error) {
	stmt := readStatement(lexer)
	id := stmt.target()
	if id == "" {
		return "", fmt.Errorf("@import without a target")
	}
	if p.loader == nil {
		return "", fmt.Errorf("@import %q: %w", id, ErrNoLoader)
	}

	sheet, err := p.loader.LoadStylesheet(p.ctx, id, base)
	if err != nil {
		return "", fmt.Errorf("@import %q: %w", id, err)
	}

	nextBase := sheet.Base
	if nextBase == "" {
		nextBase = base
	}

	inner, err := p.process(sheet.Content, nextBase, depth+1)
	if err != nil {
		return "", err
	}

	if layer := stmt.layer(); layer != "" {
		return fmt.Sprintf("@layer %s {\n%s\n}", layer, strings.TrimSpace(inner)), nil
	}
	return strings.TrimSpace(inner), nil
}

// handleModule asks the loader for a @plugin or @config module
func (p *processor) handleModule(lexer *css.Lexer, base string, kind engine.ModuleKind) error {
	stmt := readStatement(lexer)
	id := stmt.target()
	if id == "" {
		return fmt.Errorf("@%s without a target", kind)
	}
	if p.loader == nil {
		return fmt.Errorf("@%s %q: %w", kind, id, ErrNoLoader)
	}
	if _, err := p.loader.LoadModule(p.ctx, id, base, kind); err != nil {
		return fmt.Errorf("@%s %q: %w", kind, id, err)
	}
	return nil
}

// handleTheme records the custom properties of a @theme block and emits them on :root
func (p *processor) handleTheme(lexer *css.Lexer) string {
	// Skip the prelude ("default", "inline", ...) up to the block
	for {
		tt, _ := lexer.Next()
		if tt == css.ErrorToken {
			return ""
		}
		if tt == css.LeftBraceToken {
			break
		}
	}

	var decls []themeVar
	var name string
	var value []string
	depth := 1

	flush := func() {
		if name != "" {
			v := strings.TrimSpace(strings.Join(value, ""))
			if v != "" {
				decls = append(decls, themeVar{name: name, value: v})
			}
		}
		name = ""
		value = nil
	}

	for depth > 0 {
		tt, text := lexer.Next()
		switch {
		case tt == css.ErrorToken:
			depth = 0
		case tt == css.LeftBraceToken:
			depth++
		case tt == css.RightBraceToken:
			depth--
			if depth == 0 {
				flush()
			}
		case tt == css.SemicolonToken && depth == 1:
			flush()
		case name == "" && isCustomProperty(tt, text):
			name = string(text)
		case name != "" && len(value) == 0 && (tt == css.ColonToken || tt == css.WhitespaceToken):
			// separator
		case name != "" && tt != css.CommentToken:
			value = append(value, string(text))
		}
	}

	if len(decls) == 0 {
		return ""
	}

	var out strings.Builder
	out.WriteString(":root, :host {\n")
	for _, d := range decls {
		p.theme.set(d.name, d.value)
		fmt.Fprintf(&out, "  %s: %s;\n", d.name, d.value)
	}
	out.WriteString("}")
	return out.String()
}

func isCustomProperty(tt css.TokenType, text []byte) bool {
	return (tt == css.CustomPropertyNameToken || tt == css.IdentToken) &&
		strings.HasPrefix(string(text), "--")
}

// statement is the token run of an at-rule up to its semicolon
type statement struct {
	types []css.TokenType
	texts []string
}

// readStatement consumes tokens up to and including the next ';' (or EOF)
func readStatement(lexer *css.Lexer) statement {
	var s statement
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken || tt == css.SemicolonToken {
			return s
		}
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		s.types = append(s.types, tt)
		s.texts = append(s.texts, string(text))
	}
}

// target returns the first string or url() argument, unquoted
func (s statement) target() string {
	for i, tt := range s.types {
		switch tt {
		case css.StringToken:
			return unquote(s.texts[i])
		case css.URLToken:
			u := strings.TrimSuffix(strings.TrimPrefix(s.texts[i], "url("), ")")
			return unquote(strings.TrimSpace(u))
		}
	}
	return ""
}

// layer returns the name inside layer(...), if present
func (s statement) layer() string {
	for i, tt := range s.types {
		if tt == css.FunctionToken && strings.EqualFold(s.texts[i], "layer(") {
			var name strings.Builder
			for j := i + 1; j < len(s.types) && s.types[j] != css.RightParenthesisToken; j++ {
				name.WriteString(s.texts[j])
			}
			return name.String()
		}
	}
	return ""
}

func (s statement) hasIdent(ident string) bool {
	for i, tt := range s.types {
		if tt == css.IdentToken && s.texts[i] == ident {
			return true
		}
	}
	return false
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
