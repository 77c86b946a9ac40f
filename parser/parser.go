// Package parser generates the annotated syntax tree for source code.
//
// Parsing and annotation are fused: while the grammar is recognized, the
// exact text of every token and of the whitespace, comments, and
// continuations between tokens is recorded as formatting fragments in a
// format.Store, keyed by the node being built. Every byte of the input is
// assigned to exactly one fragment, in source order, so rendering the
// stored fragments back out reproduces the input byte-for-byte.
//
// Fragment conventions shared with the codegen package:
//   - Node "prefix" holds leading text (indentation, preceding blank and
//     comment lines for statements; opening parentheses for expressions).
//     Statement "suffix" holds trailing spaces, the trailing comment, and
//     the newline.
//   - Punctuation and keyword fragments swallow the whitespace around
//     them (an Assign's "eq_0" holds e.g. "  =  ").
//   - Leaf "content" fragments carry dependency snapshots under
//     "<dep>__src" keys so the printer can detect staleness after edits.
package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/format"
	"github.com/deepnoodle-ai/pyrite/internal/lexer"
	"github.com/deepnoodle-ai/pyrite/token"
)

// Parse the provided input and return the syntax tree together with the
// formatting store populated during annotation.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Module, *format.Store, error) {
	p := New(lexer.New(input), options...)
	p.input = input
	return p.Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in error positions.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// Parser object. A parser should be used only once, by calling Parse.
type Parser struct {
	l        *lexer.Lexer
	filename string

	// all tokens, pre-lexed
	toks []token.Token

	// index of the current token
	pos int

	// whether the current token's Skipped text has already been assigned
	// to a fragment
	skipConsumed bool

	// formatting fragments recorded during parsing
	store *format.Store

	// original input, used for error source lines
	input string
}

// New returns a Parser reading tokens from the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{l: l, store: format.NewStore()}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parse the input and return the module tree and formatting store.
func (p *Parser) Parse(ctx context.Context) (*ast.Module, *format.Store, error) {
	if p.filename != "" {
		p.l.SetFilename(p.filename)
	}
	for {
		t := p.l.Next()
		p.toks = append(p.toks, t)
		if t.Type == token.EOF {
			break
		}
		if t.Type == token.ILLEGAL {
			return nil, nil, p.syntaxErrorAt(t, fmt.Sprintf("invalid token %q", t.Literal))
		}
	}

	mod := &ast.Module{}
	if bom := p.l.Bom(); bom != "" {
		p.store.Set(mod, "bom", bom)
	}
	for p.cur().Type != token.EOF {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if ind := p.indentOf(p.cur()); ind != "" {
			return nil, nil, p.syntaxError("unexpected indent")
		}
		stmt, err := p.parseStatement("")
		if err != nil {
			return nil, nil, err
		}
		p.store.Set(stmt, "indent", "")
		mod.Stmts = append(mod.Stmts, stmt)
	}
	if trailing := p.skipText(); trailing != "" {
		p.store.Set(mod, "suffix", trailing)
	}
	return mod, p.store, nil
}

// Store returns the formatting store populated by Parse.
func (p *Parser) Store() *format.Store {
	return p.store
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

// take consumes and returns the current token. The token's skipped text
// must already have been assigned to a fragment; dropping it would break
// the byte-exact tiling of the input.
func (p *Parser) take() token.Token {
	t := p.toks[p.pos]
	if !p.skipConsumed && t.Skipped != "" {
		panic("parser: skipped text was not assigned to a fragment")
	}
	if t.Type != token.EOF {
		p.pos++
		p.skipConsumed = false
	}
	return t
}

// skipText claims the current token's skipped text. Repeated calls for
// the same token return "".
func (p *Parser) skipText() string {
	if p.skipConsumed {
		return ""
	}
	p.skipConsumed = true
	return p.cur().Skipped
}

// expect consumes the current token, which must have the given type.
func (p *Parser) expect(typ token.Type) (token.Token, error) {
	if p.cur().Type != typ {
		return token.Token{}, p.syntaxError(
			fmt.Sprintf("expected %q, got %s", string(typ), tokenDescription(p.cur())))
	}
	return p.take(), nil
}

// fragAround consumes a token of the given type together with the
// whitespace on both sides of it and returns the combined text.
func (p *Parser) fragAround(typ token.Type) (string, error) {
	s := p.skipText()
	t, err := p.expect(typ)
	if err != nil {
		return "", err
	}
	return s + t.Literal + p.skipText(), nil
}

// fragBefore consumes a token of the given type together with the
// whitespace before it and returns the combined text.
func (p *Parser) fragBefore(typ token.Type) (string, error) {
	s := p.skipText()
	t, err := p.expect(typ)
	if err != nil {
		return "", err
	}
	return s + t.Literal, nil
}

// keywordFrag consumes the current token (a keyword whose leading text
// has already been claimed as the statement prefix) plus the whitespace
// after it.
func (p *Parser) keywordFrag() string {
	t := p.take()
	return t.Literal + p.skipText()
}

// finishLine consumes the statement terminator and returns the suffix
// fragment: trailing spaces, trailing comment, and the newline. At end of
// file the suffix is empty.
func (p *Parser) finishLine() (string, error) {
	switch p.cur().Type {
	case token.NEWLINE:
		s := p.skipText()
		return s + p.take().Literal, nil
	case token.EOF:
		return "", nil
	default:
		return "", p.syntaxError(
			fmt.Sprintf("unexpected %s after statement", tokenDescription(p.cur())))
	}
}

// indentOf returns the indentation of the line on which the token sits,
// read from the tail of its skipped text. Statement terminators consume
// the newline itself, so a statement's first token usually carries only
// the indentation; when blank or comment lines precede it, the
// indentation is the text after the last newline. A token that does not
// start its line has no indentation.
func (p *Parser) indentOf(t token.Token) string {
	tail := t.Skipped
	if i := strings.LastIndexByte(tail, '\n'); i >= 0 {
		return tail[i+1:]
	}
	if t.StartPosition.Column == len(tail) {
		return tail
	}
	return ""
}

// setPrefix records a node's leading text. Empty prefixes are not stored;
// the printer's default is empty (or the current indent for statements).
func (p *Parser) setPrefix(node ast.Node, prefix string) {
	if prefix != "" {
		p.store.Set(node, "prefix", prefix)
	}
}

func (p *Parser) prependPrefix(node ast.Node, text string) {
	existing, _ := p.store.Get(node, "prefix")
	p.store.Set(node, "prefix", text+existing)
}

func (p *Parser) appendSuffix(node ast.Node, text string) {
	existing, _ := p.store.Get(node, "suffix")
	p.store.Set(node, "suffix", existing+text)
}

func (p *Parser) syntaxError(message string) error {
	return p.syntaxErrorAt(p.cur(), message)
}

func (p *Parser) syntaxErrorAt(t token.Token, message string) error {
	return NewSyntaxError(ErrorOpts{
		Message:       message,
		File:          p.filename,
		StartPosition: t.StartPosition,
		EndPosition:   t.EndPosition,
		SourceCode:    p.sourceLine(t.StartPosition.Line),
	})
}

func (p *Parser) sourceLine(line int) string {
	lines := strings.Split(p.input, "\n")
	if line >= 0 && line < len(lines) {
		return lines[line]
	}
	return ""
}
