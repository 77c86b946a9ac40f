package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/internal/lexer"
	"github.com/deepnoodle-ai/pyrite/internal/tmpl"
	"github.com/deepnoodle-ai/pyrite/token"
)

// splitStringLiteral divides a string literal into its prefix letters,
// its quote run (single or triple), and the unquoted body.
func splitStringLiteral(lit string) (prefix, quote, body string) {
	i := 0
	for i < len(lit) && lit[i] != '\'' && lit[i] != '"' {
		i++
	}
	prefix = lit[:i]
	rest := lit[i:]
	q := rest[0]
	if len(rest) >= 6 && rest[1] == q && rest[2] == q {
		quote = rest[:3]
	} else {
		quote = rest[:1]
	}
	body = rest[len(quote) : len(rest)-len(quote)]
	return prefix, quote, body
}

// decodeEscapes resolves backslash escapes the way a non-raw string
// literal does. Unrecognized escapes keep the backslash.
func decodeEscapes(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\\', '\'', '"':
			b.WriteByte(s[i])
		case '\n':
			// Escaped newline inside a string continues the line.
		case 'x':
			if i+2 < len(s) {
				if n, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(n))
					i += 2
					break
				}
			}
			b.WriteString("\\x")
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// parseStringLiteral builds a Str or Bytes node from a lexed literal
// token. The full source literal, prefix and quotes included, is stored
// as the content fragment, which depends on the unescaped value; the
// prefix letters and opening quote run are stored as the fmt fragment
// so an edited value can be respelled in the original style.
func (p *Parser) parseStringLiteral(t token.Token) (ast.Expr, error) {
	prefix, quote, body := splitStringLiteral(t.Literal)
	value := body
	if !strings.ContainsAny(prefix, "rR") {
		value = decodeEscapes(body)
	}

	if t.Type == token.BYTES {
		node := &ast.Bytes{ValuePos: t.StartPosition, Value: value}
		p.store.Set(node, "content", t.Literal)
		p.store.SetDep(node, "content", node.Value)
		p.store.Set(node, "fmt", prefix+quote)
		return node, nil
	}

	node := &ast.Str{ValuePos: t.StartPosition, Value: value}
	if strings.ContainsAny(prefix, "uU") {
		node.Kind = "u"
	}
	p.store.Set(node, "content", t.Literal)
	p.store.SetDep(node, "content", node.Value)
	p.store.Set(node, "fmt", prefix+quote)
	return node, nil
}

// parseFString builds an FString from a lexed f-string token. The
// literal's source text is stored as the content fragment with each
// interpolation replaced by a positional placeholder; the interpolated
// expressions are parsed into the same formatting store so they can be
// rendered and substituted back at print time.
func (p *Parser) parseFString(t token.Token) (ast.Expr, error) {
	prefix, quote, body := splitStringLiteral(t.Literal)
	raw := strings.ContainsAny(prefix, "rR")

	fs := &ast.FString{ValuePos: t.StartPosition}
	var template strings.Builder
	template.WriteString(prefix)
	template.WriteString(quote)

	literalPart := func(text string) *ast.Str {
		value := strings.ReplaceAll(text, "{{", "{")
		value = strings.ReplaceAll(value, "}}", "}")
		if !raw {
			value = decodeEscapes(value)
		}
		return &ast.Str{ValuePos: t.StartPosition, Value: value}
	}

	last := 0
	nvals := 0
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == '{' && i+1 < len(body) && body[i+1] == '{':
			i += 2
		case c == '}' && i+1 < len(body) && body[i+1] == '}':
			i += 2
		case c == '}':
			return nil, p.syntaxErrorAt(t, "f-string: single '}' is not allowed")
		case c == '{':
			depth := 1
			j := i + 1
			for j < len(body) && depth > 0 {
				if body[j] == '{' {
					depth++
				} else if body[j] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			if depth != 0 {
				return nil, p.syntaxErrorAt(t, "f-string: expecting '}'")
			}
			if i > last {
				fs.Parts = append(fs.Parts, literalPart(body[last:i]))
			}
			template.WriteString(body[last:i])
			expr, err := p.parseFStringExpr(body[i+1 : j])
			if err != nil {
				return nil, err
			}
			fs.Parts = append(fs.Parts, &ast.FormattedValue{Value: expr})
			template.WriteString(tmpl.Placeholder(nvals))
			nvals++
			i = j + 1
			last = i
		default:
			i++
		}
	}
	if len(body) > last {
		fs.Parts = append(fs.Parts, literalPart(body[last:]))
	}
	template.WriteString(body[last:])
	template.WriteString(quote)

	p.store.Set(fs, "content", template.String())
	return fs, nil
}

// parseFStringExpr parses the expression between an f-string's braces
// with a nested parser that shares this parser's formatting store.
func (p *Parser) parseFStringExpr(inner string) (ast.Expr, error) {
	sp := &Parser{
		l:        lexer.New(inner),
		filename: p.filename,
		store:    p.store,
		input:    inner,
	}
	for {
		tk := sp.l.Next()
		sp.toks = append(sp.toks, tk)
		if tk.Type == token.EOF {
			break
		}
		if tk.Type == token.ILLEGAL {
			return nil, sp.syntaxErrorAt(tk, fmt.Sprintf("invalid token %q in f-string", tk.Literal))
		}
	}
	lead := sp.skipText()
	expr, err := sp.parseExpr()
	if err != nil {
		return nil, err
	}
	if sp.cur().Type != token.EOF {
		return nil, sp.syntaxError(
			fmt.Sprintf("unexpected %s in f-string expression", tokenDescription(sp.cur())))
	}
	trail := sp.skipText()
	if lead != "" {
		sp.prependPrefix(expr, lead)
	}
	if trail != "" {
		sp.appendSuffix(expr, trail)
	}
	return expr, nil
}
