// Package lexer converts source text into a stream of tokens.
//
// The lexer is lossless: every byte of the input is carried on exactly one
// token, either as part of the token's literal or in the Skipped text that
// precedes it. Whitespace, comments, backslash continuations, and newlines
// inside brackets are folded into Skipped; a newline at bracket depth zero
// on a line that produced at least one token is emitted as a NEWLINE token.
package lexer

import (
	"strings"

	"github.com/deepnoodle-ai/pyrite/token"
)

// BOM is the UTF-8 byte order mark, which may prefix source text.
const BOM = "\uFEFF"

// Lexer tokenizes source code.
type Lexer struct {
	input    string
	pos      int
	line     int
	column   int
	filename string
	bom      string

	// depth of nested (, [, { brackets; newlines inside brackets do not
	// terminate statements
	depth int

	// whether the current logical line has produced a token yet; a newline
	// on a line without tokens (blank or comment-only) is skipped text
	lineHasToken bool
}

// New returns a Lexer for the given input. A leading UTF-8 byte order mark
// is stripped from the token stream and reported via Bom.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	if strings.HasPrefix(input, BOM) {
		l.bom = BOM
		l.input = input[len(BOM):]
	}
	return l
}

// SetFilename sets the file name reported in token positions.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Bom returns the byte order mark found at the start of the input, if any.
func (l *Lexer) Bom() string {
	return l.bom
}

func (l *Lexer) position() token.Position {
	return token.Position{
		Char:   l.pos,
		Line:   l.line,
		Column: l.column,
		File:   l.filename,
	}
}

// advance consumes n bytes, updating line and column tracking, and returns
// the consumed text.
func (l *Lexer) advance(n int) string {
	s := l.input[l.pos : l.pos+n]
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			l.line++
			l.column = 0
		} else {
			l.column++
		}
	}
	l.pos += n
	return s
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// skip gathers inter-token text starting at the current position: spaces,
// tabs, carriage returns, comments, backslash continuations, and newlines
// that do not terminate a statement. It stops at the first byte that
// belongs to a token.
func (l *Lexer) skip() string {
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			sb.WriteString(l.advance(1))
		case c == '#':
			n := 1
			for l.pos+n < len(l.input) && l.input[l.pos+n] != '\n' {
				n++
			}
			sb.WriteString(l.advance(n))
		case c == '\\' && l.peek(1) == '\n':
			sb.WriteString(l.advance(2))
		case c == '\n':
			if l.depth == 0 && l.lineHasToken {
				return sb.String() // becomes a NEWLINE token
			}
			sb.WriteString(l.advance(1))
		default:
			return sb.String()
		}
	}
	return sb.String()
}

// Next returns the next token in the input.
func (l *Lexer) Next() token.Token {
	skipped := l.skip()
	start := l.position()

	if l.pos >= len(l.input) {
		return token.Token{
			Type:          token.EOF,
			Skipped:       skipped,
			StartPosition: start,
			EndPosition:   start,
		}
	}

	c := l.input[l.pos]
	var typ token.Type
	var lit string

	switch {
	case c == '\n':
		l.advance(1)
		l.lineHasToken = false
		return token.Token{
			Type:          token.NEWLINE,
			Literal:       "\n",
			Skipped:       skipped,
			StartPosition: start,
			EndPosition:   l.position(),
		}
	case isLetter(c):
		typ, lit = l.readIdentOrString()
	case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
		typ, lit = l.readNumber()
	case c == '\'' || c == '"':
		typ, lit = l.readString(0)
	default:
		typ, lit = l.readOperator()
	}

	l.lineHasToken = true
	return token.Token{
		Type:          typ,
		Literal:       lit,
		Skipped:       skipped,
		StartPosition: start,
		EndPosition:   l.position(),
	}
}

// readIdentOrString reads an identifier, keyword, or prefixed string
// literal (r'...', b"...", f'...', etc).
func (l *Lexer) readIdentOrString() (token.Type, string) {
	n := 0
	for l.pos+n < len(l.input) && isIdentPart(l.input[l.pos+n]) {
		n++
	}
	word := l.input[l.pos : l.pos+n]

	// A short run of prefix letters directly followed by a quote begins a
	// string literal rather than an identifier.
	if n <= 2 && isStringPrefix(word) {
		q := l.peek(n)
		if q == '\'' || q == '"' {
			return l.readString(n)
		}
	}

	l.advance(n)
	return token.LookupIdentifier(word), word
}

func (l *Lexer) readNumber() (token.Type, string) {
	n := 0
	typ := token.Type(token.INT)

	// hex, octal, binary
	if l.peek(0) == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X' ||
		l.peek(1) == 'o' || l.peek(1) == 'O' || l.peek(1) == 'b' || l.peek(1) == 'B') {
		n = 2
		for l.pos+n < len(l.input) && isAlnumOrUnderscore(l.input[l.pos+n]) {
			n++
		}
		return typ, l.advance(n)
	}

	for l.pos+n < len(l.input) && (isDigit(l.input[l.pos+n]) || l.input[l.pos+n] == '_') {
		n++
	}
	if l.peek(n) == '.' && !isIdentStart(l.peek(n+1)) {
		typ = token.FLOAT
		n++
		for l.pos+n < len(l.input) && (isDigit(l.input[l.pos+n]) || l.input[l.pos+n] == '_') {
			n++
		}
	}
	if e := l.peek(n); e == 'e' || e == 'E' {
		m := n + 1
		if s := l.peek(m); s == '+' || s == '-' {
			m++
		}
		if isDigit(l.peek(m)) {
			typ = token.FLOAT
			n = m
			for l.pos+n < len(l.input) && isDigit(l.input[l.pos+n]) {
				n++
			}
		}
	}
	if l.peek(n) == 'j' || l.peek(n) == 'J' {
		typ = token.FLOAT
		n++
	}
	return typ, l.advance(n)
}

// readString consumes a full string literal, including any prefix letters
// (already measured as prefixLen), the quotes, and the body. Triple-quoted
// strings may span lines. Returns ILLEGAL if the literal is unterminated.
func (l *Lexer) readString(prefixLen int) (token.Type, string) {
	n := prefixLen
	quote := l.peek(n)
	qlen := 1
	if l.peek(n+1) == quote && l.peek(n+2) == quote {
		qlen = 3
	}
	n += qlen

	closed := false
	for l.pos+n < len(l.input) {
		c := l.input[l.pos+n]
		if c == '\\' && l.pos+n+1 < len(l.input) {
			n += 2
			continue
		}
		if c == quote {
			if qlen == 1 {
				n++
				closed = true
				break
			}
			if l.peek(n+1) == quote && l.peek(n+2) == quote {
				n += 3
				closed = true
				break
			}
		}
		if c == '\n' && qlen == 1 {
			break
		}
		n++
	}

	lit := l.advance(n)
	if !closed {
		return token.ILLEGAL, lit
	}
	prefix := strings.ToLower(lit[:prefixLen])
	switch {
	case strings.Contains(prefix, "f"):
		return token.FSTRING, lit
	case strings.Contains(prefix, "b"):
		return token.BYTES, lit
	default:
		return token.STRING, lit
	}
}

func (l *Lexer) readOperator() (token.Type, string) {
	two := ""
	if l.pos+2 <= len(l.input) {
		two = l.input[l.pos : l.pos+2]
	}
	three := ""
	if l.pos+3 <= len(l.input) {
		three = l.input[l.pos : l.pos+3]
	}

	switch three {
	case "...":
		return token.ELLIPSIS, l.advance(3)
	case "//=":
		return token.SLASH_SLASH_EQ, l.advance(3)
	}

	switch two {
	case "==":
		return token.EQ, l.advance(2)
	case "!=":
		return token.NOT_EQ, l.advance(2)
	case "<=":
		return token.LT_EQ, l.advance(2)
	case ">=":
		return token.GT_EQ, l.advance(2)
	case "+=":
		return token.PLUS_EQ, l.advance(2)
	case "-=":
		return token.MINUS_EQ, l.advance(2)
	case "*=":
		return token.ASTERISK_EQ, l.advance(2)
	case "/=":
		return token.SLASH_EQ, l.advance(2)
	case "%=":
		return token.MOD_EQ, l.advance(2)
	case "**":
		return token.POW, l.advance(2)
	case "//":
		return token.SLASH_SLASH, l.advance(2)
	}

	var typ token.Type
	switch l.input[l.pos] {
	case '=':
		typ = token.ASSIGN
	case '+':
		typ = token.PLUS
	case '-':
		typ = token.MINUS
	case '*':
		typ = token.ASTERISK
	case '/':
		typ = token.SLASH
	case '%':
		typ = token.MOD
	case '<':
		typ = token.LT
	case '>':
		typ = token.GT
	case '(':
		l.depth++
		typ = token.LPAREN
	case ')':
		l.depth--
		typ = token.RPAREN
	case '[':
		l.depth++
		typ = token.LBRACKET
	case ']':
		l.depth--
		typ = token.RBRACKET
	case '{':
		l.depth++
		typ = token.LBRACE
	case '}':
		l.depth--
		typ = token.RBRACE
	case ',':
		typ = token.COMMA
	case ':':
		typ = token.COLON
	case '.':
		typ = token.DOT
	default:
		typ = token.ILLEGAL
	}
	return typ, l.advance(1)
}

func isLetter(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c >= 0x80
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c byte) bool {
	return isLetter(c)
}

func isIdentPart(c byte) bool {
	return isLetter(c) || isDigit(c)
}

func isAlnumOrUnderscore(c byte) bool {
	return isDigit(c) || isLetter(c)
}

func isStringPrefix(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		switch word[i] {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		default:
			return false
		}
	}
	return true
}
