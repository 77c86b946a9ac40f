package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/pyrite/token"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestSimpleAssignment(t *testing.T) {
	toks := tokenize(t, "x = 1\n")
	require.Len(t, toks, 5)
	require.Equal(t, token.Type(token.IDENT), toks[0].Type)
	require.Equal(t, "x", toks[0].Literal)
	require.Equal(t, token.Type(token.ASSIGN), toks[1].Type)
	require.Equal(t, " ", toks[1].Skipped)
	require.Equal(t, token.Type(token.INT), toks[2].Type)
	require.Equal(t, " ", toks[2].Skipped)
	require.Equal(t, token.Type(token.NEWLINE), toks[3].Type)
	require.Equal(t, token.Type(token.EOF), toks[4].Type)
}

func TestLosslessTiling(t *testing.T) {
	// Concatenating Skipped+Literal over the stream must reproduce the
	// input exactly, whatever the input contains.
	inputs := []string{
		"x = 1\n",
		"# leading comment\n\nx = 1  # trailing\n",
		"if x:\n    y = 2\n",
		"a = (1 +\n     2)\n",
		"b = 1 + \\\n    2\n",
		"def f(a, b=2):\n\treturn a\n",
		"s = 'it\\'s'\nt = \"\"\"multi\nline\"\"\"\n",
		"while True:\n    pass\n# done",
		"x=[1,2,\n   3]",
	}
	for _, input := range inputs {
		l := New(input)
		var sb strings.Builder
		for {
			tok := l.Next()
			sb.WriteString(tok.Skipped)
			sb.WriteString(tok.Literal)
			if tok.Type == token.EOF {
				break
			}
		}
		require.Equal(t, input, sb.String())
	}
}

func TestNewlinePolicy(t *testing.T) {
	// Blank and comment-only lines produce no NEWLINE tokens; the text
	// rides on the next token's Skipped.
	toks := tokenize(t, "\n# comment\n\nx = 1\n")
	require.Equal(t, token.Type(token.IDENT), toks[0].Type)
	require.Equal(t, "\n# comment\n\n", toks[0].Skipped)

	// Newlines inside brackets are skipped text, not statement ends.
	toks = tokenize(t, "a = [1,\n2]\n")
	var newlines int
	for _, tok := range toks {
		if tok.Type == token.NEWLINE {
			newlines++
		}
	}
	require.Equal(t, 1, newlines)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{"42", token.INT},
		{"0x2A", token.INT},
		{"0o755", token.INT},
		{"0b1010", token.INT},
		{"1_000_000", token.INT},
		{"3.14", token.FLOAT},
		{"10.", token.FLOAT},
		{".5", token.FLOAT},
		{"1e10", token.FLOAT},
		{"2.5e-3", token.FLOAT},
		{"3j", token.FLOAT},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.input)
		require.Equal(t, tt.typ, toks[0].Type, "input: %s", tt.input)
		require.Equal(t, tt.input, toks[0].Literal, "input: %s", tt.input)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{`'hello'`, token.STRING},
		{`"hello"`, token.STRING},
		{`'it\'s'`, token.STRING},
		{`"""multi
line"""`, token.STRING},
		{`r'raw\n'`, token.STRING},
		{`u'typed'`, token.STRING},
		{`b'bytes'`, token.BYTES},
		{`rb'raw bytes'`, token.BYTES},
		{`f'val: {x}'`, token.FSTRING},
		{`F"val: {x}"`, token.FSTRING},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.input)
		require.Equal(t, tt.typ, toks[0].Type, "input: %s", tt.input)
		require.Equal(t, tt.input, toks[0].Literal, "input: %s", tt.input)
	}
}

func TestUnterminatedString(t *testing.T) {
	toks := tokenize(t, "'oops\n")
	require.Equal(t, token.Type(token.ILLEGAL), toks[0].Type)
}

func TestPrefixNotAString(t *testing.T) {
	// An identifier that merely starts with prefix letters stays an
	// identifier.
	toks := tokenize(t, "rb = 1")
	require.Equal(t, token.Type(token.IDENT), toks[0].Type)
	require.Equal(t, "rb", toks[0].Literal)
}

func TestOperators(t *testing.T) {
	toks := tokenize(t, "a //= b ** c != d")
	types := []token.Type{
		token.IDENT, token.SLASH_SLASH_EQ, token.IDENT, token.POW,
		token.IDENT, token.NOT_EQ, token.IDENT, token.EOF,
	}
	require.Len(t, toks, len(types))
	for i, typ := range types {
		require.Equal(t, typ, toks[i].Type)
	}
}

func TestKeywords(t *testing.T) {
	toks := tokenize(t, "if elif else while for in def class return pass break continue not True False None")
	types := []token.Type{
		token.IF, token.ELIF, token.ELSE, token.WHILE, token.FOR, token.IN,
		token.DEF, token.CLASS, token.RETURN, token.PASS, token.BREAK,
		token.CONTINUE, token.NOT, token.TRUE, token.FALSE, token.NONE,
	}
	for i, typ := range types {
		require.Equal(t, typ, toks[i].Type)
	}
}

func TestBom(t *testing.T) {
	require.Equal(t, "\xef\xbb\xbf", BOM)
	l := New(BOM + "x = 1\n")
	require.Equal(t, BOM, l.Bom())
	tok := l.Next()
	require.Equal(t, token.Type(token.IDENT), tok.Type)
	require.Equal(t, "", tok.Skipped)
}

func TestPositions(t *testing.T) {
	l := New("x = 1\ny = 2\n")
	l.SetFilename("test.py")
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	// y sits on line 1 (0-indexed), column 0
	y := toks[4]
	require.Equal(t, "y", y.Literal)
	require.Equal(t, 1, y.StartPosition.Line)
	require.Equal(t, 0, y.StartPosition.Column)
	require.Equal(t, 2, y.StartPosition.LineNumber())
	require.Equal(t, "test.py", y.StartPosition.File)
}
