// Package token defines the tokens produced when lexing source code.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char   int
	Line   int
	Column int
	File   string
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Token represents one token lexed from the input source code.
//
// Skipped holds the raw text between the end of the previous token and the
// start of this one: spaces, tabs, comments, backslash continuations, and
// newlines that do not terminate a statement. Concatenating Skipped and
// Literal over a full token stream reproduces the input exactly; the
// annotator relies on this to tile the source across formatting fragments.
type Token struct {
	Type          Type
	Literal       string
	Skipped       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	ASSIGN         = "="
	ASTERISK       = "*"
	ASTERISK_EQ    = "*="
	BREAK          = "BREAK"
	BYTES          = "BYTES"
	CLASS          = "CLASS"
	COLON          = ":"
	COMMA          = ","
	CONTINUE       = "CONTINUE"
	DEF            = "DEF"
	DOT            = "."
	ELIF           = "ELIF"
	ELLIPSIS       = "..."
	ELSE           = "ELSE"
	EOF            = "EOF"
	EQ             = "=="
	FALSE          = "FALSE"
	FLOAT          = "FLOAT"
	FOR            = "FOR"
	FSTRING        = "FSTRING"
	GT             = ">"
	GT_EQ          = ">="
	IDENT          = "IDENT"
	IF             = "IF"
	ILLEGAL        = "ILLEGAL"
	IN             = "IN"
	INT            = "INT"
	LBRACE         = "{"
	LBRACKET       = "["
	LPAREN         = "("
	LT             = "<"
	LT_EQ          = "<="
	MINUS          = "-"
	MINUS_EQ       = "-="
	MOD            = "%"
	MOD_EQ         = "%="
	NEWLINE        = "NEWLINE"
	NONE           = "NONE"
	NOT            = "NOT"
	NOT_EQ         = "!="
	PASS           = "PASS"
	PLUS           = "+"
	PLUS_EQ        = "+="
	POW            = "**"
	RBRACE         = "}"
	RBRACKET       = "]"
	RETURN         = "RETURN"
	RPAREN         = ")"
	SLASH          = "/"
	SLASH_EQ       = "/="
	SLASH_SLASH    = "//"
	SLASH_SLASH_EQ = "//="
	STRING         = "STRING"
	TRUE           = "TRUE"
	WHILE          = "WHILE"
)

var keywords = map[string]Type{
	"break":    BREAK,
	"class":    CLASS,
	"continue": CONTINUE,
	"def":      DEF,
	"elif":     ELIF,
	"else":     ELSE,
	"for":      FOR,
	"if":       IF,
	"in":       IN,
	"not":      NOT,
	"pass":     PASS,
	"return":   RETURN,
	"while":    WHILE,
	"True":     TRUE,
	"False":    FALSE,
	"None":     NONE,
}

// LookupIdentifier checks whether the given identifier is a keyword and
// returns the corresponding token type, or IDENT if it is a plain name.
func LookupIdentifier(identifier string) Type {
	if t, ok := keywords[identifier]; ok {
		return t
	}
	return IDENT
}
