package parser

import (
	"fmt"

	"github.com/deepnoodle-ai/pyrite/errors"
	"github.com/deepnoodle-ai/pyrite/token"
)

// ErrorOpts holds the data used to construct a parser error. All fields
// are optional, although one of Cause or Message is recommended. If Cause
// is set, Message is ignored.
type ErrorOpts struct {
	ErrType       string
	Message       string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// ParserError is an interface that all parser errors implement.
type ParserError interface {
	errors.FriendlyError
	Type() string
	Message() string
	Cause() error
	File() string
	StartPosition() token.Position
	EndPosition() token.Position
	SourceCode() string
}

// NewParserError returns a new BaseParserError populated with the given
// error data.
func NewParserError(opts ErrorOpts) *BaseParserError {
	return &BaseParserError{
		errType:       opts.ErrType,
		message:       opts.Message,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
	}
}

// BaseParserError is the simplest implementation of ParserError.
type BaseParserError struct {
	errType       string
	message       string
	cause         error
	file          string
	startPosition token.Position
	endPosition   token.Position
	sourceCode    string
}

func (e *BaseParserError) Error() string {
	var msg string
	if e.cause != nil {
		msg = e.cause.Error()
	} else if e.message != "" {
		msg = e.message
	}
	if e.errType != "" {
		msg = fmt.Sprintf("%s: %s", e.errType, msg)
	}
	if e.file != "" {
		msg = fmt.Sprintf("%s (%s:%d)", msg, e.file, e.startPosition.LineNumber())
	}
	return msg
}

// FriendlyErrorMessage returns a human-friendly error message with the
// relevant source line and a caret under the offending token.
func (e *BaseParserError) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the parser error to a FormattedError for display.
func (e *BaseParserError) ToFormatted() *errors.FormattedError {
	message := e.message
	if e.cause != nil {
		message = e.cause.Error()
	}
	return &errors.FormattedError{
		Kind:      e.errType,
		Message:   message,
		Filename:  e.file,
		Line:      e.startPosition.LineNumber(),
		Column:    e.startPosition.ColumnNumber(),
		EndColumn: e.endPosition.ColumnNumber(),
		SourceLines: []errors.SourceLineEntry{
			{Number: e.startPosition.LineNumber(), Text: e.sourceCode, IsMain: true},
		},
	}
}

func (e *BaseParserError) Cause() error { return e.cause }

func (e *BaseParserError) Message() string { return e.message }

func (e *BaseParserError) StartPosition() token.Position { return e.startPosition }

func (e *BaseParserError) EndPosition() token.Position { return e.endPosition }

func (e *BaseParserError) File() string { return e.file }

func (e *BaseParserError) SourceCode() string { return e.sourceCode }

func (e *BaseParserError) Unwrap() error { return e.cause }

func (e *BaseParserError) Type() string { return e.errType }

// NewSyntaxError returns a new SyntaxError populated with the given error data.
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.ErrType = "syntax error"
	return &SyntaxError{BaseParserError: NewParserError(opts)}
}

// SyntaxError indicates the input violates the language grammar.
type SyntaxError struct {
	*BaseParserError
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.NEWLINE:
		return "newline"
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return t.Literal
	}
}
