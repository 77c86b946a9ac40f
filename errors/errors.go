// Package errors defines the diagnostic types shared by the parser and
// the command line tool: a friendly-message interface, a display-ready
// error struct, and a formatter that prints it with source context.
package errors

// FriendlyError is an interface for errors that have a human friendly
// message in addition to the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be converted to a
// FormattedError for display with source context.
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}
