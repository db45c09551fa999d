package dsl

import (
	"errors"
	"fmt"
)

// Sentinel causes, matched with errors.Is against the wrapped cause inside
// a ParserError. The Java original throws a single untyped
// StructurizrDslParserException with a message; Go's error-wrapping idiom
// lets callers distinguish failure classes without parsing message text.
var (
	ErrUnexpectedTokens    = errors.New("unexpected tokens")
	ErrDuplicateIdentifier = errors.New("identifier already in use")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrUnexpectedEnd       = errors.New("unexpected end of context")
	ErrUnclosedContext     = errors.New("unclosed context at end of file")
	ErrIncludeCycle        = errors.New("include cycle detected")
	ErrIncludeDepth        = errors.New("maximum include depth exceeded")
	ErrUnknownIdentifier   = errors.New("reference to unknown identifier")
	ErrUnterminatedQuote   = errors.New("unterminated quoted string")
)

// ParserError is the single error type the parser raises, mirroring
// StructurizrDslParser's DslParserException: a message plus the line number
// and source text of the line that triggered it. All production-parser and
// dispatcher failures are wrapped into one of these before they leave the
// parser, so callers always get a consistent, locatable error.
type ParserError struct {
	Message    string
	LineNumber int
	SourceLine string
	cause      error
}

func (e *ParserError) Error() string {
	if e.LineNumber > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.LineNumber, e.Message, e.SourceLine)
	}
	return e.Message
}

func (e *ParserError) Unwrap() error { return e.cause }

// newParseError builds a ParserError anchored to a source line, wrapping a
// sentinel cause so callers can errors.Is against it.
func newParseError(line TokenLine, cause error, format string, args ...interface{}) *ParserError {
	return &ParserError{
		Message:    fmt.Sprintf(format, args...),
		LineNumber: line.Number,
		SourceLine: line.Raw,
		cause:      cause,
	}
}

// wrapError wraps an arbitrary error (e.g. from the include resolver or the
// workspace façade) as a ParserError anchored to the given line, preserving
// it as the Unwrap() target.
func wrapError(line TokenLine, err error) *ParserError {
	if pe, ok := err.(*ParserError); ok {
		return pe
	}
	return &ParserError{
		Message:    err.Error(),
		LineNumber: line.Number,
		SourceLine: line.Raw,
		cause:      err,
	}
}
