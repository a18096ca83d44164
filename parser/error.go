package parser

import (
	"errors"
	"fmt"

	"github.com/shibukawa/llparse/lexer"
)

// Sentinel errors
var (
	// ErrNoRule is returned when a nonterminal has no entry in the rule
	// table. This is a grammar defect and is always fatal, regardless of
	// the error policy.
	ErrNoRule = errors.New("no rule for symbol")
)

// ParseError is a recoverable parse failure: a terminal mismatch
// detected by the engine or a semantic failure detected by a rule.
type ParseError struct {
	Message string
	Token   string
	Pos     lexer.Position
}

// NewParseError creates a ParseError for the given token and position.
func NewParseError(message, token string, pos lexer.Position) *ParseError {
	return &ParseError{Message: message, Token: token, Pos: pos}
}

func mismatchError(expected, got string, pos lexer.Position) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("Expected '%s' but got '%s'.", expected, got),
		Token:   got,
		Pos:     pos,
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Message
}
