package parser

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/shibukawa/llparse/lexer"
)

// ErrorMode selects how recoverable parse errors affect control flow.
type ErrorMode int

const (
	// Stop records the first error and returns immediately with the
	// stack state as-is. Default.
	Stop ErrorMode = iota
	// Abort turns the first error into the returned Go error; no partial
	// outcome is produced.
	Abort
	// Continue records every error and keeps consuming input, discarding
	// the offending stack entry.
	Continue
)

// String returns the string representation of ErrorMode
func (m ErrorMode) String() string {
	switch m {
	case Stop:
		return "stop"
	case Abort:
		return "abort"
	case Continue:
		return "continue"
	default:
		return "unknown"
	}
}

// Options are per-call options for Parse.
type Options struct {
	OnError ErrorMode
	// Debug receives one line per nonterminal expansion (symbol name and
	// the raw token text with newlines rendered as escapes).
	Debug io.Writer
}

// Rule expands a nonterminal into a stack fragment. It receives the
// parts of the token being processed, its position, and the shared
// mutable result, and returns the entries to splice onto the front of
// the stack.
type Rule[T any] func(tokens []string, pos lexer.Position, result T) []Entry

// Rules maps each nonterminal symbol to its expansion rule.
type Rules[T any] map[Symbol]Rule[T]

// Outcome is the state of a parse after the input was exhausted or a
// Stop policy halted it.
type Outcome[T any] struct {
	// Stack holds the remaining unconsumed entries. A non-empty stack at
	// end of input is not an error by itself; callers that require a
	// complete parse must check it.
	Stack  []Entry
	Errors []*ParseError
	// Result is the same reference passed into Parse.
	Result T
	// Index is the position of the last processed item.
	Index int
}

// Parser drives a token stream against an explicit parse stack,
// expanding nonterminals via the rule table until a terminal can be
// compared with the current token. One Parser may run any number of
// independent parses; all per-parse state is rebuilt by initStack.
type Parser[T any] struct {
	rules     Rules[T]
	initStack func() []Entry
}

// New creates a Parser from a rule table and an initial-stack factory.
func New[T any](rules Rules[T], initStack func() []Entry) *Parser[T] {
	return &Parser[T]{rules: rules, initStack: initStack}
}

var tokenEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`)

// Parse consumes the item sequence one element at a time. For each item
// it expands front-of-stack nonterminals (leftmost expansion), then
// matches the settled front against the item's first token, routing
// mismatches and rule-embedded errors through the error policy. An item
// arriving on an empty stack is ignored. A missing rule is always fatal.
func (p *Parser[T]) Parse(items iter.Seq[lexer.Item], result T, options ...Options) (Outcome[T], error) {
	opts := Options{}
	if len(options) > 0 {
		opts = options[0]
	}

	stack := p.initStack()
	lastIndex := 0

	var errs []*ParseError

	for item := range items {
		lastIndex = item.Pos.Index
		token := item.Text()

		for len(stack) > 0 && stack[0].kind == KindNonterminal {
			sym := stack[0].sym

			rule, ok := p.rules[sym]
			if !ok {
				reportErrors(opts.Debug, errs)
				return Outcome[T]{}, fmt.Errorf("%w: %s", ErrNoRule, sym)
			}

			if opts.Debug != nil {
				fmt.Fprintf(opts.Debug, "expand %s: %s\n", sym, tokenEscaper.Replace(token))
			}

			stack = splice(rule(item.Tokens, item.Pos, result), stack[1:])
		}

		if len(stack) == 0 {
			// Input past the end of the grammar is a tolerated no-op.
			continue
		}

		var perr *ParseError

		front := stack[0]
		switch front.kind {
		case KindTerminal:
			if front.text == token {
				stack = stack[1:]
				continue
			}

			perr = mismatchError(front.text, token, item.Pos)
		case KindError:
			perr = front.err
		}

		switch opts.OnError {
		case Abort:
			reportErrors(opts.Debug, errs)
			return Outcome[T]{}, perr
		case Continue:
			errs = append(errs, perr)
			stack = stack[1:]
		default:
			errs = append(errs, perr)
			return Outcome[T]{Stack: stack, Errors: errs, Result: result, Index: item.Pos.Index}, nil
		}
	}

	return Outcome[T]{Stack: stack, Errors: errs, Result: result, Index: lastIndex}, nil
}

// splice prepends a rule's fragment without aliasing its backing array.
func splice(fragment, rest []Entry) []Entry {
	if len(fragment) == 0 {
		return rest
	}

	merged := make([]Entry, 0, len(fragment)+len(rest))
	merged = append(merged, fragment...)

	return append(merged, rest...)
}

// reportErrors surfaces the errors accumulated so far before a fatal
// failure propagates to the caller.
func reportErrors(w io.Writer, errs []*ParseError) {
	if len(errs) == 0 {
		return
	}

	if w == nil {
		w = os.Stderr
	}

	for _, err := range errs {
		fmt.Fprintf(w, "parse error at %d:%d: %s\n", err.Pos.Line, err.Pos.Column, err.Message)
	}
}
