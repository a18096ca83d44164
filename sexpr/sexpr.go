// Package sexpr is a small s-expression reader built on the lexer and
// the stack-driven parse engine. Lists nest via parentheses, atoms are
// numbers, symbols, or quoted strings, and the parsed forms accumulate
// in a Builder threaded through the grammar rules.
package sexpr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shibukawa/llparse/lexer"
	"github.com/shibukawa/llparse/parser"
)

// Program is the single grammar symbol: a sequence of forms.
const Program parser.Symbol = "Program"

var separator = regexp.MustCompile(`[()\s]`)

// NewLexer creates the s-expression lexer: parentheses and whitespace
// delimit tokens, double quotes protect whitespace, backslash escapes
// one character.
func NewLexer() (*lexer.Lexer, error) {
	return lexer.New(lexer.Config{
		Separator: separator,
		UseQuote:  true,
		UseEscape: true,
	})
}

// NewParser creates a parse engine over the s-expression rule table.
// Each call to Parse starts from a fresh [Program] stack.
func NewParser() *parser.Parser[*Builder] {
	return parser.New(rules(), func() []parser.Entry {
		return []parser.Entry{parser.NT(Program)}
	})
}

// Parse reads every form in the input. Recoverable errors are returned
// alongside the forms according to the error policy; the returned Go
// error is non-nil only for fatal failures (or the Abort policy).
func Parse(input string, options ...parser.Options) ([]any, []*parser.ParseError, error) {
	lex, err := NewLexer()
	if err != nil {
		return nil, nil, err
	}

	builder := &Builder{}

	outcome, err := NewParser().Parse(lex.LexString(input), builder, options...)
	if err != nil {
		return nil, nil, err
	}

	errs := outcome.Errors
	if depth := builder.Depth(); depth > 0 {
		errs = append(errs, parser.NewParseError(
			fmt.Sprintf("%d list(s) left open at end of input.", depth),
			"", lexer.Position{Index: outcome.Index}))
	}

	return builder.Forms(), errs, nil
}

// rules builds the rule table. Program expands once per token into the
// token itself as a terminal followed by Program again, so the grammar
// consumes any stream while the Builder tracks nesting. An unbalanced
// close paren becomes an embedded error entry instead.
func rules() parser.Rules[*Builder] {
	return parser.Rules[*Builder]{
		Program: func(tokens []string, pos lexer.Position, b *Builder) []parser.Entry {
			token := tokens[0]
			switch {
			case token == "(":
				b.openList()
			case token == ")":
				if !b.closeList() {
					return []parser.Entry{
						parser.Fail(parser.NewParseError("Unbalanced ')'.", token, pos)),
						parser.NT(Program),
					}
				}
			case strings.TrimSpace(token) == "":
				// separators between forms carry no meaning
			default:
				b.atom(token)
			}

			return []parser.Entry{parser.Term(token), parser.NT(Program)}
		},
	}
}

// Builder is the mutable result threaded through the rules. It owns the
// finished top-level forms and a stack of lists still being filled.
type Builder struct {
	forms []any
	open  [][]any
}

// Forms returns the finished top-level forms.
func (b *Builder) Forms() []any {
	return b.forms
}

// Depth returns how many lists are still open.
func (b *Builder) Depth() int {
	return len(b.open)
}

func (b *Builder) openList() {
	b.open = append(b.open, []any{})
}

func (b *Builder) closeList() bool {
	if len(b.open) == 0 {
		return false
	}

	top := b.open[len(b.open)-1]
	b.open = b.open[:len(b.open)-1]
	b.add(top)

	return true
}

func (b *Builder) add(v any) {
	if len(b.open) > 0 {
		b.open[len(b.open)-1] = append(b.open[len(b.open)-1], v)
		return
	}

	b.forms = append(b.forms, v)
}

func (b *Builder) atom(text string) {
	b.add(decodeAtom(text))
}

// decodeAtom interprets a token as int64, float64, string literal, or
// bare symbol. The lexer keeps the closing quote in quoted tokens, so a
// trailing '"' marks a string literal and is trimmed here.
func decodeAtom(text string) any {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}

	if strings.HasSuffix(text, `"`) {
		return strings.TrimSuffix(text, `"`)
	}

	return text
}
