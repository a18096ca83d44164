package lexer

import (
	"errors"
	"iter"
	"regexp"
	"strings"
)

// Sentinel errors
var (
	ErrSeparatorRequired = errors.New("separator pattern is required")
)

// Default patterns applied by New when the config leaves them unset.
var (
	defaultNewline = regexp.MustCompile(`\n`)
)

const (
	quoteChar         = '"'
	defaultEscapeChar = '\\'
)

// Position represents a position in the character stream.
// Index counts every character consumed so far, Line counts newline
// matches, and Column counts characters since the last newline.
type Position struct {
	Index  int
	Line   int
	Column int
}

// Item is one lexical unit emitted by the lexer: either an accumulated
// run of non-separator characters or a single separator character.
// Tokens has length 1 in the base lexer; Pos is the position just past
// the item's last character.
type Item struct {
	Tokens []string
	Pos    Position
}

// Text returns the first token of the item.
func (i Item) Text() string {
	if len(i.Tokens) == 0 {
		return ""
	}
	return i.Tokens[0]
}

// Config controls how the lexer splits the character stream.
type Config struct {
	// Separator matches a single character that always delimits a token
	// and is emitted as its own one-character item. Required.
	Separator *regexp.Regexp
	// Newline matches a single character that advances the line counter
	// and resets the column counter. Defaults to a bare '\n'.
	Newline *regexp.Regexp
	// UseQuote makes '"' toggle a quoting mode during which separator
	// characters are treated as literal text. The closing quote is kept
	// in the token text, not stripped.
	UseQuote bool
	// UseEscape makes the character following EscapeChar appear verbatim
	// in the token, bypassing separator and quote interpretation.
	UseEscape  bool
	EscapeChar rune
}

// Lexer turns a stream of text chunks into a stream of position-tagged
// items. One Lexer may lex any number of independent streams.
type Lexer struct {
	config Config
}

// New creates a Lexer, applying defaults for Newline and EscapeChar.
func New(config Config) (*Lexer, error) {
	if config.Separator == nil {
		return nil, ErrSeparatorRequired
	}

	if config.Newline == nil {
		config.Newline = defaultNewline
	}

	if config.EscapeChar == 0 {
		config.EscapeChar = defaultEscapeChar
	}

	return &Lexer{config: config}, nil
}

// Lex returns a lazy, single-pass sequence of items. Chunk boundaries
// are invisible in the output except that a pending token is flushed at
// the end of each chunk. Position counters are never reset across the
// stream.
func (l *Lexer) Lex(chunks iter.Seq[string]) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		s := &scanner{config: l.config}

		for chunk := range chunks {
			for _, r := range chunk {
				if !s.consume(r, yield) {
					return
				}
			}

			if !s.flush(yield) {
				return
			}
		}
	}
}

// LexString lexes a single in-memory string.
func (l *Lexer) LexString(input string) iter.Seq[Item] {
	return l.Lex(Chunks(input))
}

// Collect gets all items of a stream as a slice (for debugging).
func Collect(items iter.Seq[Item]) []Item {
	collected := make([]Item, 0, 64)
	for item := range items {
		collected = append(collected, item)
	}

	return collected
}

// Internal lexer state for one stream
type scanner struct {
	config   Config
	token    strings.Builder
	quoting  bool
	escaping bool
	index    int
	line     int
	column   int
}

// consume handles one character. Branch priority: armed escape, escape
// character, quoting, separator, plain text. Newline bookkeeping applies
// after every character regardless of which branch consumed it.
func (s *scanner) consume(r rune, yield func(Item) bool) bool {
	separator := false

	switch {
	case s.escaping:
		s.token.WriteRune(r)
		s.escaping = false
	case s.config.UseEscape && r == s.config.EscapeChar:
		s.escaping = true
	case s.quoting:
		s.token.WriteRune(r)
		if r == quoteChar {
			s.quoting = false
		}
	case s.config.UseQuote && r == quoteChar:
		s.quoting = true
	case s.config.Separator.MatchString(string(r)):
		if !s.flush(yield) {
			return false
		}
		separator = true
	default:
		s.token.WriteRune(r)
	}

	s.index++
	s.column++

	if s.config.Newline.MatchString(string(r)) {
		s.line++
		s.column = 0
	}

	if separator {
		return yield(Item{Tokens: []string{string(r)}, Pos: s.pos()})
	}

	return true
}

// flush emits the pending token if it is non-empty.
func (s *scanner) flush(yield func(Item) bool) bool {
	if s.token.Len() == 0 {
		return true
	}

	item := Item{Tokens: []string{s.token.String()}, Pos: s.pos()}
	s.token.Reset()

	return yield(item)
}

func (s *scanner) pos() Position {
	return Position{Index: s.index, Line: s.line, Column: s.column}
}
