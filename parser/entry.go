package parser

import "strconv"

// Symbol identifies a nonterminal. Any unique string works; the engine
// only uses it as a rule-table key.
type Symbol string

// EntryKind tags the three cases a stack entry can be.
type EntryKind int

const (
	KindNonterminal EntryKind = iota
	KindTerminal
	KindError
)

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	switch k {
	case KindNonterminal:
		return "NONTERMINAL"
	case KindTerminal:
		return "TERMINAL"
	case KindError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Entry is one parse-stack element: a nonterminal symbol awaiting
// expansion, a terminal literal to match against the next token, or an
// embedded parse error produced by a rule.
type Entry struct {
	kind EntryKind
	sym  Symbol
	text string
	err  *ParseError
}

// NT creates a nonterminal entry.
func NT(sym Symbol) Entry {
	return Entry{kind: KindNonterminal, sym: sym}
}

// Term creates a terminal entry matching the literal text.
func Term(text string) Entry {
	return Entry{kind: KindTerminal, text: text}
}

// Fail creates an error entry. Rules return it to signal a recoverable
// semantic failure without aborting the expansion step itself.
func Fail(err *ParseError) Entry {
	return Entry{kind: KindError, err: err}
}

// Kind returns the tag of the entry.
func (e Entry) Kind() EntryKind {
	return e.kind
}

// Symbol returns the nonterminal symbol; empty for other kinds.
func (e Entry) Symbol() Symbol {
	return e.sym
}

// Text returns the terminal literal; empty for other kinds.
func (e Entry) Text() string {
	return e.text
}

// Err returns the embedded parse error; nil for other kinds.
func (e Entry) Err() *ParseError {
	return e.err
}

// String returns the string representation of Entry
func (e Entry) String() string {
	switch e.kind {
	case KindNonterminal:
		return string(e.sym)
	case KindTerminal:
		return strconv.Quote(e.text)
	case KindError:
		return "error(" + e.err.Message + ")"
	default:
		return "UNKNOWN"
	}
}
