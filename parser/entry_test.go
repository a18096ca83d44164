package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/llparse/lexer"
)

func TestEntryAccessors(t *testing.T) {
	nt := NT("Expr")
	assert.Equal(t, KindNonterminal, nt.Kind())
	assert.Equal(t, Symbol("Expr"), nt.Symbol())
	assert.Equal(t, "Expr", nt.String())

	term := Term("(")
	assert.Equal(t, KindTerminal, term.Kind())
	assert.Equal(t, "(", term.Text())
	assert.Equal(t, `"("`, term.String())

	fail := Fail(NewParseError("boom", "(", lexer.Position{}))
	assert.Equal(t, KindError, fail.Kind())
	assert.Equal(t, "boom", fail.Err().Message)
	assert.Equal(t, "error(boom)", fail.String())
}
