package sexpr

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/llparse/parser"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []any
	}{
		{
			name:     "flat list",
			input:    "(add 1 2)",
			expected: []any{[]any{"add", int64(1), int64(2)}},
		},
		{
			name:     "nested lists",
			input:    "(a (b c) (d (e)))",
			expected: []any{[]any{"a", []any{"b", "c"}, []any{"d", []any{"e"}}}},
		},
		{
			name:     "multiple top-level forms",
			input:    "(a) b (c)",
			expected: []any{[]any{"a"}, "b", []any{"c"}},
		},
		{
			name:     "number atoms",
			input:    "(1 2.5 -3)",
			expected: []any{[]any{int64(1), 2.5, int64(-3)}},
		},
		{
			name:     "quoted string keeps whitespace",
			input:    `(say "hello world")`,
			expected: []any{[]any{"say", "hello world"}},
		},
		{
			name:     "escaped separator stays in atom",
			input:    `(a\ b)`,
			expected: []any{[]any{"a b"}},
		},
		{
			name:     "empty list",
			input:    "()",
			expected: []any{[]any{}},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "bare atoms",
			input:    "a b c",
			expected: []any{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forms, errs, err := Parse(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, 0, len(errs))
			assert.Equal(t, tt.expected, forms)
		})
	}
}

func TestParseUnbalancedClose(t *testing.T) {
	forms, errs, err := Parse("(a))", parser.Options{OnError: parser.Continue})

	assert.NoError(t, err)
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, "Unbalanced ')'.", errs[0].Message)
	assert.Equal(t, []any{[]any{"a"}}, forms)
}

func TestParseUnbalancedCloseAborts(t *testing.T) {
	_, _, err := Parse("(a))", parser.Options{OnError: parser.Abort})

	assert.Error(t, err)
}

func TestParseUnterminatedList(t *testing.T) {
	_, errs, err := Parse("(a (b")

	assert.NoError(t, err)
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, "2 list(s) left open at end of input.", errs[0].Message)
}

func TestParseErrorPosition(t *testing.T) {
	_, errs, err := Parse("(a)\n)", parser.Options{OnError: parser.Continue})

	assert.NoError(t, err)
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, 1, errs[0].Pos.Line)
}

func TestParseIsRepeatable(t *testing.T) {
	p := NewParser()

	lex, err := NewLexer()
	assert.NoError(t, err)

	for range 3 {
		builder := &Builder{}
		outcome, err := p.Parse(lex.LexString("(a (b) c)"), builder)

		assert.NoError(t, err)
		assert.Equal(t, 0, len(outcome.Errors))
		assert.Equal(t, []any{[]any{"a", []any{"b"}, "c"}}, builder.Forms())
	}
}
