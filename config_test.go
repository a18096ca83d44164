package llparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/llparse/lexer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "llparse.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)

	return path
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	assert.NoError(t, err)
	assert.Equal(t, `\s`, config.Lexer.Separator)
	assert.False(t, config.Lexer.UseQuote)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
lexer:
  separator: "[,\\s]"
  use_quote: true
  use_escape: true
  escape_char: "%"
`)

	config, err := LoadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, `[,\s]`, config.Lexer.Separator)
	assert.True(t, config.Lexer.UseQuote)
	assert.True(t, config.Lexer.UseEscape)
	assert.Equal(t, "%", config.Lexer.EscapeChar)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected error
	}{
		{
			name: "invalid separator pattern",
			content: `
lexer:
  separator: "["
`,
			expected: ErrConfigValidation,
		},
		{
			name: "invalid newline pattern",
			content: `
lexer:
  separator: ","
  newline: "("
`,
			expected: ErrConfigValidation,
		},
		{
			name: "multi-character escape char",
			content: `
lexer:
  separator: ","
  escape_char: "ab"
`,
			expected: ErrInvalidEscapeChar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := LoadConfig(path)

			assert.IsError(t, err, tt.expected)
		})
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
lexer:
  separator: ","
  tokenizer: "none"
`)

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestLoadConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("LLPARSE_SEPARATOR", `[,\s]`)

	path := writeConfig(t, `
lexer:
  separator: "${LLPARSE_SEPARATOR}"
`)

	config, err := LoadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, `[,\s]`, config.Lexer.Separator)
}

func TestLexerConfigBuild(t *testing.T) {
	config := LexerConfig{
		Separator:  `[,\s]`,
		UseEscape:  true,
		EscapeChar: "%",
	}

	lex, err := config.Build()
	assert.NoError(t, err)

	items := lexer.Collect(lex.LexString(`a%,b,c`))

	assert.Equal(t, 3, len(items))
	assert.Equal(t, "a,b", items[0].Text())
}

func TestLexerConfigBuildRequiresSeparator(t *testing.T) {
	config := LexerConfig{}

	_, err := config.Build()

	assert.IsError(t, err, lexer.ErrSeparatorRequired)
}
