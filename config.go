// Package llparse carries the configuration surface shared by the
// llparse command and by programs embedding the lexer with settings
// loaded from a file.
package llparse

import (
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/shibukawa/llparse/lexer"
)

// Config represents the llparse configuration
type Config struct {
	Lexer LexerConfig `yaml:"lexer"`
}

// LexerConfig is the serializable form of lexer.Config. Patterns are
// regular expressions matching a single character.
type LexerConfig struct {
	Separator  string `yaml:"separator"`
	Newline    string `yaml:"newline"`
	UseQuote   bool   `yaml:"use_quote"`
	UseEscape  bool   `yaml:"use_escape"`
	EscapeChar string `yaml:"escape_char"`
}

// LoadConfig loads configuration from the given path. A missing file
// yields the default configuration. Environment variables in pattern
// strings are expanded, with .env files loaded first.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	// Validate the configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// Build compiles the serializable form into a ready lexer.
func (c *LexerConfig) Build() (*lexer.Lexer, error) {
	config := lexer.Config{
		UseQuote:  c.UseQuote,
		UseEscape: c.UseEscape,
	}

	if c.Separator != "" {
		separator, err := regexp.Compile(c.Separator)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid separator pattern: %w", ErrConfigValidation, err)
		}

		config.Separator = separator
	}

	if c.Newline != "" {
		newline, err := regexp.Compile(c.Newline)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid newline pattern: %w", ErrConfigValidation, err)
		}

		config.Newline = newline
	}

	if c.EscapeChar != "" {
		r, size := utf8.DecodeRuneInString(c.EscapeChar)
		if size != len(c.EscapeChar) || r == utf8.RuneError {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEscapeChar, c.EscapeChar)
		}

		config.EscapeChar = r
	}

	return lexer.New(config)
}

// validateConfig validates the configuration for common errors
func validateConfig(config *Config) error {
	if config.Lexer.Separator == "" {
		return fmt.Errorf("%w: lexer.separator must be set", ErrConfigValidation)
	}

	if _, err := regexp.Compile(config.Lexer.Separator); err != nil {
		return fmt.Errorf("%w: invalid lexer.separator: %w", ErrConfigValidation, err)
	}

	if config.Lexer.Newline != "" {
		if _, err := regexp.Compile(config.Lexer.Newline); err != nil {
			return fmt.Errorf("%w: invalid lexer.newline: %w", ErrConfigValidation, err)
		}
	}

	if config.Lexer.EscapeChar != "" && utf8.RuneCountInString(config.Lexer.EscapeChar) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidEscapeChar, config.Lexer.EscapeChar)
	}

	return nil
}

// getDefaultConfig returns the default configuration: split on
// whitespace, no quoting or escaping.
func getDefaultConfig() *Config {
	return &Config{
		Lexer: LexerConfig{
			Separator: `\s`,
		},
	}
}

// applyDefaults applies default values for missing settings
func applyDefaults(config *Config) {
	if config.Lexer.Separator == "" {
		config.Lexer.Separator = `\s`
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	// Pattern for ${VAR} format
	re1 := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re1.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		return os.Getenv(varName)
	})

	// Pattern for $VAR format (word boundaries)
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		return os.Getenv(varName)
	})

	return s
}

// expandConfigEnvVars expands environment variables in config
func expandConfigEnvVars(config *Config) {
	config.Lexer.Separator = expandEnvVars(config.Lexer.Separator)
	config.Lexer.Newline = expandEnvVars(config.Lexer.Newline)
	config.Lexer.EscapeChar = expandEnvVars(config.Lexer.EscapeChar)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
