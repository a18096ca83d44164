package main

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/shibukawa/llparse"
	"github.com/shibukawa/llparse/lexer"
	"github.com/shibukawa/llparse/parser"
	"github.com/shibukawa/llparse/sexpr"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
}

// LexCmd tokenizes input with the configured lexer and prints the
// position-tagged token stream.
type LexCmd struct {
	File string `arg:"" optional:"" help:"Input file (defaults to stdin)"`
}

// Run executes the lex command
func (cmd *LexCmd) Run(ctx *Context) error {
	config, err := llparse.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lex, err := config.Lexer.Build()
	if err != nil {
		return fmt.Errorf("failed to build lexer: %w", err)
	}

	input, cleanup, err := openInput(cmd.File)
	if err != nil {
		return err
	}
	defer cleanup()

	if ctx.Verbose {
		fmt.Printf("Separator: %s\n", config.Lexer.Separator)
		fmt.Printf("Quoting: %t, Escaping: %t\n", config.Lexer.UseQuote, config.Lexer.UseEscape)
		fmt.Println()
	}

	separator, err := regexp.Compile(config.Lexer.Separator)
	if err != nil {
		return fmt.Errorf("failed to compile separator pattern: %w", err)
	}

	sep := color.New(color.FgCyan).SprintfFunc()

	for item := range lex.Lex(lexer.ReaderChunks(input)) {
		text := item.Text()
		if utf8.RuneCountInString(text) == 1 && separator.MatchString(text) {
			// keep separator tokens visually distinct
			text = sep("%q", text)
		} else {
			text = fmt.Sprintf("%q", text)
		}

		fmt.Printf("%4d:%-4d %6d  %s\n", item.Pos.Line, item.Pos.Column, item.Pos.Index, text)
	}

	return nil
}

// ParseCmd parses s-expression input and prints the resulting forms.
type ParseCmd struct {
	File    string `arg:"" optional:"" help:"Input file (defaults to stdin)"`
	OnError string `help:"Error policy" default:"stop" enum:"stop,abort,continue"`
	Debug   bool   `help:"Trace nonterminal expansions to stderr"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	input, cleanup, err := openInput(cmd.File)
	if err != nil {
		return err
	}
	defer cleanup()

	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	options := parser.Options{OnError: errorMode(cmd.OnError)}
	if cmd.Debug {
		options.Debug = os.Stderr
	}

	forms, errs, err := sexpr.Parse(string(data), options)
	if err != nil {
		return fmt.Errorf("parse aborted: %w", err)
	}

	for _, form := range forms {
		fmt.Printf("%v\n", form)
	}

	if len(errs) > 0 {
		bad := color.New(color.FgRed).SprintFunc()
		for _, perr := range errs {
			fmt.Fprintf(os.Stderr, "%s at %d:%d: %s\n", bad("error"), perr.Pos.Line, perr.Pos.Column, perr.Message)
		}

		os.Exit(1)
	}

	return nil
}

func errorMode(name string) parser.ErrorMode {
	switch name {
	case "abort":
		return parser.Abort
	case "continue":
		return parser.Continue
	default:
		return parser.Stop
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}

	return f, func() { f.Close() }, nil
}

// CLI represents the command-line interface
var CLI struct {
	Config  string     `help:"Configuration file path" default:"llparse.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Lex     LexCmd     `cmd:"" help:"Tokenize input and print the token stream"`
	Parse   ParseCmd   `cmd:"" help:"Parse s-expression input and print the forms"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("llparse v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI)

	// Create context with config path
	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
