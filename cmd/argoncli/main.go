// Command argoncli is Argon's command-line front-end: it wires a file
// path and a stderr logger callback into an engine.Engine and reports
// the exit code spec §6 promises, in the shape of
// shibukawa/snapsql's cmd/snapsql/main.go (kong CLI, blank driver
// imports, colorized diagnostics) flattened to the single-binary
// contract `argoncli [-] <file>` rather than a multi-subcommand tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	_ "github.com/go-sql-driver/mysql" // mysql driver registration
	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver registration
	_ "github.com/mattn/go-sqlite3"    // sqlite3 driver registration

	"github.com/informave/argon/control"
	"github.com/informave/argon/engine"
	"github.com/informave/argon/processor"
)

// CLI is the single-binary argument set, following the
// kong.Parse(&CLI)-at-top-level idiom but with no sub-commands: Argon
// only ever does one thing, run a script.
var CLI struct {
	File     string `arg:"" help:"DTS script path, or - to read from standard input" type:"path"`
	Config   string `help:"Configuration file path" default:"argon.yaml"`
	DumpAST  bool   `name:"dump-ast" help:"Print the parsed AST before executing"`
	Quiet    bool   `short:"q" help:"Suppress all error diagnostics (the exit code is unchanged)"`
}

func main() {
	kong.Parse(&CLI)

	code, err := run()
	if err != nil && !CLI.Quiet {
		printDiagnostic(err)
	}

	os.Exit(code)
}

func run() (int, error) {
	src, filename, err := readSource(CLI.File)
	if err != nil {
		return engine.ExitParserError, err
	}

	cfg, err := engine.LoadConfig(CLI.Config)
	if err != nil {
		return engine.ExitParserError, err
	}

	e := engine.New(cfg)
	e.DumpAST = CLI.DumpAST
	e.SetDumpWriter(func(line string) { fmt.Println(line) })
	e.RegisterLogger(func(line string, _ any) { fmt.Fprintln(os.Stderr, line) }, nil)

	if _, err := e.Load(src, filename); err != nil {
		return engine.ExitParserError, err
	}

	return e.Exec(context.Background())
}

// readSource reads the script body from path, or from standard input
// when path is "-" (spec §6 CLI contract).
func readSource(path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, "<stdin>", err
	}

	data, err := os.ReadFile(path)

	return data, path, err
}

// printDiagnostic colorizes a failure the way command_query.go
// colorizes query errors: a syntax failure in red as a single line,
// a semantic failure as one line per diagnostic (a red ERROR or
// yellow WARN label), runtime errors in red with their full stack
// trace banner, matching the color.New(color.Bold, ...).Sprint usage in
// cli/command_query.go.
func printDiagnostic(err error) {
	var syn *control.SyntaxError
	if errors.As(err, &syn) {
		color.Red("Syntax error: %v", syn)
		return
	}

	var sem *processor.SemanticError
	if errors.As(err, &sem) {
		for _, d := range sem.Diagnostics {
			label := color.New(color.Bold, color.FgRed).Sprint("ERROR")
			if d.Severity == "warning" {
				label = color.New(color.Bold, color.FgYellow).Sprint("WARN")
			}

			fmt.Fprintf(os.Stderr, "%s %s: %s\n", d.Info, label, d.Message)
		}

		return
	}

	color.Red("Runtime error: %v", err)
}
