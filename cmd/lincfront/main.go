// Command lincfront is a demo driver for the binder (internal/binder):
// it reads a YAML-described unbound program (internal/loader stands in
// for the real lexer/parser collaborator), binds it, and prints the
// accumulated diagnostics followed by a YAML dump of the resulting
// bound program.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/lincfront/linc/internal/binder"
	"github.com/lincfront/linc/internal/config"
	"github.com/lincfront/linc/internal/diagnostics"
	"github.com/lincfront/linc/internal/loader"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <program.yaml> [-config <binder.yaml>]\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	programPath := os.Args[1]
	var configPath string
	for i := 2; i < len(os.Args); i++ {
		if os.Args[i] == "-config" && i+1 < len(os.Args) {
			configPath = os.Args[i+1]
			i++
		}
	}

	data, err := os.ReadFile(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lincfront: %v\n", err)
		os.Exit(1)
	}

	prog, err := loader.DecodeProgram(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lincfront: %v\n", err)
		os.Exit(1)
	}

	opts := config.DefaultOptions()
	if configPath != "" {
		opts, err = config.LoadOptions(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lincfront: loading config: %v\n", err)
			os.Exit(1)
		}
	}

	bound, diags := binder.Bind(prog, opts)

	printDiagnostics(diags)

	out, err := yaml.Marshal(bound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lincfront: dumping bound tree: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)

	if diags.HasErrors() {
		os.Exit(1)
	}
}

// printDiagnostics writes one line per report to stderr, the way a
// terminal-aware compiler CLI does, colorizing severity when stderr is
// a real terminal. Colorized logging stays an external concern of the
// CLI, never the binder's.
func printDiagnostics(diags *diagnostics.Collector) {
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	for _, r := range diags.Reports() {
		fmt.Fprintf(os.Stderr, "%s\n", formatReport(r, color))
	}
}

func formatReport(r diagnostics.Report, color bool) string {
	label := r.Severity.String()
	if color {
		label = colorize(r.Severity, label)
	}
	loc := ""
	if r.Span.File != "" || r.Span.Line != 0 {
		loc = fmt.Sprintf("%s:%d: ", r.Span.File, r.Span.Line)
	}
	return fmt.Sprintf("%s%s[%s/%s]: %s", loc, label, r.Stage, r.Code, r.Message)
}

func colorize(sev diagnostics.Severity, s string) string {
	const (
		red    = "\x1b[31m"
		yellow = "\x1b[33m"
		blue   = "\x1b[34m"
		reset  = "\x1b[0m"
	)
	switch sev {
	case diagnostics.Error:
		return red + s + reset
	case diagnostics.Warning:
		return yellow + s + reset
	default:
		return blue + s + reset
	}
}
