// Command interp runs a register-VM assembly source file and prints its
// result.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/leonardosnt/assembler-interpreter/config"
	"github.com/leonardosnt/assembler-interpreter/diag"
	"github.com/leonardosnt/assembler-interpreter/interp"
	"github.com/leonardosnt/assembler-interpreter/ir"
	"github.com/leonardosnt/assembler-interpreter/parser"
	"github.com/leonardosnt/assembler-interpreter/validate"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("interp", flag.ContinueOnError)
	colorFlag := fs.Bool("color", false, "render diagnostics with a colorized tcell view")
	dumpFlag := fs.Bool("dump", false, "print the lowered program's disassembly before running it")
	configPath := fs.String("config", "", "path to a TOML config file overriding resource limits")
	showVersion := fs.Bool("version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Printf("interp %s (commit %s, built %s)\n", Version, Commit, Date)
		return 0
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: interp [flags] <path>")
		return 2
	}

	path := fs.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "interp: %s\n", err)
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "interp: %s\n", err)
			return 2
		}
		cfg = loaded
	}
	if *colorFlag {
		cfg.Display.Color = true
	}
	if *dumpFlag {
		cfg.Display.Dump = true
	}

	source := string(src)
	var reporter diag.Reporter
	if cfg.Display.Color {
		reporter = &diag.ColorReporter{Source: source}
	} else {
		reporter = diag.NewDefaultReporter(source)
	}

	p := parser.New(source, reporter)
	top := p.Parse()

	prog := ir.Build(top)
	validate.Validate(top, prog, reporter)

	if cfg.Display.Dump {
		fmt.Print(prog.Disassemble())
	}

	vm := interp.New(prog, os.Stdout, reporter, interp.Limits{
		CallStackCap:    cfg.Execution.CallStackDepth,
		OperandStackCap: cfg.Execution.OperandStackCap,
		MessageBufCap:   cfg.Execution.MessageBufCap,
	})
	vm.Run()

	if vm.State == interp.StateCrashed {
		return 1
	}

	fmt.Printf("Result: '%s'\n", vm.FinalMessage)
	return 0
}
