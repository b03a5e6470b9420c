// Command regc compiles a register-VM assembly source file straight to a
// portable C99 source file via the codegen package, a second front end
// onto the same lexer/parser/ir/validate pipeline interp uses to run
// programs directly.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leonardosnt/assembler-interpreter/codegen"
	"github.com/leonardosnt/assembler-interpreter/diag"
	"github.com/leonardosnt/assembler-interpreter/ir"
	"github.com/leonardosnt/assembler-interpreter/parser"
	"github.com/leonardosnt/assembler-interpreter/validate"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: regc <path>")
		return 2
	}

	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "regc: %s\n", err)
		return 2
	}

	source := string(src)
	reporter := diag.NewDefaultReporter(source)

	p := parser.New(source, reporter)
	top := p.Parse()

	prog := ir.Build(top)
	validate.Validate(top, prog, reporter)

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".c"
	if err := os.WriteFile(out, []byte(codegen.Generate(prog)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "regc: %s\n", err)
		return 1
	}

	fmt.Println(out)
	return 0
}
