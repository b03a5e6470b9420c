// Package diag implements the reporter interface shared by every stage of
// the pipeline: the lexer, the parser, the validator and the interpreter
// all report through it instead of returning errors up a call chain.
package diag

import (
	"fmt"
	"os"
	"strings"

	"github.com/leonardosnt/assembler-interpreter/span"
)

// Kind categorizes a reported problem: lex, parse, build or runtime.
type Kind int

const (
	KindLex Kind = iota
	KindParse
	KindBuild
	KindRuntime
)

// Error is a single reported problem tied to a source span.
type Error struct {
	Kind    Kind
	Message string
	Span    span.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Span)
}

// Reporter receives a message and a span whenever a component detects a
// problem it cannot recover from locally. The default reporter prints the
// message and terminates the process; reporters used in tests record the
// report and return normally so behavior past the first error can be
// inspected.
type Reporter interface {
	Report(kind Kind, message string, sp span.Span)
}

// DefaultReporter prints "Error: <message> (line: L column: C)" followed
// by a two-line excerpt of the offending span and terminates the process.
type DefaultReporter struct {
	Source string
	Out    *os.File
}

// NewDefaultReporter returns a reporter that writes to stderr.
func NewDefaultReporter(source string) *DefaultReporter {
	return &DefaultReporter{Source: source, Out: os.Stderr}
}

func (r *DefaultReporter) Report(kind Kind, message string, sp span.Span) {
	fmt.Fprintf(r.Out, "Error: %s (%s)\n", message, sp)
	fmt.Fprint(r.Out, renderExcerpt(r.Source, sp))
	os.Exit(1)
}

// renderExcerpt returns the source line containing sp and an underline
// beneath the span's column range.
func renderExcerpt(source string, sp span.Span) string {
	line := lineAt(source, sp.Line)
	if line == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "> %s\n", line)

	pad := strings.Repeat(" ", len("> ")+sp.ColStart)
	width := sp.ColEnd - sp.ColStart
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(&b, "%s%s\n", pad, strings.Repeat("^", width))
	return b.String()
}

func lineAt(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

// RecordingReporter records every report instead of terminating, so tests
// can assert on the first (or every) diagnostic a stage produced.
type RecordingReporter struct {
	Errors []*Error
}

// NewRecordingReporter returns an empty RecordingReporter.
func NewRecordingReporter() *RecordingReporter {
	return &RecordingReporter{}
}

func (r *RecordingReporter) Report(kind Kind, message string, sp span.Span) {
	r.Errors = append(r.Errors, &Error{Kind: kind, Message: message, Span: sp})
}

// HasErrors reports whether any diagnostic was recorded.
func (r *RecordingReporter) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first recorded error, or nil if none were recorded.
func (r *RecordingReporter) First() *Error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}
