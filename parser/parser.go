// Package parser assembles a token stream into a top-level parse tree of
// instructions and labels.
package parser

import (
	"fmt"

	"github.com/leonardosnt/assembler-interpreter/ast"
	"github.com/leonardosnt/assembler-interpreter/diag"
	"github.com/leonardosnt/assembler-interpreter/lexer"
	"github.com/leonardosnt/assembler-interpreter/token"
)

// Parser materializes every token upfront, then walks it with a two-token
// lookahead (current/peek).
type Parser struct {
	tokens   []token.Token
	pos      int
	current  token.Token
	peek     token.Token
	reporter diag.Reporter
}

// New creates a parser over src.
func New(src string, reporter diag.Reporter) *Parser {
	lx := lexer.New(src, reporter)
	p := &Parser{
		tokens:   lx.TokenizeAll(),
		reporter: reporter,
	}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.current = p.peek
	if p.pos < len(p.tokens) {
		p.peek = p.tokens[p.pos]
		p.pos++
	} else {
		p.peek = token.Token{Type: token.EOF, Span: p.current.Span}
	}
}

// nextSkipNewlines advances past any run of newline tokens and returns the
// first non-newline token.
func (p *Parser) nextSkipNewlines() token.Token {
	t := p.current
	p.advance()
	for t.Type == token.NewLine {
		t = p.current
		p.advance()
	}
	return t
}

// peekSkipNewlines returns the first non-newline token without consuming
// anything.
func (p *Parser) peekSkipNewlines() token.Token {
	save, savedCurrent, savedPeek := p.pos, p.current, p.peek
	t := p.nextSkipNewlines()
	p.pos, p.current, p.peek = save, savedCurrent, savedPeek
	return t
}

// isLabelAhead reports whether the next non-newline token is a symbol and
// the token directly after it is a colon, the lookahead the parser uses to
// tell labels apart from instructions without further backtracking.
// Newlines between the symbol and the colon are not skipped.
func (p *Parser) isLabelAhead() bool {
	save, savedCurrent, savedPeek := p.pos, p.current, p.peek
	t0 := p.nextSkipNewlines()
	t1 := p.current
	p.advance()
	p.pos, p.current, p.peek = save, savedCurrent, savedPeek
	return t0.Type == token.Symbol && t1.Type == token.Colon
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.reporter.Report(diag.KindParse, fmt.Sprintf(format, args...), tok.Span)
}

func (p *Parser) expect(tt token.Type) token.Token {
	t := p.current
	p.advance()
	if t.Type != tt {
		p.errorf(t, "expected a '%s', but got '%s'.", tt.Friendly(), t.Value())
	}
	return t
}

// Parse consumes the entire token stream and returns the top-level tree.
func (p *Parser) Parse() *ast.TopLevel {
	top := &ast.TopLevel{}

	for p.peekSkipNewlines().Type != token.EOF {
		if p.isLabelAhead() {
			if lbl := p.parseLabel(); lbl != nil {
				top.Labels = append(top.Labels, lbl)
			}
			continue
		}

		t := p.peekSkipNewlines()
		if t.Type == token.Symbol {
			if inst := p.parseInstruction(); inst != nil {
				top.Instructions = append(top.Instructions, inst)
			}
			continue
		}

		p.errorf(t, "unexpected token '%s (%s)' at top level. Expected a instruction or a label.",
			t.Type, t.Value())
		p.nextSkipNewlines()
	}

	return top
}

func isNewLineOrEOF(t token.Token) bool {
	return t.Type == token.NewLine || t.Type == token.EOF
}

// parseInstruction consumes an opcode symbol and its operands.
func (p *Parser) parseInstruction() *ast.Instruction {
	opcode := p.nextSkipNewlines()

	var operands []ast.Operand
	if !isNewLineOrEOF(p.current) {
		operands = p.parseOperands()
	}

	return &ast.Instruction{Opcode: opcode, Operands: operands}
}

func (p *Parser) parseOperands() []ast.Operand {
	var operands []ast.Operand

	for {
		operand := p.parseOperand()
		if operand != nil {
			operands = append(operands, operand)
		}

		t := p.current
		p.advance()
		if isNewLineOrEOF(t) {
			break
		}
		if t.Type != token.Comma {
			p.errorf(t, "expected ',' between operands, but got '%s'.", t.Value())
			break
		}
	}

	return operands
}

// parseOperand recognizes the three operand shapes: `[symbol]`,
// `integer[symbol]`, and a bare symbol/string/integer.
func (p *Parser) parseOperand() ast.Operand {
	t := p.current
	p.advance()

	if t.Type == token.BracketOpen || p.current.Type == token.BracketOpen {
		hasOffset := t.Type != token.BracketOpen

		if hasOffset && t.Type != token.Integer {
			p.errorf(t, "invalid token '%s' before memory address. Expected an integer as offset.", t.Type.Friendly())
			return nil
		}

		if hasOffset {
			p.advance() // consume '['
		}

		regToken := p.expect(token.Symbol)
		closeToken := p.expect(token.BracketClose)

		sp := t.Span
		sp.ColEnd = closeToken.Span.ColEnd

		var offset *token.Token
		if hasOffset {
			off := t
			offset = &off
		}

		return &ast.OperandMemAddress{
			Offset:   offset,
			Register: regToken,
			Sp:       sp,
		}
	}

	if t.Type == token.Symbol || t.Type == token.String || t.Type == token.Integer {
		return &ast.OperandSimple{Token: t}
	}

	p.errorf(t, "unexpected token '%s' as an operand.", t.Value())
	return nil
}

// parseLabel consumes a label name, its colon, and every instruction that
// belongs to it.
func (p *Parser) parseLabel() *ast.Label {
	name := p.nextSkipNewlines()
	p.advance() // consume ':'

	t := p.peekSkipNewlines()
	if t.Type != token.Symbol {
		p.errorf(t, "unexpected token '%s' after a label.", t.Value())
		return nil
	}

	var instructions []*ast.Instruction
	for {
		inst := p.parseInstruction()
		if inst != nil {
			instructions = append(instructions, inst)
		}

		next := p.peekSkipNewlines()
		if next.Type == token.EOF || p.isLabelAhead() {
			break
		}
	}

	return &ast.Label{Name: name, Instructions: instructions}
}
