// Package parser implements pathfinder's parser using Pratt parsing for
// expressions (operator-precedence climbing via prefix/infix handler
// tables) and straightforward recursive descent for statements and
// indentation-delimited blocks.
package parser

import (
	"fmt"

	"github.com/nilbranch/pathfinder/ast"
	pferrors "github.com/nilbranch/pathfinder/internal/errors"
	"github.com/nilbranch/pathfinder/internal/lexer"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ORPREC
	ANDPREC
	COMPAREPREC
	SUM
	PRODUCT
	PREFIX
	POWER
	CALL
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:         ORPREC,
	lexer.AND:        ANDPREC,
	lexer.EQ:         COMPAREPREC,
	lexer.NEQ:        COMPAREPREC,
	lexer.LT:         COMPAREPREC,
	lexer.LTE:        COMPAREPREC,
	lexer.GT:         COMPAREPREC,
	lexer.GTE:        COMPAREPREC,
	lexer.PLUS:       SUM,
	lexer.MINUS:      SUM,
	lexer.STAR:       PRODUCT,
	lexer.SLASH:      PRODUCT,
	lexer.DOUBLESTAR: POWER,
	lexer.LPAREN:     CALL,
	lexer.DOT:        CALL,
}

type prefixFn func() ast.Expression
type infixFn func(ast.Expression) ast.Expression

// Parser turns a token stream into an *ast.Module, accumulating every
// syntax error it finds rather than stopping at the first one (spec §7
// class 2) — each error resynchronizes at the next NEWLINE.
type Parser struct {
	l      *lexer.Lexer
	source string
	file   string

	cur  lexer.Token
	peek lexer.Token

	errors []*pferrors.CompilerError

	prefixFns map[lexer.TokenType]prefixFn
	infixFns  map[lexer.TokenType]infixFn
}

// New builds a Parser over source, reading tokens from l. file and source
// are carried only for error message formatting.
func New(l *lexer.Lexer, file, source string) *Parser {
	p := &Parser{l: l, file: file, source: source}

	p.prefixFns = map[lexer.TokenType]prefixFn{
		lexer.IDENT:  p.parseIdentifier,
		lexer.NUMBER: p.parseNumber,
		lexer.STRING: p.parseUnsupportedLiteral,
		lexer.NONE:   p.parseUnsupportedLiteral,
		lexer.TRUE:   p.parseBool,
		lexer.FALSE:  p.parseBool,
		lexer.MINUS:  p.parseUnary,
		lexer.PLUS:   p.parseUnary,
		lexer.NOT:    p.parseNot,
		lexer.LPAREN: p.parseGroupedExpr,
	}
	p.infixFns = map[lexer.TokenType]infixFn{
		lexer.PLUS:       p.parseBinary,
		lexer.MINUS:      p.parseBinary,
		lexer.STAR:       p.parseBinary,
		lexer.SLASH:      p.parseBinary,
		lexer.DOUBLESTAR: p.parsePower,
		lexer.EQ:         p.parseCompare,
		lexer.NEQ:        p.parseCompare,
		lexer.LT:         p.parseCompare,
		lexer.LTE:        p.parseCompare,
		lexer.GT:         p.parseCompare,
		lexer.GTE:        p.parseCompare,
		lexer.AND:        p.parseBoolOp,
		lexer.OR:         p.parseBoolOp,
		lexer.LPAREN:     p.parseCall,
		lexer.DOT:        p.parseAttribute,
	}

	p.advance()
	p.advance()
	return p
}

// Errors returns every syntax error accumulated during Parse.
func (p *Parser) Errors() []*pferrors.CompilerError { return p.errors }

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return LOWEST
}

// expect checks the current token is t, advances past it, and reports a
// CompilerError (without panicking) if it is not.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errorf("expected %s, got %s", t, p.cur.Type)
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, pferrors.NewCompilerError(
		p.cur.Pos, fmt.Sprintf(format, args...), p.source, p.file))
}

// skipNewlines consumes zero or more NEWLINE tokens — a stray blank
// NEWLINE (e.g. the synthetic one the lexer emits at end of file) is
// never syntactically meaningful on its own.
func (p *Parser) skipNewlines() {
	for p.curIs(lexer.NEWLINE) {
		p.advance()
	}
}

// synchronize discards tokens through the next NEWLINE so a single
// malformed statement doesn't cascade into spurious follow-on errors.
func (p *Parser) synchronize() {
	for !p.curIs(lexer.NEWLINE) && !p.curIs(lexer.EOF) {
		p.advance()
	}
	p.skipNewlines()
}

// Parse consumes the whole token stream and returns the resulting module.
// Parsing continues past errors so Errors() can report every problem in
// one pass; callers should check Errors() before trusting the result.
func (p *Parser) Parse() *ast.Module {
	module := &ast.Module{}
	p.skipNewlines()
	for !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			module.Statements = append(module.Statements, stmt)
		}
		p.skipNewlines()
	}
	return module
}

// parseExpression is the Pratt-parsing core. Every prefix/infix handler
// follows a self-advancing convention: it consumes its own token(s) and
// returns with cur already on the token that follows its subexpression —
// so this loop reads the would-be operator off cur, not peek.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixFns[p.cur.Type]
	if prefix == nil {
		p.errorf("unexpected token %s in expression", p.cur.Type)
		return nil
	}
	left := prefix()

	for !p.curIs(lexer.NEWLINE) && precedence < p.curPrecedence() {
		infix := p.infixFns[p.cur.Type]
		if infix == nil {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.cur
	p.advance()
	return &ast.Identifier{Line: tok.Pos.Line, Value: tok.Literal}
}

func (p *Parser) parseNumber() ast.Expression {
	tok := p.cur
	p.advance()
	val, err := parseFloat(tok.Literal)
	if err != nil {
		p.errors = append(p.errors, pferrors.NewCompilerError(
			tok.Pos, fmt.Sprintf("malformed number literal %q", tok.Literal), p.source, p.file))
	}
	return &ast.Constant{Line: tok.Pos.Line, Kind: ast.ConstNumber, Value: val, Raw: tok.Literal}
}

func (p *Parser) parseBool() ast.Expression {
	tok := p.cur
	p.advance()
	return &ast.Constant{Line: tok.Pos.Line, Kind: ast.ConstBool, Bool: tok.Type == lexer.TRUE, Raw: tok.Literal}
}

// parseUnsupportedLiteral handles String/None literals: no usable value,
// folds to Unknown during evaluation (spec §3).
func (p *Parser) parseUnsupportedLiteral() ast.Expression {
	tok := p.cur
	p.advance()
	return &ast.Constant{Line: tok.Pos.Line, Kind: ast.ConstUnsupported, Raw: tok.Literal}
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.cur
	op := ast.Neg
	if tok.Type == lexer.PLUS {
		op = ast.Pos
	}
	p.advance()
	operand := p.parseExpression(PREFIX)
	return &ast.UnaryOp{Line: tok.Pos.Line, Operator: op, Operand: operand}
}

// parseNot binds tighter than and/or but looser than comparisons, so
// `not a == b` reads as `not (a == b)` and `not a and b` reads as
// `(not a) and b` (spec §4.4's language-level operator precedence).
func (p *Parser) parseNot() ast.Expression {
	tok := p.cur
	p.advance()
	operand := p.parseExpression(ANDPREC)
	return &ast.UnaryOp{Line: tok.Pos.Line, Operator: ast.Not, Operand: operand}
}

func (p *Parser) parseGroupedExpr() ast.Expression {
	p.advance() // consume '('
	expr := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.cur
	op := binOperator(tok.Type)
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	return &ast.BinOp{Line: tok.Pos.Line, Operator: op, Left: left, Right: right}
}

// parsePower binds ** right-associatively: 2**3**2 is 2**(3**2).
func (p *Parser) parsePower(left ast.Expression) ast.Expression {
	tok := p.cur
	p.advance()
	right := p.parseExpression(POWER - 1)
	return &ast.BinOp{Line: tok.Pos.Line, Operator: ast.Pow, Left: left, Right: right}
}

// parseCompare builds (or extends) a chained comparison: `a < b <= c`
// becomes one Compare node with two links (spec §4.4).
func (p *Parser) parseCompare(left ast.Expression) ast.Expression {
	tok := p.cur
	op := compareOperator(tok.Type)
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)

	if cmp, ok := left.(*ast.Compare); ok {
		cmp.Links = append(cmp.Links, ast.CompareLink{Operator: op, Operand: right})
		return cmp
	}
	return &ast.Compare{
		Line:  left.Pos(),
		Left:  left,
		Links: []ast.CompareLink{{Operator: op, Operand: right}},
	}
}

// parseBoolOp builds (or extends) a flat and/or chain: `a and b and c`
// becomes one BoolOp with three operands, not a nested tree (spec §3).
func (p *Parser) parseBoolOp(left ast.Expression) ast.Expression {
	tok := p.cur
	op := boolOperator(tok.Type)
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)

	if bo, ok := left.(*ast.BoolOp); ok && bo.Operator == op {
		bo.Operands = append(bo.Operands, right)
		return bo
	}
	return &ast.BoolOp{Line: left.Pos(), Operator: op, Operands: []ast.Expression{left, right}}
}

func (p *Parser) parseCall(left ast.Expression) ast.Expression {
	tok := p.cur // '('
	p.advance()

	var args []ast.Expression
	for !p.curIs(lexer.RPAREN) {
		args = append(args, p.parseExpression(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN)

	return &ast.Call{Line: tok.Pos.Line, Callee: left, Args: args}
}

func (p *Parser) parseAttribute(left ast.Expression) ast.Expression {
	tok := p.cur // '.'
	p.advance()
	if !p.curIs(lexer.IDENT) {
		p.errorf("expected attribute name after '.', got %s", p.cur.Type)
		return left
	}
	attr := p.cur.Literal
	p.advance()
	return &ast.AttributeRef{Line: tok.Pos.Line, Value: left, Attr: attr}
}
