package parser

import (
	"github.com/nilbranch/pathfinder/ast"
	"github.com/nilbranch/pathfinder/internal/lexer"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.DEF:
		return p.parseFunctionDef()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.RAISE:
		return p.parseRaise()
	case lexer.BREAK:
		return p.parseBreak()
	case lexer.IDENT:
		if isAugAssignTok(p.peek.Type) || p.peekIs(lexer.ASSIGN) {
			return p.parseAssignLike()
		}
		return p.parseExprStatement()
	default:
		return p.parseExprStatement()
	}
}

func isAugAssignTok(t lexer.TokenType) bool {
	switch t {
	case lexer.PLUSEQ, lexer.MINUSEQ, lexer.STAREQ, lexer.SLASHEQ:
		return true
	}
	return false
}

// expectNewline closes out a simple statement; on a missing NEWLINE it
// resynchronizes at the next line rather than leaving the parser stuck.
func (p *Parser) expectNewline() {
	if !p.expect(lexer.NEWLINE) {
		p.synchronize()
	}
}

// stmtEndLine returns the line a statement's block (if any) actually
// ends on, used to compute a parent If/While/For's own EndLine.
func stmtEndLine(s ast.Statement) int {
	switch v := s.(type) {
	case *ast.If:
		return v.EndLine
	case *ast.While:
		return v.EndLine
	case *ast.For:
		return v.EndLine
	case *ast.FunctionDef:
		return v.EndLine
	default:
		return s.Pos()
	}
}

// parseSuite parses an indented statement block following a header's ':'
// — NEWLINE INDENT stmt* DEDENT — and returns it with the line its last
// statement ends on (the header's own line if the body is empty).
func (p *Parser) parseSuite() ([]ast.Statement, int) {
	headerLine := p.cur.Pos.Line
	if !p.expect(lexer.NEWLINE) {
		p.synchronize()
		return nil, headerLine
	}
	if !p.expect(lexer.INDENT) {
		p.errorf("expected an indented block")
		return nil, headerLine
	}

	var stmts []ast.Statement
	endLine := headerLine
	for !p.curIs(lexer.DEDENT) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
			endLine = stmtEndLine(stmt)
		}
		p.skipNewlines()
	}
	p.expect(lexer.DEDENT)
	return stmts, endLine
}

func (p *Parser) parseAssignLike() ast.Statement {
	line := p.cur.Pos.Line
	target := p.cur.Literal
	p.advance() // IDENT
	opTok := p.cur
	p.advance() // '=' or augmented-assign operator

	value := p.parseExpression(LOWEST)

	var stmt ast.Statement
	if opTok.Type == lexer.ASSIGN {
		stmt = &ast.Assign{Line: line, Target: target, Value: value}
	} else {
		stmt = &ast.AugAssign{Line: line, Target: target, Operator: augOperator(opTok.Type), Value: value}
	}
	p.expectNewline()
	return stmt
}

func (p *Parser) parseExprStatement() ast.Statement {
	line := p.cur.Pos.Line
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.synchronize()
		return nil
	}
	p.expectNewline()
	return &ast.ExprStmt{Line: line, X: expr}
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.cur
	p.advance()
	var val ast.Expression
	if !p.curIs(lexer.NEWLINE) {
		val = p.parseExpression(LOWEST)
	}
	p.expectNewline()
	return &ast.Return{Line: tok.Pos.Line, Value: val}
}

func (p *Parser) parseRaise() ast.Statement {
	tok := p.cur
	p.advance()
	p.expectNewline()
	return &ast.Raise{Line: tok.Pos.Line}
}

func (p *Parser) parseBreak() ast.Statement {
	tok := p.cur
	p.advance()
	p.expectNewline()
	return &ast.Break{Line: tok.Pos.Line}
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.cur
	p.advance()
	test := p.parseExpression(LOWEST)
	if !p.expect(lexer.COLON) {
		p.synchronize()
	}
	body, endLine := p.parseSuite()
	node := &ast.If{Line: tok.Pos.Line, Test: test, Then: body, EndLine: endLine}

	switch {
	case p.curIs(lexer.ELIF):
		nested := p.parseElif()
		node.Else = []ast.Statement{nested}
		node.EndLine = nested.EndLine
	case p.curIs(lexer.ELSE):
		p.advance()
		if !p.expect(lexer.COLON) {
			p.synchronize()
		}
		elseBody, elseEnd := p.parseSuite()
		node.Else = elseBody
		if elseEnd > node.EndLine {
			node.EndLine = elseEnd
		}
	}
	return node
}

// parseElif parses one `elif test: body` arm (and anything chained after
// it) as a nested *ast.If, the way the source language's elif-chain
// desugars into nested if/else (spec §3).
func (p *Parser) parseElif() *ast.If {
	tok := p.cur
	p.advance()
	test := p.parseExpression(LOWEST)
	if !p.expect(lexer.COLON) {
		p.synchronize()
	}
	body, endLine := p.parseSuite()
	node := &ast.If{Line: tok.Pos.Line, Test: test, Then: body, EndLine: endLine}

	switch {
	case p.curIs(lexer.ELIF):
		nested := p.parseElif()
		node.Else = []ast.Statement{nested}
		node.EndLine = nested.EndLine
	case p.curIs(lexer.ELSE):
		p.advance()
		if !p.expect(lexer.COLON) {
			p.synchronize()
		}
		elseBody, elseEnd := p.parseSuite()
		node.Else = elseBody
		if elseEnd > node.EndLine {
			node.EndLine = elseEnd
		}
	}
	return node
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.cur
	p.advance()
	test := p.parseExpression(LOWEST)
	if !p.expect(lexer.COLON) {
		p.synchronize()
	}
	body, endLine := p.parseSuite()
	node := &ast.While{Line: tok.Pos.Line, Test: test, Body: body, EndLine: endLine}

	if p.curIs(lexer.ELSE) {
		p.advance()
		if !p.expect(lexer.COLON) {
			p.synchronize()
		}
		elseBody, elseEnd := p.parseSuite()
		node.Else = elseBody
		if elseEnd > node.EndLine {
			node.EndLine = elseEnd
		}
	}
	return node
}

func (p *Parser) parseFor() ast.Statement {
	tok := p.cur
	p.advance()

	var target string
	if p.curIs(lexer.IDENT) {
		target = p.cur.Literal
		p.advance()
	} else {
		p.errorf("expected loop variable name, got %s", p.cur.Type)
	}

	if !p.expect(lexer.IN) {
		p.synchronize()
	}
	iter := p.parseExpression(LOWEST)
	if !p.expect(lexer.COLON) {
		p.synchronize()
	}
	body, endLine := p.parseSuite()
	return &ast.For{Line: tok.Pos.Line, Target: target, Iter: iter, Body: body, EndLine: endLine}
}

func (p *Parser) parseFunctionDef() ast.Statement {
	tok := p.cur
	p.advance()

	var name string
	if p.curIs(lexer.IDENT) {
		name = p.cur.Literal
		p.advance()
	} else {
		p.errorf("expected function name, got %s", p.cur.Type)
	}

	if !p.expect(lexer.LPAREN) {
		p.synchronize()
		return &ast.FunctionDef{Line: tok.Pos.Line, Name: name, EndLine: tok.Pos.Line}
	}

	var params []string
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if !p.curIs(lexer.IDENT) {
			p.errorf("expected parameter name, got %s", p.cur.Type)
			break
		}
		params = append(params, p.cur.Literal)
		p.advance()
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN)

	if !p.expect(lexer.COLON) {
		p.synchronize()
	}
	body, endLine := p.parseSuite()
	return &ast.FunctionDef{Line: tok.Pos.Line, EndLine: endLine, Name: name, Params: params, Body: body}
}
