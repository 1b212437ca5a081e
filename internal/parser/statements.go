package parser

import (
	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/token"
)

// parseStatement implements:
//
//	statement := ifStmt | forStmt | whileStmt | returnStmt
//	           | block | assignment | expressionStmt
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curIs(token.IF):
		return p.parseIfStatement()
	case p.curIs(token.WHILE):
		return p.parseWhileStatement()
	case p.curIs(token.FOR):
		return p.parseForEachStatement()
	case p.curIs(token.RETURN):
		return p.parseReturnStatement()
	case p.curIs(token.LBRACE):
		return p.parseBlock()
	case p.isPrintCallHere():
		return p.parsePrintStatement()
	case p.curIs(token.IDENT) && p.peekIs(token.ASSIGN):
		return p.parseAssignment()
	default:
		return p.parseExpressionStatement()
	}
}

// isPrintCallHere recognizes `print(` / `println(` at the statement
// level. print and println are ordinary Method symbols (injected into
// Global by the symbol table, not lexer keywords), but the AST keeps a
// dedicated PrintStatement node rather than a generic call expression
// statement, so the parser must special-case the spelling here.
func (p *Parser) isPrintCallHere() bool {
	if !p.curIs(token.IDENT) {
		return false
	}
	lex := p.cur().Lexeme
	return (lex == "print" || lex == "println") && p.peekIs(token.LPAREN)
}

func (p *Parser) parsePrintStatement() ast.Statement {
	nameTok := p.advance() // consume 'print' or 'println'
	newline := nameTok.Lexeme == "println"
	p.expect(token.LPAREN)

	var value ast.Expression
	if !p.curIs(token.RPAREN) {
		value = p.parseExpression()
	} else {
		p.errorf("%s requires exactly one argument", nameTok.Lexeme)
		value = &ast.NullLiteral{Token: nameTok}
	}
	p.expect(token.RPAREN)
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.PrintStatement{Token: nameTok, Newline: newline, Value: value}
}

// parseIfStatement implements `ifStmt := 'if' '(' expression ')'
// statement ('else' statement)?`. The dangling else attaches to the
// nearest preceding if for free: parseStatement for the then-branch
// greedily consumes its own trailing else before control returns here.
func (p *Parser) parseIfStatement() ast.Statement {
	ifTok := p.advance() // consume 'if'
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()

	var elseStmt ast.Statement
	if p.curIs(token.ELSE) {
		p.advance()
		elseStmt = p.parseStatement()
	}
	return &ast.IfStatement{Token: ifTok, Condition: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	whileTok := p.advance() // consume 'while'
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{Token: whileTok, Condition: cond, Body: body}
}

// parseForEachStatement implements `forStmt := 'for' '(' type? IDENT
// 'in' expression ')' statement`.
func (p *Parser) parseForEachStatement() ast.Statement {
	forTok := p.advance() // consume 'for'
	p.expect(token.LPAREN)

	var typeName string
	if p.startsTypeLedDeclaration() {
		typeName = p.parseTypeName()
	}
	if !p.curIs(token.IDENT) {
		p.errorf("expected a loop variable name, got %s", p.cur().Type)
	}
	iterTok := p.advance()
	iter := &ast.Identifier{Token: iterTok, Value: iterTok.Lexeme}

	p.expect(token.IN)
	iterable := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.ForEachStatement{Token: forTok, TypeName: typeName, Iter: iter, Iterable: iterable, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	retTok := p.advance() // consume 'return'
	var value ast.Expression
	if !p.curIs(token.SEMICOLON) {
		value = p.parseExpression()
	}
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.ReturnStatement{Token: retTok, Value: value}
}

// parseBlock implements the block body as `(declaration | statement)*`,
// the same shape as a compilation unit — local variable and constant
// declarations are only reachable through this production, since
// `statement` itself does not include them.
func (p *Parser) parseBlock() *ast.Block {
	lbrace := p.advance() // consume '{'
	block := &ast.Block{Token: lbrace}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		before := p.pos
		stmt := p.parseDeclarationOrStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseAssignment() ast.Statement {
	nameTok := p.advance()
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme}
	eqTok := p.advance() // consume '='
	value := p.parseExpression()
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.Assignment{Token: eqTok, Name: name, Value: value}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression()
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}
