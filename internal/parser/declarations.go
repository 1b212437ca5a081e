package parser

import (
	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/token"
)

// parseDeclarationOrStatement implements the compilationUnit production's
// per-item dispatch: `declaration | statement`. The tie-break, per the
// grammar notes, tries class-prefixed, then final-prefixed, then a
// type-led lookahead (type followed by an identifier), falling back to
// a plain statement when none of those match.
func (p *Parser) parseDeclarationOrStatement() ast.Statement {
	switch {
	case p.curIs(token.CLASS):
		return p.parseClassDeclaration()
	case p.curIs(token.FINAL):
		return p.parseConstantDeclaration()
	case p.startsTypeLedDeclaration():
		return p.parseTypeLedDeclaration(false)
	default:
		return p.parseStatement()
	}
}

// startsTypeLedDeclaration reports whether the current position begins
// `type IDENT`: either a primitive type keyword or `void` (unambiguous,
// since those are reserved words) or two consecutive identifiers, the
// first naming a class type and the second the declared variable/method.
func (p *Parser) startsTypeLedDeclaration() bool {
	if isTypeKeyword(p.cur().Type) || p.curIs(token.VOID) {
		return true
	}
	return p.curIs(token.IDENT) && p.peekIs(token.IDENT)
}

// parseTypeLedDeclaration parses `type IDENT` and then looks one token
// further to tell a methodDecl (`(`) from a variableDecl/fieldDecl
// (anything else). asField selects FieldDeclaration over
// VariableDeclaration for the non-method case, since Sigma's AST keeps
// class members and local/top-level variables as distinct node kinds.
func (p *Parser) parseTypeLedDeclaration(asField bool) ast.Statement {
	typeTok := p.cur()
	typeName := p.parseTypeName()

	if !p.curIs(token.IDENT) {
		p.errorf("expected an identifier after type %q, got %s", typeName, p.cur().Type)
		p.synchronize()
		return nil
	}
	nameTok := p.advance()
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme}

	if p.curIs(token.LPAREN) {
		return p.parseMethodDeclarationRest(typeTok, typeName, name)
	}
	if asField {
		return p.parseFieldDeclarationRest(typeTok, typeName, name)
	}
	return p.parseVariableDeclarationRest(typeTok, typeName, name, false)
}

func (p *Parser) parseVariableDeclarationRest(typeTok token.Token, typeName string, name *ast.Identifier, isConstant bool) ast.Statement {
	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		init = p.parseExpression()
	}
	if !p.expect(token.SEMICOLON) {
		// The declaration has already consumed tokens, so when the missing
		// ';' is followed directly by a restart point, parsing resumes
		// there instead of skipping past it.
		cur := p.cur().Type
		if !statementSyncSet[cur] && !isTypeKeyword(cur) && cur != token.RBRACE {
			p.synchronize()
		}
	}
	return &ast.VariableDeclaration{Token: typeTok, TypeName: typeName, Name: name, Init: init, IsConstant: isConstant}
}

func (p *Parser) parseFieldDeclarationRest(typeTok token.Token, typeName string, name *ast.Identifier) ast.Statement {
	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		init = p.parseExpression()
	}
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.FieldDeclaration{Token: typeTok, TypeName: typeName, Name: name, Init: init}
}

// parseConstantDeclaration implements `constantDecl := 'final' type IDENT
// '=' expression ';'`. The initializer is grammatically mandatory, but
// the parser tolerates a missing one rather than erroring here: a
// constant without an initializer is a *semantic* diagnostic
// (constant-without-initializer), not a parse failure, so the AST must
// be able to represent it with Init == nil.
func (p *Parser) parseConstantDeclaration() ast.Statement {
	finalTok := p.advance() // consume 'final'
	if !p.typeNameStartsHere() {
		p.errorf("expected a type after 'final', got %s", p.cur().Type)
		p.synchronize()
		return nil
	}
	typeName := p.parseTypeName()
	if !p.curIs(token.IDENT) {
		p.errorf("expected an identifier in constant declaration, got %s", p.cur().Type)
		p.synchronize()
		return nil
	}
	nameTok := p.advance()
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme}

	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		init = p.parseExpression()
	}
	if !p.expect(token.SEMICOLON) {
		p.synchronize()
	}
	return &ast.VariableDeclaration{Token: finalTok, TypeName: typeName, Name: name, Init: init, IsConstant: true}
}

func (p *Parser) parseMethodDeclarationRest(typeTok token.Token, returnType string, name *ast.Identifier) ast.Statement {
	p.advance() // consume '('
	var params []*ast.Parameter
	if !p.curIs(token.RPAREN) {
		params = append(params, p.parseParameter())
		for p.curIs(token.COMMA) {
			p.advance()
			params = append(params, p.parseParameter())
		}
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.MethodDeclaration{Token: typeTok, ReturnType: returnType, Name: name, Parameters: params, Body: body}
}

func (p *Parser) parseParameter() *ast.Parameter {
	typeTok := p.cur()
	if !p.typeNameStartsHere() {
		p.errorf("expected a parameter type, got %s", p.cur().Type)
		return &ast.Parameter{Token: typeTok, TypeName: "<error>", Name: &ast.Identifier{Token: typeTok, Value: "<error>"}}
	}
	typeName := p.parseTypeName()
	if !p.curIs(token.IDENT) {
		p.errorf("expected a parameter name, got %s", p.cur().Type)
		return &ast.Parameter{Token: typeTok, TypeName: typeName, Name: &ast.Identifier{Token: typeTok, Value: "<error>"}}
	}
	nameTok := p.advance()
	return &ast.Parameter{Token: typeTok, TypeName: typeName, Name: &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme}}
}

// parseClassDeclaration implements `classDecl := 'class' IDENT '{'
// (declaration | statement)* '}'`. A class body's declarations are
// restricted to fields and methods by parseClassMember; a statement
// appearing directly in a class body is a syntactic error.
func (p *Parser) parseClassDeclaration() ast.Statement {
	classTok := p.advance() // consume 'class'
	if !p.curIs(token.IDENT) {
		p.errorf("expected a class name, got %s", p.cur().Type)
		p.synchronize()
		return nil
	}
	nameTok := p.advance()
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme}

	if !p.expect(token.LBRACE) {
		return &ast.ClassDeclaration{Token: classTok, Name: name}
	}

	var members []ast.Statement
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		before := p.pos
		member := p.parseClassMember()
		if member != nil {
			members = append(members, member)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return &ast.ClassDeclaration{Token: classTok, Name: name, Members: members}
}

func (p *Parser) parseClassMember() ast.Statement {
	switch {
	case p.curIs(token.FINAL):
		return p.parseConstantDeclaration()
	case p.startsTypeLedDeclaration():
		return p.parseTypeLedDeclaration(true)
	default:
		p.errorf("expected a field or method declaration in class body, got %s", p.cur().Type)
		p.synchronize()
		return nil
	}
}
