package parser

import (
	"strconv"
	"strings"

	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/token"
)

// parseExpression is the grammar's `expression` production: the entry
// point into the precedence-climbing ladder below, lowest precedence
// first. Each level calls the next, so binding strength increases as
// the call stack deepens — the standard recursive-descent encoding of
// a precedence table.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.curIs(token.OR_OR) {
		opTok := p.advance()
		right := p.parseLogicalAnd()
		left = &ast.Binary{Token: opTok, Operator: "||", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseRelational()
	for p.curIs(token.AND_AND) {
		opTok := p.advance()
		right := p.parseRelational()
		left = &ast.Binary{Token: opTok, Operator: "&&", Left: left, Right: right}
	}
	return left
}

var relationalOps = map[token.Type]string{
	token.LT: "<", token.LT_EQ: "<=", token.GT: ">", token.GT_EQ: ">=",
	token.EQ_EQ: "==", token.NOT_EQ: "!=",
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for {
		op, ok := relationalOps[p.cur().Type]
		if !ok {
			return left
		}
		opTok := p.advance()
		right := p.parseAdditive()
		left = &ast.Binary{Token: opTok, Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		opTok := p.advance()
		right := p.parseMultiplicative()
		left = &ast.Binary{Token: opTok, Operator: opTok.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parsePower()
	for p.curIs(token.STAR) || p.curIs(token.SLASH) || p.curIs(token.PERCENT) {
		opTok := p.advance()
		right := p.parsePower()
		left = &ast.Binary{Token: opTok, Operator: opTok.Lexeme, Left: left, Right: right}
	}
	return left
}

// parsePower implements the grammar's right-associative `**`:
// `power := unary ('**' power)?`. Recursing back into parsePower (not
// parseUnary) on the right-hand side is what makes 2**3**4 parse as
// 2**(3**4).
func (p *Parser) parsePower() ast.Expression {
	left := p.parseUnary()
	if p.curIs(token.POWER) {
		opTok := p.advance()
		right := p.parsePower()
		return &ast.Binary{Token: opTok, Operator: "**", Left: left, Right: right}
	}
	return left
}

// parseUnary implements `unary := '!' unary | '-' unary | postfix`. A
// leading '-' here is always a negation marker, never the binary minus
// parseAdditive handles — the two are disambiguated purely by grammar
// position, never by lookahead heuristics.
func (p *Parser) parseUnary() ast.Expression {
	if p.curIs(token.BANG) || p.curIs(token.MINUS) {
		opTok := p.advance()
		operand := p.parseUnary()
		op := "!"
		if opTok.Type == token.MINUS {
			op = "-"
		}
		return &ast.Unary{Token: opTok, Operator: op, Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix implements `postfix := primary (('(' args? ')') | ('.' IDENT))*`,
// left-associatively chaining calls and member accesses: `a.b.c(1).d`.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.curIs(token.LPAREN):
			expr = p.parseCallArguments(expr)
		case p.curIs(token.DOT):
			dotTok := p.advance()
			if !p.curIs(token.IDENT) {
				p.errorf("expected member name after '.', got %s", p.cur().Type)
				return expr
			}
			nameTok := p.advance()
			expr = &ast.MemberAccess{Token: dotTok, Object: expr, Member: nameTok.Lexeme}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArguments(target ast.Expression) ast.Expression {
	parenTok := p.advance() // consume '('
	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		args = append(args, p.parseExpression())
		for p.curIs(token.COMMA) {
			p.advance()
			args = append(args, p.parseExpression())
		}
	}
	p.expect(token.RPAREN)
	return &ast.Call{Token: parenTok, Target: target, Args: args}
}

// parsePrimary implements `primary := IDENT | literal | '(' expression ')' | 'new' type '(' args? ')'`.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Lexeme}
	case token.INT:
		p.advance()
		return p.parseIntLiteral(tok)
	case token.FLOAT:
		p.advance()
		return p.parseDoubleLiteral(tok)
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: unescapeString(tok.Lexeme)}
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Token: tok}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.NEW:
		return p.parseNewInstance()
	default:
		p.errorf("unexpected token %s in expression", tok.Type)
		// Do not consume: the caller's synchronize() needs to see this
		// token to make a sound recovery decision. Return a placeholder
		// so the caller always has a non-nil Expression to embed.
		return &ast.NullLiteral{Token: tok}
	}
}

func (p *Parser) parseIntLiteral(tok token.Token) ast.Expression {
	v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.errorf("integer literal %q out of range", tok.Lexeme)
	}
	return &ast.IntLiteral{Token: tok, Value: v}
}

func (p *Parser) parseDoubleLiteral(tok token.Token) ast.Expression {
	v, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		p.errorf("float literal %q is malformed", tok.Lexeme)
	}
	return &ast.DoubleLiteral{Token: tok, Value: v}
}

func (p *Parser) parseNewInstance() ast.Expression {
	newTok := p.advance() // consume 'new'
	if !p.typeNameStartsHere() {
		p.errorf("expected class name after 'new', got %s", p.cur().Type)
		return &ast.NullLiteral{Token: newTok}
	}
	className := p.parseTypeName()
	if !p.expect(token.LPAREN) {
		return &ast.NewInstance{Token: newTok, ClassName: className}
	}
	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		args = append(args, p.parseExpression())
		for p.curIs(token.COMMA) {
			p.advance()
			args = append(args, p.parseExpression())
		}
	}
	p.expect(token.RPAREN)
	return &ast.NewInstance{Token: newTok, ClassName: className, Args: args}
}

// unescapeString converts a string literal's verbatim lexeme (quotes
// and backslash escapes intact) into its runtime value. The lexer has
// already rejected any escape other than \n \t \r \" \\, so this never
// encounters an unrecognized sequence on a lexeme it is handed.
func unescapeString(lexeme string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(lexeme, `"`), `"`)
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] != '\\' || i == len(inner)-1 {
			sb.WriteByte(inner[i])
			continue
		}
		i++
		switch inner[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		}
	}
	return sb.String()
}
