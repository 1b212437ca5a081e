// Package parser implements Sigma's recursive-descent parser: tokens to
// AST, with precedence climbing for expressions and synchronizing error
// recovery for statements.
package parser

import (
	"fmt"

	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/errors"
	"github.com/sigma-lang/sigma/internal/lexer"
	"github.com/sigma-lang/sigma/internal/token"
)

// Parser turns a pre-tokenized Sigma source into a CompilationUnit. It
// always returns a (possibly partial) AST; failures are accumulated as
// diagnostics rather than thrown.
type Parser struct {
	tokens []token.Token
	pos    int // index of the current token

	diagnostics []*errors.Diagnostic
}

// New creates a Parser over source text: it runs the lexer to
// completion first (a lexical failure still yields whatever tokens were
// scanned before the abort, plus a diagnostic), then prepares to parse
// that token stream.
func New(source string) *Parser {
	l := lexer.New(source)
	tokens := l.Tokenize()

	p := &Parser{tokens: tokens}
	if lexErr := l.Err(); lexErr != nil {
		p.diagnostics = append(p.diagnostics, errors.New(
			errors.Lexical, "", lexErr.Message,
			token.Position{Line: lexErr.Line, Column: lexErr.Col}))
		// Tokenize never appended EOF after a fatal error; the parser
		// still needs a terminator to avoid reading past the slice.
		p.tokens = append(p.tokens, token.New(token.EOF, "", token.Position{Line: lexErr.Line, Column: lexErr.Col}))
	}

	return p
}

// NewFromTokens creates a Parser directly over an already-scanned token
// stream, bypassing the lexer. Useful for tests that want to construct
// token sequences by hand.
func NewFromTokens(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseCompilationUnit parses the entire token stream into a
// CompilationUnit, always returning a non-nil (possibly partial) AST.
func (p *Parser) ParseCompilationUnit() *ast.CompilationUnit {
	unit := &ast.CompilationUnit{}
	for !p.curIs(token.EOF) {
		before := p.pos
		stmt := p.parseDeclarationOrStatement()
		if stmt != nil {
			unit.Statements = append(unit.Statements, stmt)
		}
		if p.pos == before {
			// Guarantee progress: parseDeclarationOrStatement should
			// never return without consuming at least one token, but a
			// defensive advance here keeps termination provable.
			p.advance()
		}
	}
	return unit
}

// Diagnostics returns every diagnostic recorded during parsing
// (including any lexical diagnostic surfaced from tokenization), in the
// order they were detected.
func (p *Parser) Diagnostics() []*errors.Diagnostic {
	return p.diagnostics
}

// Errors partitions Diagnostics into errors and hints (in that order)
// per the parser's "Did you mean" hint classification rule.
func (p *Parser) Errors() ([]*errors.Diagnostic, []*errors.Diagnostic) {
	return errors.Split(p.diagnostics)
}

// --- cursor ---

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek().Type == t }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// save and restore support speculative, backtracking lookahead. No
// parse routine calls them: declarations and statements are told apart
// by fixed-token lookahead (startsTypeLedDeclaration).
func (p *Parser) save() int { return p.pos }

func (p *Parser) restore(mark int) { p.pos = mark }

// expect advances past the current token if it matches t, recording a
// syntactic diagnostic and leaving the cursor in place otherwise.
func (p *Parser) expect(t token.Type) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errorf("expected %s, got %s", t, p.cur().Type)
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.error(fmt.Sprintf(format, args...))
}

func (p *Parser) error(message string) {
	p.diagnostics = append(p.diagnostics, errors.New(errors.Syntactic, "", message, p.cur().Pos))
}

func (p *Parser) hintf(format string, args ...interface{}) {
	p.diagnostics = append(p.diagnostics, errors.New(errors.Syntactic, "", fmt.Sprintf(format, args...), p.cur().Pos))
}

// isTypeKeyword reports whether t introduces a primitive type name
// (int/double/float/boolean/String), usable as the start of a variable
// or method declaration.
func isTypeKeyword(t token.Type) bool {
	return t.IsTypeKeyword()
}

// typeNameStartsHere reports whether the current token can begin a
// type name: either a primitive type keyword or an identifier used as
// a class name (any identifier is accepted; capitalization is not
// checked).
func (p *Parser) typeNameStartsHere() bool {
	return isTypeKeyword(p.cur().Type) || p.curIs(token.IDENT)
}

// parseTypeName consumes a type-name token (primitive keyword or class
// identifier) and returns its literal spelling.
func (p *Parser) parseTypeName() string {
	tok := p.advance()
	return tok.Lexeme
}

// statementSyncSet are token types the synchronize() recovery routine
// treats as safe restart points: the start of a new statement or
// declaration.
var statementSyncSet = map[token.Type]bool{
	token.CLASS:  true,
	token.IF:     true,
	token.ELSE:   true,
	token.FOR:    true,
	token.WHILE:  true,
	token.RETURN: true,
	token.FINAL:  true,
}

// synchronize advances the cursor to the next semicolon, closing brace,
// or statement-starting keyword, consuming the semicolon if that is what
// stopped it (a closing brace is left for the enclosing block to
// consume). It always advances at least one token, so
// a parse loop built around it is guaranteed to terminate.
func (p *Parser) synchronize() {
	p.advance() // guarantee at least one token of progress
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMICOLON) {
			p.advance()
			return
		}
		if p.curIs(token.RBRACE) {
			return
		}
		if statementSyncSet[p.cur().Type] || isTypeKeyword(p.cur().Type) {
			return
		}
		p.advance()
	}
}
