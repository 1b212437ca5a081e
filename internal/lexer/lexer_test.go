package lexer

import (
	"testing"

	"github.com/sigma-lang/sigma/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `int x = 10 + 5;`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.INT_TYPE, "int"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "10"},
		{token.PLUS, "+"},
		{token.INT, "5"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("test[%d] - tokentype wrong. expected=%s, got=%s", i, tt.expectedType, tok.Type)
		}
		if tok.Lexeme != tt.expectedLiteral {
			t.Fatalf("test[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Lexeme)
		}
	}
}

func TestKeywordsCaseSensitive(t *testing.T) {
	l := New("Int INT int")
	for i, want := range []token.Type{token.IDENT, token.IDENT, token.INT_TYPE} {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d]: expected %s, got %s (%q)", i, want, tok.Type, tok.Lexeme)
		}
	}
}

func TestIntVsFloatReclassification(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
		lit   string
	}{
		{"42", token.INT, "42"},
		{"3.14", token.FLOAT, "3.14"},
		{"5.", token.INT, "5"}, // trailing '.' with no digit stays integer + dot
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Lexeme != tt.lit {
			t.Fatalf("input %q: expected %s %q, got %s %q", tt.input, tt.typ, tt.lit, tok.Type, tok.Lexeme)
		}
	}

	l := New("5.")
	first := l.NextToken()
	second := l.NextToken()
	if first.Type != token.INT || first.Lexeme != "5" {
		t.Fatalf("expected INT 5, got %s %q", first.Type, first.Lexeme)
	}
	if second.Type != token.DOT {
		t.Fatalf("expected DOT after trailing-dot integer, got %s", second.Type)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"hello\nworld"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	if tok.Lexeme != `"hello\nworld"` {
		t.Fatalf("lexeme should preserve quotes and escapes verbatim, got %q", tok.Lexeme)
	}
}

func TestStringInvalidEscapeIsFatal(t *testing.T) {
	l := New(`"bad\q"`)
	l.NextToken()
	if l.Err() == nil {
		t.Fatal("expected a fatal lexical error for invalid escape")
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	l := New(`"unterminated`)
	l.NextToken()
	if l.Err() == nil {
		t.Fatal("expected a fatal lexical error for unterminated string")
	}
}

func TestRawNewlineInStringIsFatal(t *testing.T) {
	l := New("\"line1\nline2\"")
	l.NextToken()
	if l.Err() == nil {
		t.Fatal("expected a fatal lexical error for raw newline in string")
	}
}

func TestUnterminatedBlockCommentIsFatal(t *testing.T) {
	l := New("/* comment never ends")
	l.NextToken()
	if l.Err() == nil {
		t.Fatal("expected a fatal lexical error for unterminated block comment")
	}
}

func TestLineCommentConsumedNotEmitted(t *testing.T) {
	l := New("int x; // trailing comment\nint y;")
	var types []token.Type
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	for _, typ := range types {
		if typ == token.ILLEGAL {
			t.Fatalf("unexpected ILLEGAL token in stream: %v", types)
		}
	}
	if len(types) != 7 {
		t.Fatalf("expected 7 tokens (int x ; int y ; EOF), got %v", types)
	}
}

func TestMultiCharOperators(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{"<=", token.LT_EQ},
		{">=", token.GT_EQ},
		{"==", token.EQ_EQ},
		{"!=", token.NOT_EQ},
		{"&&", token.AND_AND},
		{"||", token.OR_OR},
		{"**", token.POWER},
		{"&", token.AMP},
		{"|", token.PIPE},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Fatalf("input %q: expected %s, got %s", tt.input, tt.typ, tok.Type)
		}
	}
}

func TestPositionsAreMonotoneAndInSource(t *testing.T) {
	input := "int x =\n  5;"
	l := New(input)
	var last token.Position
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		if tok.Pos.Line < last.Line || (tok.Pos.Line == last.Line && tok.Pos.Column < last.Column) {
			t.Fatalf("token positions not monotone: %+v after %+v", tok.Pos, last)
		}
		last = tok.Pos
	}
}

func TestEmptyAndWhitespaceOnlySource(t *testing.T) {
	for _, src := range []string{"", "   \n\t\n", "// just a comment\n/* and a block */"} {
		l := New(src)
		tok := l.NextToken()
		if tok.Type != token.EOF {
			t.Fatalf("source %q: expected EOF, got %s", src, tok.Type)
		}
	}
}
